package entitlements

const (
	// AccessTypePlan marks a decision unlocked by an active plan subscription.
	AccessTypePlan = "plan"
	// AccessTypeIndividual marks a decision unlocked by an individual purchase.
	AccessTypeIndividual = "individual"
)

// AccessDecision is the outcome of resolving whether a user may open a piece
// of content, plus the display metadata clients render around it.
type AccessDecision struct {
	IsUnlock          bool     `json:"isUnlock"`
	PremiumPrice      int64    `json:"premiumPrice"`
	ShowAds           bool     `json:"showAds"`
	SubscriptionPlans []string `json:"subscriptionPlans"`
	AccessType        string   `json:"accessType,omitempty"`
	PlanName          string   `json:"planName,omitempty"`

	// Message describes the winning rule; the HTTP adapter places it in the
	// response envelope rather than the decision body.
	Message string `json:"-"`
}
