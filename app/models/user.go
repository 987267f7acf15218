package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"

	PROVIDER_EMAIL  = "email"
	PROVIDER_GOOGLE = "google"
)

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password      string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Provider      string         `gorm:"type:varchar(20);default:'email'" json:"provider" validate:"oneof=email google"`
	Role          string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	IsPremium     bool           `gorm:"default:false" json:"isPremium"` // cache over the active-plan state; written only by the grant paths
	ReferralCode  string         `gorm:"type:varchar(16);uniqueIndex" json:"referralCode"`
	ReferredByID  *uint          `gorm:"index;default:null" json:"referredBy,omitempty"`
	ReferralCount int            `gorm:"default:0" json:"referralCount"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

func CreateUser(email, password, provider string) (*User, error) {
	// The validate tag only sees the hash, so the raw length check lives here.
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Password:     pw,
		Provider:     provider,
		Role:         ROLE_USER,
		ReferralCode: NewReferralCode(),
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// NewReferralCode creates an 8 character shareable code.
func NewReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
