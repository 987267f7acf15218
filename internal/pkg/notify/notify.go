package notify

import (
	"context"
	"errors"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/env"
	"google.golang.org/api/option"
)

// TokenSource resolves the device tokens registered for a user.
type TokenSource interface {
	ListTokensByUser(userID uint) ([]string, error)
}

// Notifier delivers a push notification to all of a user's devices. The bool
// reports whether at least one device accepted the message.
type Notifier interface {
	Send(ctx context.Context, userID uint, title, body string, data map[string]string) (bool, error)
}

// ErrNoTokens is returned when the user has no registered devices.
var ErrNoTokens = errors.New("notify: user has no registered device tokens")

type fcmNotifier struct {
	client *messaging.Client
	tokens TokenSource
}

// NewFCMNotifier creates a Notifier backed by Firebase Cloud Messaging. The
// credentials file path comes from FIREBASE_CREDENTIALS_FILE.
func NewFCMNotifier(ctx context.Context, tokens TokenSource) (Notifier, error) {
	credFile := env.GetEnv("FIREBASE_CREDENTIALS_FILE", "")
	if credFile == "" {
		return nil, errors.New("notify: FIREBASE_CREDENTIALS_FILE is not set")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &fcmNotifier{client: client, tokens: tokens}, nil
}

func (n *fcmNotifier) Send(ctx context.Context, userID uint, title, body string, data map[string]string) (bool, error) {
	tokens, err := n.tokens.ListTokensByUser(userID)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return false, ErrNoTokens
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	resp, err := n.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return false, err
	}
	return resp.SuccessCount > 0, nil
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that drops every message. Used when
// Firebase is not configured, so grants never depend on push delivery.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Send(context.Context, uint, string, string, map[string]string) (bool, error) {
	return false, nil
}

// Setup builds the FCM notifier when credentials are configured, otherwise
// falls back to the noop notifier.
func Setup(ctx context.Context, tokens TokenSource) Notifier {
	n, err := NewFCMNotifier(ctx, tokens)
	if err != nil {
		log.Printf("push notifications disabled: %v", err)
		return NewNoopNotifier()
	}
	return n
}
