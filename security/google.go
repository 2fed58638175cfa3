package security

import (
	"context"
	"errors"
	"os"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of ID-token claims the service needs.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier exchanges an external credential for a verified identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// IDTokenVerifier validates Google ID tokens against the configured
// OAuth client ID.
type IDTokenVerifier struct {
	ClientID string
}

func NewGoogleVerifierFromEnv() IDTokenVerifier {
	return IDTokenVerifier{ClientID: os.Getenv("GOOGLE_CLIENT_ID")}
}

func (v IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, credential, v.ClientID)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token carries no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	return &GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
