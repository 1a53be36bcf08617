package helpers

import (
	"context"

	"google.golang.org/api/idtoken"
)

// IdentityClaims is the verified payload extracted from a federated
// identity token.
type IdentityClaims struct {
	Email   string
	Name    string
	Subject string
}

// GoogleVerifier validates Google ID tokens against the configured
// OAuth client id.
type GoogleVerifier struct {
	Audience string
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{Audience: audience}
}

// Verify checks the token signature and audience with Google's public
// keys and returns the claims the authenticator needs.
func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*IdentityClaims, error) {
	payload, err := idtoken.Validate(ctx, token, g.Audience)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return &IdentityClaims{Email: email, Name: name, Subject: payload.Subject}, nil
}
