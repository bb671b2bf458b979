package authenticator

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/habitquest/backend/config"
)

// Claims are the identity-provider facts the backend cares about.
type Claims struct {
	Sub   string
	Name  string
	Email string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (Claims, error)
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, cfg config.OIDCConfigs) (*oidcVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &oidcVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawIDToken string) (Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Claims{}, err
	}

	var profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&profile); err != nil {
		return Claims{}, errors.New("invalid id token claims")
	}

	return Claims{Sub: idToken.Subject, Name: profile.Name, Email: profile.Email}, nil
}
