package domain

import (
	"context"

	"github.com/habitquest/backend/internal/catalog"
	"github.com/habitquest/backend/internal/domain/recommend"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/internal/session"
	"github.com/habitquest/backend/internal/sync"
	"github.com/habitquest/backend/pkg/authenticator"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/jwt"
	"github.com/habitquest/backend/pkg/xcontext"
)

type AuthDomain interface {
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	verifier    authenticator.IDTokenVerifier
	hub         *session.Hub
	tokenEngine *jwt.Engine[model.AccessToken]
	catalog     *catalog.Catalog
	engine      *recommend.Engine
}

func NewAuthDomain(
	verifier authenticator.IDTokenVerifier,
	hub *session.Hub,
	tokenEngine *jwt.Engine[model.AccessToken],
	cat *catalog.Catalog,
	engine *recommend.Engine,
) AuthDomain {
	return &authDomain{
		verifier:    verifier,
		hub:         hub,
		tokenEngine: tokenEngine,
		catalog:     cat,
		engine:      engine,
	}
}

// Login verifies the identity-provider token, brings up (or reuses) the
// user's session, and issues an access token.
func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if req.IDToken == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide an id token")
	}

	claims, err := d.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify id token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid id token")
	}

	s, err := d.hub.SignIn(ctx, sync.Identity{
		UserID:      claims.Sub,
		DisplayName: claims.Name,
		Email:       claims.Email,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sign in user %s: %v", claims.Sub, err)
		return nil, errorx.Unknown
	}

	// A brand-new queue starts with the starter pack; reconciled sessions are
	// already initialized and skip this.
	if !s.Store.State().Initialized {
		starters := []entity.UserQuest{}
		for _, template := range d.catalog.Starters() {
			starters = append(starters, d.engine.Materialize(template))
		}
		s.Store.Initialize(ctx, starters)
	}

	token, err := d.tokenEngine.Generate(claims.Sub, model.AccessToken{
		ID:    claims.Sub,
		Name:  claims.Name,
		Email: claims.Email,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		Nickname:    s.Store.State().Profile.Nickname,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not signed in")
	}

	d.hub.SignOut(ctx, userID)
	return &model.LogoutResponse{}, nil
}
