package middleware

import (
	"context"
	"strings"

	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/jwt"
	"github.com/habitquest/backend/pkg/router"
	"github.com/habitquest/backend/pkg/xcontext"
)

// WithAuthentication resolves the access token from the Authorization header
// or the token cookie and stores the user id in the context. Requests without
// a valid token are rejected.
func WithAuthentication(tokenEngine *jwt.Engine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		accessToken, err := tokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
