package api

import (
	"context"

	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser adds the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context
func ctxGetUser(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok || user == nil {
		return nil, errs.NewMissingTokenError()
	}
	return user, nil
}
