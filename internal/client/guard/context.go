package guard

import (
	"context"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
)

type ctxKey string

const userKey ctxKey = "user"

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user a guarded view was mounted with.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}
