package auth

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
)

type ctxKey struct{}

// Actor - аутентифицированный участник запроса.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) Is(role models.Role) bool {
	return a.Role == role
}

// WithActor кладёт участника в контекст.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFrom достаёт участника из контекста; ok=false для анонимного запроса.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok && a.ID != ""
}
