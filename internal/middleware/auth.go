// Middleware: Authorization: Bearer <token>; участник запроса кладётся в контекст.
package middleware

import (
	"net/http"
	"strings"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/utils"
)

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// TokenParser проверяет access-токен.
type TokenParser interface {
	Parse(token string) (auth.Actor, error)
}

// Authenticate распознаёт Bearer-токен, если он есть. Запрос без заголовка идёт дальше анонимным,
// неверный токен - 401.
func Authenticate(parser TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderAuthorization)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(raw, BearerPrefix)
			if !ok || token == "" {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid Authorization; expected Bearer <token>")
				return
			}
			actor, err := parser.Parse(token)
			if err != nil {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole пропускает только аутентифицированных участников; если roles не пусты - только с этими ролями.
func RequireRole(h http.HandlerFunc, roles ...models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFrom(r.Context())
		if !ok {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if len(roles) > 0 && !utils.Contains(roles, actor.Role) {
			utils.SendErrorResponse(w, http.StatusForbidden, "operation not allowed for role "+string(actor.Role))
			return
		}
		h(w, r)
	}
}
