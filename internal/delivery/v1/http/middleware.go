package http

import (
	"context"
	"net/http"

	"github.com/ezstore-dev/go-backend/internal/cfg"
	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
)

type ctxKey int

const userCtxKey ctxKey = iota

// AuthMiddleware резолвит сессионную куку в пользователя и кладёт его в контекст.
// Запросы без валидной сессии отклоняются с 401.
type AuthMiddleware struct {
	userUC usecase.UserUC
	cfg    *cfg.AuthCfg
	logger logger.Logger
}

func NewAuthMiddleware(userUC usecase.UserUC, cfg *cfg.AuthCfg, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{userUC: userUC, cfg: cfg, logger: logger}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cfg.CookieName)
		if err != nil {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		user, err := m.userUC.Resolve(r.Context(), cookie.Value)
		if err != nil {
			m.logger.Debugf("session resolve failed: %v", err)
			WriteError(w, e.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из перечисленных ролей.
// Должен стоять после Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromCtx(r.Context())
			if user == nil {
				WriteError(w, e.ErrUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteError(w, e.ErrForbidden)
		})
	}
}

// UserFromCtx достаёт аутентифицированного пользователя из контекста запроса.
func UserFromCtx(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userCtxKey).(*domain.User)
	if !ok {
		return nil
	}

	return user
}
