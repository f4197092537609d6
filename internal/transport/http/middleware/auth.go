package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	apierrors "github.com/okunevaa/go-dating-app/internal/transport/http/errors"
)

type ctxUserIDKey struct{}

// userClaims — полезная нагрузка access-токена.
// uid — идентификатор пользователя, которому выдан токен.
type userClaims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer-токен (HMAC) и кладёт идентификатор
// пользователя в контекст. Запрос без валидного токена отклоняется с 401.
func Auth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				apierrors.WriteStatus(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims := &userClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.UID <= 0 {
				apierrors.WriteStatus(w, r, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserIDKey{}, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom достаёт идентификатор аутентифицированного пользователя из контекста.
func UserIDFrom(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxUserIDKey{}).(int64)
	return v, ok
}

// bearerToken извлекает «сырой» токен из Authorization.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
