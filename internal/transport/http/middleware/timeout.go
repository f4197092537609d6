package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout навешивает на запрос общий deadline сервиса (timeouts.service
// из конфига), если вышестоящий слой его ещё не задал.
// Значение <=0 делает мидлвар no-op.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Существующий deadline (например, от прокси) не перетираем.
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
