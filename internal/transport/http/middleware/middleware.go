package middleware

import (
	"net/http"
)

// Middleware — стандартный net/http мидлвар REST-слоя dating-service.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары в порядке перечисления: первый в списке
// оказывается внешним. Роутер использует её неявно через chi.Use,
// но хелпер нужен тестам и служебным обработчикам вне chi.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter перехватывает статус и размер ответа для access-лога.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}
