// errors стандартизирует ответы об ошибках HTTP-слоя dating-service.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: sentinel-ошибки internal/service.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okunevaa/go-dating-app/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя
// в HTTP-статус и унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - неизвестная ошибка - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	httpStatus, code, msg := baseFromService(err)
	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	writeResponse(w, r, status, resp)
}

// WriteStatus пишет ответ с явным статусом и кодом, минуя общий маппинг.
// Используется там, где эндпойнт переопределяет таблицу
// (например, неудачная фиксация фотографии отдаётся как 400).
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeResponse(w, r, status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: message,
		},
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromService — базовый маппинг service -> HTTP/FE-код/сообщение:
//   - ErrInvalidArgument (битые входные/не-изображение) -> 400
//   - ErrUnauthorized (не владелец ресурса / нет валидного токена) -> 401
//   - ErrNotFound -> 404
//   - ErrAlreadyExists (конфликт username) -> 409
//   - ErrUploadFailed (хранилище изображений недоступно) -> 502
//   - ErrSaveFailed (фиксация в БД не удалась) -> 500/save_failed
//   - ErrInternal / прочее -> 500/internal
func baseFromService(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "unauthorized"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "already_exists", "already exists"
	case errors.Is(err, service.ErrUploadFailed):
		return http.StatusBadGateway, "upload_failed", "upload failed"
	case errors.Is(err, service.ErrSaveFailed):
		return http.StatusInternalServerError, "save_failed", "save failed"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
