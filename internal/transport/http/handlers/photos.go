package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okunevaa/go-dating-app/internal/service"
	apierrors "github.com/okunevaa/go-dating-app/internal/transport/http/errors"
	"github.com/okunevaa/go-dating-app/internal/transport/http/middleware"
	"github.com/okunevaa/go-dating-app/internal/transport/http/models"
)

// maxMultipartMemory — порог буферизации multipart-формы в памяти.
const maxMultipartMemory = 10 << 20 // 10 MiB

// AddPhoto — POST /users/{id}/photos.
// Принимает multipart/form-data с полем "file"; успех — 201 с телом
// фотографии и Location на созданный ресурс.
// Неудачная фиксация в БД отдаётся как 400 с кодом photo_not_added.
func (h *Handlers) AddPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	requesterID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	// Жёсткий предел тела до чтения формы, чтобы не буферизовать гигантские аплоады.
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartMemory)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("parse form: %w", service.ErrInvalidArgument))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("form file: %w", service.ErrInvalidArgument))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("read file: %w", service.ErrInvalidArgument))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	photo, err := h.svc.AddPhoto(r.Context(), service.AddPhotoInput{
		RequesterID:  requesterID,
		TargetUserID: id,
		Data:         data,
		ContentType:  contentType,
	})
	if err != nil {
		// Неудачная фиксация уже загруженной фотографии — ошибка запроса,
		// а не всего сервиса: клиент может повторить аплоад.
		if errors.Is(err, service.ErrSaveFailed) {
			apierrors.WriteStatus(w, r, http.StatusBadRequest, "photo_not_added", "photo not added")
			return
		}

		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%d/photos/%d", id, photo.ID))
	writeJSON(w, http.StatusCreated, models.PhotoFromDomain(photo))
}

// GetPhoto — GET /users/{id}/photos/{photo_id}.
func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	photoID, err := parseID(r, "photo_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	photo, err := h.svc.PhotoByID(r.Context(), photoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// Фотография адресуется внутри коллекции владельца.
	if photo.UserID != userID {
		apierrors.WriteError(w, r, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, models.PhotoFromDomain(photo))
}
