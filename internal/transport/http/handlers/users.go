package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	domain "github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/service"
	apierrors "github.com/okunevaa/go-dating-app/internal/transport/http/errors"
	"github.com/okunevaa/go-dating-app/internal/transport/http/middleware"
	"github.com/okunevaa/go-dating-app/internal/transport/http/models"
)

// ListUsers — GET /users.
// Query-параметры: gender (male|female), page, page_size.
// Метаданные пагинации отдаются в заголовке Pagination (JSON),
// который дополнительно экспонируется для браузерных клиентов.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	input := service.ListUsersInput{RequesterID: requesterID}

	if raw := r.URL.Query().Get("gender"); raw != "" {
		gender, err := domain.ParseGender(raw)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("gender: %w", service.ErrInvalidArgument))
			return
		}

		input.Gender = &gender
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("page: %w", service.ErrInvalidArgument))
			return
		}

		input.Page = page
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("page_size: %w", service.ErrInvalidArgument))
			return
		}

		input.PageSize = size
	}

	page, err := h.svc.ListUsers(r.Context(), input)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	header, err := json.Marshal(models.PaginationFromPage(page))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Pagination", string(header))
	w.Header().Set("Access-Control-Expose-Headers", "Pagination")

	writeJSON(w, http.StatusOK, models.UserListFromDomain(page.Items))
}

// GetUser — GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UserDetailFromDomain(user))
}

// UpdateUser — PUT/PATCH /users/{id}.
// Апдейт частичный независимо от метода: отсутствующие поля не меняются.
// Обновлять профиль может только его владелец; успех — 204 без тела.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
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

	var in models.UpdateUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("decode body: %w", service.ErrInvalidArgument))
		return
	}

	input := service.UpdateUserInput{
		RequesterID:  requesterID,
		TargetUserID: id,
		Username:     in.Username,
		Age:          in.Age,
		Country:      in.Country,
		City:         in.City,
		Introduction: in.Introduction,
	}

	if in.Gender != nil {
		gender, err := domain.ParseGender(*in.Gender)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("gender: %w", service.ErrInvalidArgument))
			return
		}

		input.Gender = &gender
	}

	if _, err := h.svc.UpdateUser(r.Context(), input); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
