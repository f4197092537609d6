package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/storage"
	"github.com/okunevaa/go-dating-app/pkg/log"
)

// Входные структуры сервисного слоя.
type ListUsersInput struct {
	// RequesterID — идентификатор запрашивающего; он всегда исключается из выборки.
	RequesterID int64
	// Gender — явный фильтр по полу; nil означает «противоположный пол запрашивающего».
	Gender   *models.Gender
	Page     int
	PageSize int
}

type UpdateUserInput struct {
	RequesterID  int64
	TargetUserID int64
	Username     *string
	Age          *uint32
	Country      *string
	City         *string
	Introduction *string
	Gender       *models.Gender
}

// ListUsers возвращает страницу анкет для запрашивающего пользователя.
//
// Правила:
//   - запрашивающий должен существовать, иначе ErrNotFound;
//   - по умолчанию показываются анкеты противоположного пола;
//   - page < 1 приводится к 1, page_size < 1 — к дефолту, page_size
//     сверх максимума — к максимуму из конфига;
//   - страница за пределами выборки — пустой список с честным TotalCount.
//
// Побочный эффект: best-effort сдвиг last_active_at запрашивающего.
func (s *Service) ListUsers(ctx context.Context, input ListUsersInput) (*models.UserPage, error) {
	const op = "service/users/ListUsers"

	lg := log.From(ctx).With("op", op, "requester_id", input.RequesterID)

	if input.RequesterID <= 0 {
		lg.Warn("invalid argument: empty requester_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	requester, err := s.usersStorage.UserByID(ctx, input.RequesterID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundUser):
			lg.Warn("requester not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UserByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	gender := requester.Gender.Opposite()
	if input.Gender != nil {
		if !input.Gender.Valid() {
			lg.Warn("invalid argument: unknown gender filter", "gender", string(*input.Gender))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		gender = *input.Gender
	}

	page := input.Page
	if page < 1 {
		page = 1
	}

	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = s.cfg.Pagination.DefaultPageSize
	}
	if pageSize > s.cfg.Pagination.MaxPageSize {
		pageSize = s.cfg.Pagination.MaxPageSize
	}

	items, total, err := s.usersStorage.ListUsers(ctx, storage.ListParams{
		ExcludeUserID: input.RequesterID,
		Gender:        gender,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	})
	if err != nil {
		lg.Error("storage error on ListUsers", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.usersStorage.TouchLastActive(ctx, input.RequesterID); err != nil {
		lg.Warn("failed to touch last_active_at", "err", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.UserPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UserByID возвращает профиль по идентификатору пользователя.
//
// Поведение:
//   - при отсутствии записи возвращает ErrNotFound;
//   - ошибки стораджа/БД/контекста маппятся в ErrInternal.
func (s *Service) UserByID(ctx context.Context, userID int64) (*models.User, error) {
	const op = "service/users/UserByID"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if userID <= 0 {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.usersStorage.UserByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundUser):
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UserByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// UpdateUser выполняет частичное обновление полей профиля.
//
// Правила:
//   - обновлять профиль может только его владелец, иначе ErrUnauthorized;
//   - обновляются только поля с непустыми указателями;
//   - username при обновлении нормализуется и не может быть пустым;
//   - gender при обновлении должен быть валидным значением;
//   - country/city/introduction — пустая строка допустима (явное «очистить»).
//
// Поведение:
//   - при отсутствии записи возвращает ErrNotFound;
//   - при конфликте username — ErrAlreadyExists;
//   - прочие ошибки записи маппятся в ErrSaveFailed.
func (s *Service) UpdateUser(ctx context.Context, input UpdateUserInput) (*models.User, error) {
	const op = "service/users/UpdateUser"

	lg := log.From(ctx).With("op", op, "user_id", input.TargetUserID, "requester_id", input.RequesterID)

	if input.TargetUserID <= 0 || input.RequesterID <= 0 {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if input.RequesterID != input.TargetUserID {
		lg.Warn("requester is not the profile owner")

		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	upd := storage.UserUpdate{}

	if input.Username != nil {
		val := strings.TrimSpace(*input.Username)

		if val == "" {
			lg.Warn("invalid argument: empty username in update")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		upd.Username = &val
	}

	if input.Age != nil {
		upd.Age = input.Age
	}

	if input.Country != nil {
		val := strings.TrimSpace(*input.Country)
		upd.Country = &val
	}

	if input.City != nil {
		val := strings.TrimSpace(*input.City)
		upd.City = &val
	}

	if input.Introduction != nil {
		val := strings.TrimSpace(*input.Introduction)
		upd.Introduction = &val
	}

	if input.Gender != nil {
		if !input.Gender.Valid() {
			lg.Warn("invalid argument: unknown gender", "gender", string(*input.Gender))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		upd.Gender = input.Gender
	}

	result, err := s.usersStorage.UpdateUser(ctx, input.TargetUserID, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundUser):
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("username already taken")

			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		default:
			lg.Error("storage error on UpdateUser", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrSaveFailed)
		}
	}

	return result, nil
}
