package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okunevaa/go-dating-app/internal/imaging"
	"github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/storage"
	"github.com/okunevaa/go-dating-app/pkg/log"
)

// uploadAttempts — количество попыток загрузки во внешнее хранилище.
const uploadAttempts = 2

type AddPhotoInput struct {
	RequesterID  int64
	TargetUserID int64
	Data         []byte
	ContentType  string
}

// AddPhoto добавляет фотографию в коллекцию пользователя.
//
// Процесс:
//  1. авторизация: загружать можно только в собственную коллекцию (ErrUnauthorized);
//  2. валидация: непустое тело, допустимый content type, размер в пределах лимита;
//  3. нормализация: центрированный кроп и масштабирование до целевых размеров,
//     результат перекодируется в JPEG;
//  4. загрузка в хранилище изображений с таймаутом на попытку и одним повтором;
//  5. фиксация в БД; первая фотография пользователя становится главной.
//
// Ошибки:
//   - ErrInvalidArgument — пустое тело / неподдерживаемый тип / не изображение;
//   - ErrUploadFailed — хранилище изображений недоступно после всех попыток;
//   - ErrNotFound — владелец не существует;
//   - ErrSaveFailed — фиксация в БД не удалась; загруженный объект удаляется best-effort.
func (s *Service) AddPhoto(ctx context.Context, input AddPhotoInput) (*models.Photo, error) {
	const op = "service/photos/AddPhoto"

	lg := log.From(ctx).With("op", op, "user_id", input.TargetUserID, "requester_id", input.RequesterID)

	if input.TargetUserID <= 0 || input.RequesterID <= 0 {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if input.RequesterID != input.TargetUserID {
		lg.Warn("requester is not the collection owner")

		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if len(input.Data) == 0 {
		lg.Warn("invalid argument: empty file")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if int64(len(input.Data)) > s.cfg.Photo.MaxSizeBytes {
		lg.Warn("invalid argument: file too large", "size", len(input.Data))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !allowedContentType(s.cfg.Photo.AllowedContentTypes, input.ContentType) {
		lg.Warn("invalid argument: content type not allowed", "content_type", input.ContentType)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	normalized, err := imaging.FillCrop(input.Data, s.cfg.Photo.Width, s.cfg.Photo.Height)
	if err != nil {
		lg.Warn("failed to decode image", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	key, url, err := s.uploadWithRetry(ctx, input.TargetUserID, normalized)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidArgument):
			lg.Warn("image storage rejected upload", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		default:
			lg.Error("image upload failed", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrUploadFailed)
		}
	}

	result, err := s.usersStorage.AddPhoto(ctx, &models.Photo{
		UserID: input.TargetUserID,
		URL:    url,
		Key:    key,
	})
	if err != nil {
		// Фиксация не удалась — убираем осиротевший объект из бакета.
		if rmErr := s.images.RemoveImage(context.WithoutCancel(ctx), key); rmErr != nil {
			lg.Warn("failed to remove orphaned image", "key", key, "err", rmErr)
		}

		switch {
		case errors.Is(err, storage.ErrNotFoundUser):
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on AddPhoto", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrSaveFailed)
		}
	}

	return result, nil
}

// PhotoByID возвращает фотографию по идентификатору.
func (s *Service) PhotoByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	const op = "service/photos/PhotoByID"

	lg := log.From(ctx).With("op", op, "photo_id", photoID)

	if photoID <= 0 {
		lg.Warn("invalid argument: empty photo_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.usersStorage.PhotoByID(ctx, photoID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundPhoto):
			lg.Warn("photo not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on PhotoByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// uploadWithRetry загружает объект с таймаутом на каждую попытку.
// Ошибки валидации стораджа не ретраятся.
func (s *Service) uploadWithRetry(ctx context.Context, userID int64, data []byte) (string, string, error) {
	var lastErr error

	for attempt := 0; attempt < uploadAttempts; attempt++ {
		uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Upload)
		key, url, err := s.images.UploadImage(uploadCtx, userID, data, "image/jpeg")
		cancel()

		if err == nil {
			return key, url, nil
		}

		if errors.Is(err, storage.ErrInvalidArgument) {
			return "", "", err
		}

		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return "", "", lastErr
}

// allowedContentType проверяет, что тип содержимого входит в allow-list.
func allowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
