package storage

import (
	"context"
	"errors"

	"github.com/okunevaa/go-dating-app/internal/models"
)

// ErrNotFoundPhoto — фотография не найдена.
var ErrNotFoundPhoto = errors.New("photo not found")

// Photos — контракт репозитория фотографий.
type Photos interface {
	// PhotoByID возвращает фотографию по идентификатору.
	PhotoByID(ctx context.Context, id int64) (*models.Photo, error)
	// AddPhoto вставляет новую фотографию в коллекцию пользователя.
	// Решение о флаге is_main принимается внутри одной транзакции:
	// если у пользователя ещё нет главной фотографии, новая становится главной.
	// Ошибки: ErrNotFoundUser, если владелец отсутствует.
	AddPhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
}
