package storage

import (
	"context"
	"errors"
)

// ErrInvalidArgument — нарушены ограничения запроса (тип/размер).
var ErrInvalidArgument = errors.New("invalid argument")

// Images — контракт внешнего хранилища изображений.
// Сервис загружает уже преобразованные байты; хранилище отвечает
// за ключ объекта и публичный URL.
type Images interface {
	// UploadImage сохраняет объект под ключом вида "photos/<userID>/<uuid>.<ext>"
	// и возвращает ключ и публичный URL.
	UploadImage(ctx context.Context, userID int64, data []byte, contentType string) (key, url string, err error)
	// RemoveImage удаляет объект по ключу. Используется для компенсации,
	// когда фиксация фотографии в БД не удалась.
	RemoveImage(ctx context.Context, key string) error
}

// ImagesStorage — алиас-обёртка для внедрения зависимости.
type ImagesStorage interface {
	Images
}
