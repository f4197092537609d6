// service содержит бизнес-логику dating-сервиса:
// - листинг анкет с фильтром и пагинацией;
// - чтение и частичное обновление профиля;
// - загрузка фотографий с нормализацией и инвариантом «одна главная».
package service

import (
	"errors"

	"github.com/okunevaa/go-dating-app/internal/config"
	"github.com/okunevaa/go-dating-app/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные (валидация, формат и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized — операция выполняется не владельцем ресурса.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности/дубликат.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUploadFailed — не удалось загрузить объект во внешнее хранилище.
	ErrUploadFailed = errors.New("upload failed")
	// ErrSaveFailed — не удалось зафиксировать изменения в БД.
	ErrSaveFailed = errors.New("save failed")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику dating-service.
type Service struct {
	cfg          *config.Config
	usersStorage storage.UsersStorage
	images       storage.ImagesStorage
}

// New создает новый экземпляр Service.
func New(usersStorage storage.UsersStorage, images storage.ImagesStorage, cfg *config.Config) *Service {
	return &Service{
		usersStorage: usersStorage,
		images:       images,
		cfg:          cfg,
	}
}
