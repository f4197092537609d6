// storage содержит контракты слоя хранилищ dating-service.
//
// users.go - работа с пользователями в БД (чтение/листинг/частичное обновление).
// photos.go - фотографии пользователей и инвариант «одна главная фотография».
// images.go - контракт внешнего хранилища изображений (S3/MinIO).
package storage

import (
	"context"
	"errors"

	"github.com/okunevaa/go-dating-app/internal/models"
)

var (
	// ErrNotFoundUser — пользователь не найден.
	ErrNotFoundUser = errors.New("user not found")
	// ErrAlreadyExists — конфликт уникальности (username).
	ErrAlreadyExists = errors.New("already exists")
)

// ListParams — параметры выборки листинга.
// Требователь всегда исключается из результатов; Offset/Limit
// нормализуются сервисным слоем.
type ListParams struct {
	ExcludeUserID int64
	Gender        models.Gender
	Offset        int
	Limit         int
}

// UserUpdate — частичный апдейт профиля.
// Параметры задаются pointer-полями: только непустые указатели обновляются в БД.
type UserUpdate struct {
	Username     *string
	Age          *uint32
	Country      *string
	City         *string
	Introduction *string
	Gender       *models.Gender
}

// Users — контракт репозитория пользователей.
type Users interface {
	// UserByID возвращает профиль вместе с коллекцией фотографий.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// ListUsers возвращает страницу кратких профилей и общее число записей,
	// подходящих под фильтр (считается ДО среза Offset/Limit).
	ListUsers(ctx context.Context, params ListParams) ([]models.User, int64, error)
	// UpdateUser выполняет частичное обновление полей, указанных в update.
	// Реализация должна обновить updated_at.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*models.User, error)
	// TouchLastActive сдвигает last_active_at пользователя на текущий момент.
	TouchLastActive(ctx context.Context, id int64) error
}

// UsersStorage — верхнеуровневый интерфейс хранилища пользователей и фотографий.
type UsersStorage interface {
	Users
	Photos
	Close()
}
