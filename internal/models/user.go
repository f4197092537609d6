// models содержит доменные сущности dating-service.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Gender — внутренний enum пола; наружу сериализуется строкой.
// Модель намеренно бинарная: логика «фильтр по умолчанию — противоположный пол»
// определена только для male/female.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender нормализует и валидирует строковое представление пола.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q", s)
	}
}

// Valid сообщает, входит ли значение в допустимый диапазон.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Opposite возвращает противоположный пол (бинарная модель).
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}

	return GenderMale
}

// User — внутренняя доменная модель профиля.
// Photos заполняется при чтении детальной карточки; в листинге
// подтягивается только MainPhotoURL.
type User struct {
	ID           int64
	Username     string
	Gender       Gender
	Age          uint32
	Country      string
	City         string
	Introduction string
	MainPhotoURL string
	Photos       []Photo
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPage — страница листинга с метаданными пагинации.
// Инвариант: TotalPages = ceil(TotalCount/PageSize); 0 <= len(Items) <= PageSize.
type UserPage struct {
	Items      []User
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
