package models

import "time"

// Photo — фотография профиля.
// Key — ключ объекта во внешнем хранилище изображений (его «public id»).
// IsMain выставляется хранилищем: первая фотография пользователя становится главной.
type Photo struct {
	ID        int64
	UserID    int64
	URL       string
	Key       string
	IsMain    bool
	CreatedAt time.Time
}
