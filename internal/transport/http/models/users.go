// models описывает wire-формат REST API dating-service.
package models

// UserSummary — краткая анкета для листинга.
type UserSummary struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Gender       string `json:"gender"`
	Age          uint32 `json:"age"`
	Country      string `json:"country"`
	City         string `json:"city"`
	MainPhotoURL string `json:"main_photo_url,omitempty"`
	LastActiveAt int64  `json:"last_active_at"` // Unix UTC
}

// UserDetail — полная анкета с коллекцией фотографий.
type UserDetail struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	Gender       string          `json:"gender"`
	Age          uint32          `json:"age"`
	Country      string          `json:"country"`
	City         string          `json:"city"`
	Introduction string          `json:"introduction"`
	MainPhotoURL string          `json:"main_photo_url,omitempty"`
	Photos       []PhotoResponse `json:"photos"`
	LastActiveAt int64           `json:"last_active_at"` // Unix UTC
	CreatedAt    int64           `json:"created_at"`     // Unix UTC
	UpdatedAt    int64           `json:"updated_at"`     // Unix UTC
}

// UserList — страница листинга.
type UserList struct {
	Items []UserSummary `json:"items"`
}

// Pagination — содержимое заголовка Pagination.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
}

// UpdateUserRequest — частичный апдейт профиля; поля опциональные,
// отсутствующее поле не изменяется.
type UpdateUserRequest struct {
	Username     *string `json:"username,omitempty"`
	Age          *uint32 `json:"age,omitempty"`
	Country      *string `json:"country,omitempty"`
	City         *string `json:"city,omitempty"`
	Introduction *string `json:"introduction,omitempty"`
	Gender       *string `json:"gender,omitempty"`
}
