package models

// PhotoResponse — фотография в ответах API.
type PhotoResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsMain    bool   `json:"is_main"`
	CreatedAt int64  `json:"created_at"` // Unix UTC
}
