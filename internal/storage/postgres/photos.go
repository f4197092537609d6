package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/storage"
)

// PhotoByID возвращает фотографию по идентификатору.
// Ошибки: storage.ErrNotFoundPhoto, либо ошибка выполнения запроса.
func (s *UsersStorage) PhotoByID(ctx context.Context, id int64) (*models.Photo, error) {
	const op = "storage/postgres/photos/PhotoByID"

	var photo models.Photo
	err := s.db.QueryRow(ctx, `
	SELECT id, user_id, url, object_key, is_main, created_at
	FROM photos
	WHERE id = $1
	`, id).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.URL,
		&photo.Key,
		&photo.IsMain,
		&photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundPhoto)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photo.CreatedAt = photo.CreatedAt.UTC()

	return &photo, nil
}

// AddPhoto вставляет фотографию и назначает флаг is_main в рамках одной транзакции.
// Строка владельца блокируется (FOR UPDATE), чтобы два конкурентных аплоада
// не получили is_main = true одновременно; страховкой служит частичный
// уникальный индекс uq_photos_one_main_per_user.
func (s *UsersStorage) AddPhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "storage/postgres/photos/AddPhoto"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, photo.UserID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundUser)
		}

		return nil, fmt.Errorf("%s: lock owner: %w", op, err)
	}

	var saved models.Photo
	err = tx.QueryRow(ctx, `
	INSERT INTO photos (user_id, url, object_key, is_main)
	VALUES ($1, $2, $3, NOT EXISTS (SELECT 1 FROM photos WHERE user_id = $1 AND is_main))
	RETURNING id, user_id, url, object_key, is_main, created_at
	`, photo.UserID, photo.URL, photo.Key).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.URL,
		&saved.Key,
		&saved.IsMain,
		&saved.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	saved.CreatedAt = saved.CreatedAt.UTC()

	return &saved, nil
}
