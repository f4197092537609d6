package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/storage"
)

// userColumns — единый список колонок таблицы users,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const userColumns = `
id, username, gender, age, country, city, introduction, last_active_at, created_at, updated_at
`

// scanUser сканирует одну строку пользователя из результата запроса
// в доменную модель с корректными кастами типов (INT -> uint32, TEXT -> models.Gender).
func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var age int32
	var gender string

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&gender,
		&age,
		&user.Country,
		&user.City,
		&user.Introduction,
		&user.LastActiveAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if age < 0 {
		age = 0
	}
	user.Age = uint32(age)

	user.Gender = models.Gender(gender)
	user.LastActiveAt = user.LastActiveAt.UTC()
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return &user, nil
}

// UserByID возвращает пользователя вместе с коллекцией его фотографий.
// Ошибки: storage.ErrNotFoundUser, либо ошибка выполнения запроса.
func (s *UsersStorage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage/postgres/users/UserByID"

	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := s.db.QueryRow(ctx, q, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundUser)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, url, object_key, is_main, created_at
	FROM photos
	WHERE user_id = $1
	ORDER BY is_main DESC, created_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var photo models.Photo
		if scanErr := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.URL,
			&photo.Key,
			&photo.IsMain,
			&photo.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan photo: %w", op, scanErr)
		}

		photo.CreatedAt = photo.CreatedAt.UTC()

		if photo.IsMain {
			user.MainPhotoURL = photo.URL
		}
		user.Photos = append(user.Photos, photo)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return user, nil
}

// ListUsers возвращает страницу кратких профилей и общее число записей,
// подходящих под фильтр. Порядок фиксирован: last_active_at DESC, id DESC —
// стабильная сортировка для равных ключей. Количество считается до среза.
func (s *UsersStorage) ListUsers(ctx context.Context, params storage.ListParams) ([]models.User, int64, error) {
	const op = "storage/postgres/users/ListUsers"

	var total int64
	err := s.db.QueryRow(ctx, `
	SELECT count(*) FROM users WHERE id <> $1 AND gender = $2
	`, params.ExcludeUserID, string(params.Gender)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT u.id, u.username, u.gender, u.age, u.country, u.city, u.introduction,
	       u.last_active_at, u.created_at, u.updated_at,
	       COALESCE(p.url, '') AS main_photo_url
	FROM users u
	LEFT JOIN photos p ON p.user_id = u.id AND p.is_main
	WHERE u.id <> $1 AND u.gender = $2
	ORDER BY u.last_active_at DESC, u.id DESC
	OFFSET $3 LIMIT $4
	`, params.ExcludeUserID, string(params.Gender), params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.User
	for rows.Next() {
		var user models.User
		var age int32
		var gender string

		if scanErr := rows.Scan(
			&user.ID,
			&user.Username,
			&gender,
			&age,
			&user.Country,
			&user.City,
			&user.Introduction,
			&user.LastActiveAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.MainPhotoURL,
		); scanErr != nil {
			return nil, 0, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		if age < 0 {
			age = 0
		}
		user.Age = uint32(age)
		user.Gender = models.Gender(gender)
		user.LastActiveAt = user.LastActiveAt.UTC()
		user.CreatedAt = user.CreatedAt.UTC()
		user.UpdatedAt = user.UpdatedAt.UTC()

		items = append(items, user)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, total, nil
}

// UpdateUser выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
// Ошибки: storage.ErrNotFoundUser при отсутствии записи,
// storage.ErrAlreadyExists при конфликте уникальности username.
func (s *UsersStorage) UpdateUser(ctx context.Context, id int64, update storage.UserUpdate) (*models.User, error) {
	const op = "storage/postgres/users/UpdateUser"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 7)
	count := 0

	if update.Username != nil {
		count++
		sets = append(sets, fmt.Sprintf("username = $%d", count))
		args = append(args, *update.Username)
	}

	if update.Age != nil {
		count++
		sets = append(sets, fmt.Sprintf("age = $%d", count))
		args = append(args, int32(*update.Age))
	}

	if update.Country != nil {
		count++
		sets = append(sets, fmt.Sprintf("country = $%d", count))
		args = append(args, *update.Country)
	}

	if update.City != nil {
		count++
		sets = append(sets, fmt.Sprintf("city = $%d", count))
		args = append(args, *update.City)
	}

	if update.Introduction != nil {
		count++
		sets = append(sets, fmt.Sprintf("introduction = $%d", count))
		args = append(args, *update.Introduction)
	}

	if update.Gender != nil {
		count++
		sets = append(sets, fmt.Sprintf("gender = $%d", count))
		args = append(args, string(*update.Gender))
	}

	count++
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), count, userColumns)

	row := s.db.QueryRow(ctx, q, args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundUser)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// TouchLastActive сдвигает last_active_at на текущий момент.
// Отсутствие записи не считается ошибкой: активность — best-effort сигнал.
func (s *UsersStorage) TouchLastActive(ctx context.Context, id int64) error {
	const op = "storage/postgres/users/TouchLastActive"

	if _, err := s.db.Exec(ctx, `UPDATE users SET last_active_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
