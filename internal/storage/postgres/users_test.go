package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okunevaa/go-dating-app/internal/models"
	"github.com/okunevaa/go-dating-app/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета postgres (users.go и photos.go):
// — поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    UserByID: профиль с фотографиями и ErrNotFoundUser на отсутствующую запись;
//    ListUsers: фильтр по полу, исключение запрашивающего, порядок по last_active_at,
//      подсчёт total до среза и пустую страницу за пределами выборки;
//    UpdateUser: частичное обновление, инкремент updated_at, ErrNotFoundUser,
//      ErrAlreadyExists при конфликте username;
//    TouchLastActive: сдвиг last_active_at;
//    поведение при истёкшем контексте (context deadline exceeded).
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от текущего рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает PostgreSQL через testcontainers-go,
// применяет миграции и возвращает инициализированное хранилище,
// пул для прямого сидинга данных и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*UsersStorage, *pgxpool.Pool, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting postgres container with image=%q", req.Image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, readMigration(t, "1_init_dating.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		pool.Close()
		_ = c.Terminate(context.Background())
	}
	return st, pool, cleanup
}

// seedUser — вставляет пользователя напрямую через пул и возвращает его id.
func seedUser(t *testing.T, pool *pgxpool.Pool, username string, gender models.Gender, lastActive time.Time) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
	INSERT INTO users (username, gender, age, country, city, introduction, last_active_at)
	VALUES ($1, $2, 25, 'LV', 'Riga', '', $3)
	RETURNING id
	`, username, string(gender), lastActive).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestIntegration_UserByID_OK(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	id := seedUser(t, pool, "alice", models.GenderFemale, time.Now().UTC())

	got, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, models.GenderFemale, got.Gender)
	require.EqualValues(t, 25, got.Age)
	require.Empty(t, got.Photos)
	require.Equal(t, "", got.MainPhotoURL)
	require.WithinDuration(t, time.Now().UTC(), got.CreatedAt, 5*time.Second)
}

func TestIntegration_UserByID_WithPhotos(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	id := seedUser(t, pool, "bob", models.GenderMale, time.Now().UTC())

	first, err := st.AddPhoto(context.Background(), &models.Photo{UserID: id, URL: "https://cdn.example/1.jpg", Key: "photos/k1"})
	require.NoError(t, err)
	second, err := st.AddPhoto(context.Background(), &models.Photo{UserID: id, URL: "https://cdn.example/2.jpg", Key: "photos/k2"})
	require.NoError(t, err)

	got, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Photos, 2)
	require.Equal(t, first.ID, got.Photos[0].ID, "main photo comes first")
	require.Equal(t, second.ID, got.Photos[1].ID)
	require.Equal(t, "https://cdn.example/1.jpg", got.MainPhotoURL)
}

func TestIntegration_UserByID_NotFound(t *testing.T) {
	st, _, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UserByID(context.Background(), 404404)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFoundUser)
}

func TestIntegration_ListUsers_FilterExcludeOrder(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	base := time.Now().UTC().Add(-time.Hour)
	requester := seedUser(t, pool, "req", models.GenderFemale, base)
	older := seedUser(t, pool, "f-older", models.GenderFemale, base.Add(1*time.Minute))
	newer := seedUser(t, pool, "f-newer", models.GenderFemale, base.Add(10*time.Minute))
	_ = seedUser(t, pool, "m-ignored", models.GenderMale, base.Add(20*time.Minute))

	items, total, err := st.ListUsers(context.Background(), storage.ListParams{
		ExcludeUserID: requester,
		Gender:        models.GenderFemale,
		Offset:        0,
		Limit:         10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.Equal(t, newer, items[0].ID, "most recently active first")
	require.Equal(t, older, items[1].ID)
}

func TestIntegration_ListUsers_MainPhotoURL(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	requester := seedUser(t, pool, "req2", models.GenderMale, time.Now().UTC())
	target := seedUser(t, pool, "with-photo", models.GenderFemale, time.Now().UTC())

	_, err := st.AddPhoto(context.Background(), &models.Photo{UserID: target, URL: "https://cdn.example/main.jpg", Key: "photos/main"})
	require.NoError(t, err)

	items, total, err := st.ListUsers(context.Background(), storage.ListParams{
		ExcludeUserID: requester,
		Gender:        models.GenderFemale,
		Offset:        0,
		Limit:         10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "https://cdn.example/main.jpg", items[0].MainPhotoURL)
}

func TestIntegration_ListUsers_PaginationAndPastEnd(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	base := time.Now().UTC().Add(-time.Hour)
	requester := seedUser(t, pool, "pager", models.GenderMale, base)
	for i := 0; i < 5; i++ {
		seedUser(t, pool, fmt.Sprintf("f-%d", i), models.GenderFemale, base.Add(time.Duration(i)*time.Minute))
	}

	items, total, err := st.ListUsers(context.Background(), storage.ListParams{
		ExcludeUserID: requester,
		Gender:        models.GenderFemale,
		Offset:        2,
		Limit:         2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, total, "total counts the whole filtered set")
	require.Len(t, items, 2)

	// Страница за пределами выборки: пустой список, total не меняется.
	items, total, err = st.ListUsers(context.Background(), storage.ListParams{
		ExcludeUserID: requester,
		Gender:        models.GenderFemale,
		Offset:        100,
		Limit:         2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Empty(t, items)
}

func TestIntegration_UpdateUser_Partial_OK(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	id := seedUser(t, pool, "u1", models.GenderMale, time.Now().UTC())
	orig, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	newName := "u2"
	newAge := uint32(33)
	newCity := "Vilnius"
	got, err := st.UpdateUser(context.Background(), id, storage.UserUpdate{
		Username: &newName,
		Age:      &newAge,
		City:     &newCity,
	})
	require.NoError(t, err)
	require.Equal(t, "u2", got.Username)
	require.EqualValues(t, 33, got.Age)
	require.Equal(t, "Vilnius", got.City)
	require.Equal(t, models.GenderMale, got.Gender, "gender must remain unchanged")
	require.Equal(t, orig.CreatedAt, got.CreatedAt)
	require.True(t, got.UpdatedAt.After(orig.UpdatedAt), "updated_at must increase")
}

func TestIntegration_UpdateUser_Empty_NoOp_BumpsUpdatedAt(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	id := seedUser(t, pool, "noop", models.GenderFemale, time.Now().UTC())
	orig, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	got, err := st.UpdateUser(context.Background(), id, storage.UserUpdate{})
	require.NoError(t, err)
	require.Equal(t, orig.Username, got.Username)
	require.Equal(t, orig.Age, got.Age)
	require.True(t, got.UpdatedAt.After(orig.UpdatedAt), "updated_at must increase even on empty update")
}

func TestIntegration_UpdateUser_NotFound(t *testing.T) {
	st, _, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UpdateUser(context.Background(), 404404, storage.UserUpdate{Username: ptr("x")})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFoundUser)
}

func TestIntegration_UpdateUser_UsernameConflict(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	_ = seedUser(t, pool, "taken", models.GenderMale, time.Now().UTC())
	id := seedUser(t, pool, "free", models.GenderMale, time.Now().UTC())

	_, err := st.UpdateUser(context.Background(), id, storage.UserUpdate{Username: ptr("taken")})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_TouchLastActive_OK(t *testing.T) {
	st, pool, cleanup := startPostgres(t)
	defer cleanup()

	id := seedUser(t, pool, "active", models.GenderFemale, time.Now().UTC().Add(-time.Hour))
	orig, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, st.TouchLastActive(context.Background(), id))

	got, err := st.UserByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, got.LastActiveAt.After(orig.LastActiveAt))
}

func TestIntegration_UserByID_ContextDeadlineExceeded(t *testing.T) {
	st, _, cleanup := startPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	_, err := st.UserByID(ctx, 1)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), context.DeadlineExceeded.Error()))
}

func ptr[T any](v T) *T { return &v }
