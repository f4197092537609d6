package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/okunevaa/go-dating-app/internal/storage"
)

// UploadImage сохраняет преобразованные байты фотографии в бакет.
// Валидирует contentType и размер согласно конфигу, формирует ключ вида
// "photos/<userID>/<uuid>.<ext>" и возвращает ключ вместе с публичным URL.
func (s *ImagesStorage) UploadImage(ctx context.Context, userID int64, data []byte, contentType string) (string, string, error) {
	const op = "storage/minio/images/UploadImage"

	if len(data) == 0 || int64(len(data)) > s.cfg.Photo.MaxSizeBytes {
		return "", "", storage.ErrInvalidArgument
	}

	if !isAllowedContentType(s.cfg.Photo.AllowedContentTypes, contentType) {
		return "", "", storage.ErrInvalidArgument
	}

	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	default:
		ext = ""
	}

	// Генерация ключа вида: photos/<userID>/<uuid>.<ext>
	key := path.Join("photos", strconv.FormatInt(userID, 10), uuid.NewString()+ext)

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, bytes.NewReader(data), int64(len(data)), mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")

	return key, base + "/" + key, nil
}

// RemoveImage удаляет объект по ключу.
// Отсутствующий объект не считается ошибкой: компенсация идемпотентна.
func (s *ImagesStorage) RemoveImage(ctx context.Context, key string) error {
	const op = "storage/minio/images/RemoveImage"

	if key == "" {
		return storage.ErrInvalidArgument
	}

	if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
