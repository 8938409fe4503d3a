// Package s3storage читает снимки палитр из S3-совместимого хранилища.
//
// "Тупой" клиент: только листинг и загрузка. Разбор снимков — palette.LoadSnapshot.
package s3storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/time/rate"

	"github.com/ilkoid/paintmix/pkg/config"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// ClientInterface определяет интерфейс для S3 клиента.
// Используется для мокания в тестах и внедрения зависимостей.
type ClientInterface interface {
	ListFiles(ctx context.Context, prefix string) ([]StoredObject, error)
	DownloadFile(ctx context.Context, key string) ([]byte, error)
}

type Client struct {
	api     *minio.Client
	bucket  string
	limiter *rate.Limiter
}

// Проверка что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)

// StoredObject - сырой объект из S3
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// New создает клиент по секции s3 конфига.
func New(cfg config.S3Config) (*Client, error) {
	cfg = cfg.GetDefaults()

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	// rate_limit в загрузках/минуту → rate.Limit в загрузках/секунду
	perSec := float64(cfg.RateLimit) / 60.0

	return &Client{
		api:     minioClient,
		bucket:  cfg.Bucket,
		limiter: rate.NewLimiter(rate.Limit(perSec), cfg.Burst),
	}, nil
}

// ListFiles возвращает все объекты по префиксу.
func (c *Client) ListFiles(ctx context.Context, prefix string) ([]StoredObject, error) {
	// Нормализация префикса (добавляем слеш, если это "папка")
	if !strings.HasSuffix(prefix, "/") && prefix != "" {
		prefix += "/"
	}

	var objects []StoredObject

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	for obj := range c.api.ListObjects(ctx, c.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		// Пропускаем саму "папку"
		if obj.Key == prefix {
			continue
		}
		objects = append(objects, StoredObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return objects, nil
}

// DownloadFile скачивает объект целиком в память. Загрузки ограничены
// по частоте лимитером из конфига.
func (c *Client) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, obj); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return buf.Bytes(), nil
}

// IsSnapshotKey сообщает что объект — YAML-снимок палитры.
func IsSnapshotKey(key string) bool {
	switch strings.ToLower(path.Ext(key)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ListSnapshots возвращает только YAML-снимки по префиксу.
func ListSnapshots(ctx context.Context, c ClientInterface, prefix string) ([]StoredObject, error) {
	objects, err := c.ListFiles(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	snapshots := objects[:0:0]
	for _, obj := range objects {
		if IsSnapshotKey(obj.Key) {
			snapshots = append(snapshots, obj)
		}
	}
	return snapshots, nil
}

// LoadPalette скачивает все снимки по префиксу и склеивает записи.
//
// Порядок записей — порядок ключей из листинга, внутри снимка — порядок файла.
// Любой битый снимок прерывает загрузку: частичная палитра дала бы
// ложные результаты поиска дубликатов.
func LoadPalette(ctx context.Context, c ClientInterface, prefix string) ([]palette.ColorRecord, error) {
	objects, err := ListSnapshots(ctx, c, prefix)
	if err != nil {
		return nil, err
	}

	var records []palette.ColorRecord
	loaded := 0
	for _, obj := range objects {
		data, err := c.DownloadFile(ctx, obj.Key)
		if err != nil {
			return nil, err
		}

		recs, err := palette.LoadSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", obj.Key, err)
		}

		utils.Debug("snapshot loaded", "key", obj.Key, "records", len(recs))
		records = append(records, recs...)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("no snapshots found under '%s'", prefix)
	}

	utils.Info("palette loaded from s3", "prefix", prefix, "snapshots", loaded, "records", len(records))
	return records, nil
}
