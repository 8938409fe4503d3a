// Package app связывает движок с хранилищем и конфигом для CLI и сервисов.
//
// Components — сервисный слой: снимок записей читается из Store и
// передаётся в чистые функции palette, переименование идёт через
// транзакцию Store.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/config"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/rename"
	"github.com/ilkoid/paintmix/pkg/report"
	"github.com/ilkoid/paintmix/pkg/s3storage"
	"github.com/ilkoid/paintmix/pkg/store"
	"github.com/ilkoid/paintmix/pkg/swatch"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// Components содержит все компоненты приложения.
type Components struct {
	Config   *config.AppConfig
	Store    *store.Store
	Matcher  *palette.Matcher
	Renamer  *rename.Engine
	Renderer *report.Renderer
	S3       s3storage.ClientInterface // nil если s3 не настроен
}

// Initialize создаёт компоненты по конфигу.
func Initialize(ctx context.Context, cfg *config.AppConfig) (*Components, error) {
	metric, err := colorspace.ParseMetric(cfg.Matching.Metric)
	if err != nil {
		return nil, err
	}

	fallbacks := MergeFallbacks(palette.DefaultCategoryFallbacks, cfg.Matching.CategoryFallbacks)

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	c := &Components{
		Config: cfg,
		Store:  st,
		Matcher: palette.NewMatcher(palette.MatcherOptions{
			Limit:     cfg.Matching.DefaultLimit,
			Metric:    metric,
			Fallbacks: fallbacks,
		}),
		Renamer:  rename.NewEngine(),
		Renderer: report.NewRenderer(report.DefaultStyles, 0, fallbacks),
	}

	if cfg.S3.Enabled() {
		client, err := s3storage.New(cfg.S3)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		c.S3 = client
	}

	utils.Info("components initialized", "db", cfg.Storage.DBPath, "metric", metric, "s3", cfg.S3.Enabled())
	return c, nil
}

// Close освобождает ресурсы.
func (c *Components) Close() error {
	return c.Store.Close()
}

// MergeFallbacks накладывает цвета категорий из конфига на дефолтные.
func MergeFallbacks(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.TrimSpace(k)] = v
	}
	return out
}

// Duplicates ищет дубликаты рецептур по текущему снимку хранилища.
func (c *Components) Duplicates(ctx context.Context) ([]palette.DuplicateGroup, error) {
	records, err := c.Store.ListColors(ctx)
	if err != nil {
		return nil, err
	}
	return palette.FindDuplicates(records), nil
}

// Match подбирает ближайшие цвета к цели в любой нотации.
func (c *Components) Match(ctx context.Context, target colorspace.Value, limit int) (colorspace.RGB, []palette.MatchResult, error) {
	rgb, err := target.ToRGB()
	if err != nil {
		return colorspace.RGB{}, nil, err
	}

	records, err := c.Store.ListColors(ctx)
	if err != nil {
		return colorspace.RGB{}, nil, err
	}

	results, err := c.Matcher.FindNearest(colorspace.Value{RGB: &rgb}, records, limit)
	if err != nil {
		return colorspace.RGB{}, nil, err
	}
	return rgb, results, nil
}

// MatchImage подбирает цвета к среднему цвету фотографии образца.
func (c *Components) MatchImage(ctx context.Context, path string, limit int) (colorspace.RGB, []palette.MatchResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return colorspace.RGB{}, nil, fmt.Errorf("read image: %w", err)
	}

	rgb, err := swatch.SampleColor(data, c.Config.ImageProcessing.SampleSize)
	if err != nil {
		return colorspace.RGB{}, nil, err
	}

	utils.Debug("swatch sampled", "path", path, "rgb", rgb)
	return c.Match(ctx, colorspace.Value{RGB: &rgb}, limit)
}

// Rename каскадно переименовывает пигмент.
func (c *Components) Rename(ctx context.Context, oldName, newName string) (int, error) {
	return c.Renamer.RenameAcrossFormulas(ctx, c.Store, oldName, newName)
}

// ImportFile загружает YAML-снимок с диска в хранилище.
func (c *Components) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}

	records, err := palette.LoadSnapshot(data)
	if err != nil {
		return 0, err
	}
	return c.Store.InsertColors(ctx, records)
}

// Snapshots перечисляет снимки палитр в бакете.
func (c *Components) Snapshots(ctx context.Context, prefix string) ([]s3storage.StoredObject, error) {
	if c.S3 == nil {
		return nil, fmt.Errorf("s3 is not configured")
	}
	if prefix == "" {
		prefix = c.Config.S3.Prefix
	}
	return s3storage.ListSnapshots(ctx, c.S3, prefix)
}

// ImportS3 загружает все снимки из бакета по префиксу.
func (c *Components) ImportS3(ctx context.Context, prefix string) (int, error) {
	if c.S3 == nil {
		return 0, fmt.Errorf("s3 is not configured")
	}
	if prefix == "" {
		prefix = c.Config.S3.Prefix
	}

	records, err := s3storage.LoadPalette(ctx, c.S3, prefix)
	if err != nil {
		return 0, err
	}
	return c.Store.InsertColors(ctx, records)
}
