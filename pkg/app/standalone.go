package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilkoid/paintmix/pkg/config"
)

// ConfigPathFinder — стратегия поиска config.yaml.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// StandaloneConfigPathFinder ищет конфиг для CLI утилит.
//
// Правила:
// 1. Если указан флаг -config — использует его (может быть относительный путь)
// 2. Ищет config.yaml в той же папке где находится бинарник
// 3. Ищет config.yaml в текущей директории
type StandaloneConfigPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath возвращает путь к config.yaml или пустую строку.
func (f *StandaloneConfigPathFinder) FindConfigPath() string {
	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	// 3. Текущая директория
	if _, err := os.Stat("config.yaml"); err == nil {
		return resolveAbsPath("config.yaml")
	}

	return ""
}

// InitializeConfig загружает конфиг.
//
// Явно указанный, но отсутствующий файл — ошибка. Если конфиг не найден
// и флаг не задан, используются дефолты (база paintmix.db рядом с запуском).
// Относительный storage.db_path считается от директории конфига.
func InitializeConfig(finder ConfigPathFinder, explicit bool) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	if cfgPath == "" {
		if explicit {
			return nil, "", fmt.Errorf("config.yaml not found")
		}
		return config.Default(), "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}

	if !filepath.IsAbs(cfg.Storage.DBPath) {
		cfg.Storage.DBPath = filepath.Join(filepath.Dir(cfgPath), cfg.Storage.DBPath)
	}

	return cfg, cfgPath, nil
}

func resolveAbsPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
