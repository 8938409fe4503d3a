package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Зеркалит структуру config.yaml.
type AppConfig struct {
	Storage         StorageConfig   `yaml:"storage"`
	Matching        MatchingConfig  `yaml:"matching"`
	S3              S3Config        `yaml:"s3"`
	ImageProcessing ImageProcConfig `yaml:"image_processing"`
	App             AppSpecific     `yaml:"app"`
}

// StorageConfig — настройки SQLite хранилища цветов.
type StorageConfig struct {
	DBPath      string        `yaml:"db_path"`      // Путь к файлу базы
	BusyTimeout time.Duration `yaml:"busy_timeout"` // Ожидание блокировки, "5s"
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *StorageConfig) GetDefaults() StorageConfig {
	result := *c

	if result.DBPath == "" {
		result.DBPath = "paintmix.db"
	}
	if result.BusyTimeout == 0 {
		result.BusyTimeout = 5 * time.Second
	}

	return result
}

// MatchingConfig — настройки поиска ближайших цветов.
type MatchingConfig struct {
	DefaultLimit      int               `yaml:"default_limit"`      // Сколько кандидатов показывать
	Metric            string            `yaml:"metric"`             // "cie76" или "ciede2000"
	CategoryFallbacks map[string]string `yaml:"category_fallbacks"` // Категория -> HEX
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *MatchingConfig) GetDefaults() MatchingConfig {
	result := *c

	if result.DefaultLimit <= 0 {
		result.DefaultLimit = 10
	}
	if result.Metric == "" {
		result.Metric = "cie76"
	}

	return result
}

// S3Config — объектное хранилище со снимками палитр.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`     // Каталог снимков в бакете
	RateLimit int    `yaml:"rate_limit"` // Загрузок в минуту
	Burst     int    `yaml:"burst"`
}

// Enabled сообщает что S3 настроен.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *S3Config) GetDefaults() S3Config {
	result := *c

	if result.RateLimit == 0 {
		result.RateLimit = 120
	}
	if result.Burst == 0 {
		result.Burst = 5
	}

	return result
}

// ImageProcConfig — настройки выборки цвета с фото образца.
type ImageProcConfig struct {
	SampleSize int `yaml:"sample_size"` // Сторона уменьшенного изображения
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug  bool   `yaml:"debug"`
	LogDir string `yaml:"log_dir"`
}

// Default возвращает конфиг без файла: все секции с дефолтами.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.applyDefaults()
	return cfg
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает содержимое config.yaml.
//
// ${VAR} и $VAR заменяются значениями из окружения.
func Parse(raw []byte) (*AppConfig, error) {
	contentWithEnv := os.ExpandEnv(string(raw))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	c.Storage = c.Storage.GetDefaults()
	c.Matching = c.Matching.GetDefaults()
	c.S3 = c.S3.GetDefaults()
	if c.ImageProcessing.SampleSize <= 0 {
		c.ImageProcessing.SampleSize = 16
	}
}

// validate проверяет согласованность полей.
func (c *AppConfig) validate() error {
	switch strings.ToLower(c.Matching.Metric) {
	case "cie76", "ciede2000":
	default:
		return fmt.Errorf("matching.metric must be cie76 or ciede2000, got %q", c.Matching.Metric)
	}
	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	for category, hex := range c.Matching.CategoryFallbacks {
		if strings.TrimSpace(hex) == "" {
			return fmt.Errorf("matching.category_fallbacks[%s] is empty", category)
		}
	}
	return nil
}
