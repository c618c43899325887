package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/roomgen/internal/export"
	"github.com/annel0/roomgen/internal/logging"
	"github.com/annel0/roomgen/internal/scene"
)

// Config корневая структура конфигурации генератора.
// Все секции необязательны; отсутствующие ключи сохраняют значения по умолчанию.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type GeneratorConfig struct {
	Count  int     `yaml:"count"`
	Jitter float64 `yaml:"jitter"`
	Seed   int64   `yaml:"seed"`
}

type OutputConfig struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"`
}

type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LoggingConfig: пустой Dir отключает файл лога, консольный вывод идёт в stderr
type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

// DefaultOutputPath — имя файла, которое ждёт редактор комнат
const DefaultOutputPath = "huge_room_data.json"

var ErrInvalidConfig = errors.New("invalid config")

// Default возвращает конфигурацию эталонного запуска: 1000 объектов, разброс ±10
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Count:  scene.DefaultCount,
			Jitter: scene.DefaultJitter,
		},
		Output: OutputConfig{
			Path:        DefaultOutputPath,
			Compression: string(export.CompressionNone),
		},
		Logging: LoggingConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// applyEnv переносит значения из переменных окружения поверх дефолтов.
// Приоритет итоговой конфигурации: флаги -> YAML -> env -> default.
func applyEnv(c *Config) {
	c.Generator.Count = intFromEnv("ROOMGEN_COUNT", c.Generator.Count)
	c.Generator.Jitter = floatFromEnv("ROOMGEN_JITTER", c.Generator.Jitter)
	if v := os.Getenv("ROOMGEN_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("ROOMGEN_ARCHIVE_DIR"); v != "" {
		c.Archive.Dir = v
	}
}

// intFromEnv возвращает значение переменной, если она задана и корректна
func intFromEnv(envVar string, fallback int) int {
	if envVal := os.Getenv(envVar); envVal != "" {
		if n, err := strconv.Atoi(envVal); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func floatFromEnv(envVar string, fallback float64) float64 {
	if envVal := os.Getenv(envVar); envVal != "" {
		if f, err := strconv.ParseFloat(envVal, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}

// GetPath возвращает путь выходного файла
func (o *OutputConfig) GetPath() string {
	if o.Path == "" {
		return DefaultOutputPath
	}
	return o.Path
}

// Validate проверяет значения, которые нельзя молча заменить дефолтом
func (c *Config) Validate() error {
	if c.Generator.Count < 0 {
		return fmt.Errorf("%w: generator.count = %d", ErrInvalidConfig, c.Generator.Count)
	}
	if c.Generator.Jitter < 0 {
		return fmt.Errorf("%w: generator.jitter = %v", ErrInvalidConfig, c.Generator.Jitter)
	}
	if _, err := export.ParseCompression(c.Output.Compression); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.ConsoleLevel); err != nil {
		return fmt.Errorf("%w: logging.console_level: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.FileLevel); err != nil {
		return fmt.Errorf("%w: logging.file_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх Default() и переменных окружения.
// Если path == "", пытается прочитать из ENV ROOMGEN_CONFIG, иначе обходится без файла.
func Load(path string) (*Config, error) {
	cfg := Default()
	applyEnv(cfg)

	if path == "" {
		path = os.Getenv("ROOMGEN_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфиг %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
