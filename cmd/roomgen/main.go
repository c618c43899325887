package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/annel0/roomgen/internal/app"
	"github.com/annel0/roomgen/internal/config"
	"github.com/annel0/roomgen/internal/logging"
	"github.com/annel0/roomgen/internal/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("❌ %v", err)
	}
}

// run разбирает аргументы, собирает конфигурацию и пишет отчёт в stdout.
// Приоритет: явно заданные флаги -> YAML -> env -> default.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("roomgen", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "YAML config path (default: $ROOMGEN_CONFIG)")
		count       = fs.Int("count", scene.DefaultCount, "Number of furniture instances to generate")
		jitter      = fs.Float64("jitter", scene.DefaultJitter, "Max random offset along X and Z")
		seed        = fs.Int64("seed", 0, "Random seed (0 = different output every run)")
		out         = fs.String("out", config.DefaultOutputPath, "Output file")
		compress    = fs.String("compress", "none", "Output compression: none, gzip, zstd")
		archiveDir  = fs.String("archive", "", "BadgerDB directory to keep a history of runs")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Явно заданные флаги важнее файла конфигурации
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			cfg.Generator.Count = *count
		case "jitter":
			cfg.Generator.Jitter = *jitter
		case "seed":
			cfg.Generator.Seed = *seed
		case "out":
			cfg.Output.Path = *out
		case "compress":
			cfg.Output.Compression = *compress
		case "archive":
			cfg.Archive.Dir = *archiveDir
		case "metrics-file":
			cfg.Metrics.Textfile = *metricsFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.InitDefaultLogger("roomgen", cfg.Logging.Dir); err != nil {
		return fmt.Errorf("ошибка инициализации логирования: %w", err)
	}
	defer logging.CloseDefaultLogger()

	consoleLevel, _ := logging.ParseLevel(cfg.Logging.ConsoleLevel)
	fileLevel, _ := logging.ParseLevel(cfg.Logging.FileLevel)
	logging.Default().SetLevels(consoleLevel, fileLevel)

	logging.Debug("Конфигурация: %+v", *cfg)

	report, err := app.Run(cfg)
	if err != nil {
		logging.Error("Генерация не удалась: %v", err)
		return err
	}

	fmt.Fprintf(stdout, "Generated %s with %d objects :)\n", report.Result.Path, report.Result.Objects)
	return nil
}
