package app

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/annel0/roomgen/internal/config"
	"github.com/annel0/roomgen/internal/export"
	"github.com/annel0/roomgen/internal/logging"
	"github.com/annel0/roomgen/internal/metrics"
	"github.com/annel0/roomgen/internal/scene"
	"github.com/annel0/roomgen/internal/storage"
)

// Report — итог одного запуска
type Report struct {
	RunID    uuid.UUID // uuid.Nil, если архив выключен
	Seed     int64
	Count    int
	Jitter   float64
	Result   export.Result
	Duration time.Duration
}

// Run выполняет конвейер: оболочка комнаты + экземпляры мебели -> JSON-файл,
// затем (по конфигурации) метрики и архив запуска.
func Run(cfg *config.Config) (Report, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	compression, err := export.ParseCompression(cfg.Output.Compression)
	if err != nil {
		return Report{}, err
	}

	started := time.Now()

	gen, err := scene.NewGenerator(scene.DefaultCatalog(), scene.Options{
		Jitter: cfg.Generator.Jitter,
		Seed:   cfg.Generator.Seed,
	})
	if err != nil {
		return Report{}, fmt.Errorf("генератор: %w", err)
	}
	logging.Debug("Генератор: count=%d jitter=%.2f seed=%d", cfg.Generator.Count, gen.Jitter(), gen.Seed())

	objects, err := scene.Build(gen, cfg.Generator.Count)
	if err != nil {
		return Report{}, fmt.Errorf("генерация сцены: %w", err)
	}

	path := compression.OutputPath(cfg.Output.GetPath())
	result, err := export.NewWriter(compression).WriteFile(path, objects)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Seed:     gen.Seed(),
		Count:    cfg.Generator.Count,
		Jitter:   gen.Jitter(),
		Result:   result,
		Duration: time.Since(started),
	}

	logging.Info("💾 %s: %d объектов, %s (JSON %s, сжатие %s), xxhash=%016x",
		result.Path, result.Objects,
		humanize.Bytes(uint64(result.FileBytes)), humanize.Bytes(uint64(result.RawBytes)),
		result.Compression, result.Checksum)

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveObjects(objects)
		rec.ObserveOutput(result.RawBytes, result.FileBytes)
		rec.ObserveDuration(report.Duration, time.Now())
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return report, err
		}
		logging.Debug("📈 Метрики записаны в %s", cfg.Metrics.Textfile)
	}

	if cfg.Archive.Dir != "" {
		id, err := archiveRun(cfg.Archive.Dir, report, objects)
		if err != nil {
			return report, err
		}
		report.RunID = id
		logging.Info("🗄️ Запуск %s сохранён в архив %s", id, cfg.Archive.Dir)
	}

	return report, nil
}

// archiveRun сохраняет несжатый JSON сцены и метаданные запуска
func archiveRun(dir string, report Report, objects []scene.SceneObject) (uuid.UUID, error) {
	payload, err := export.Marshal(objects)
	if err != nil {
		return uuid.Nil, err
	}

	archive, err := storage.OpenSceneArchive(dir)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if cerr := archive.Close(); cerr != nil {
			logging.Warn("Ошибка закрытия архива %s: %v", dir, cerr)
		}
	}()

	meta, err := archive.Save(storage.RunMeta{
		Seed:     report.Seed,
		Count:    report.Count,
		Jitter:   report.Jitter,
		Objects:  report.Result.Objects,
		Checksum: report.Result.Checksum,
		Output:   report.Result.Path,
	}, payload)
	if err != nil {
		return uuid.Nil, err
	}
	return meta.ID, nil
}
