package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/roomgen/internal/scene"
)

// Recorder собирает метрики одного запуска генератора в собственном реестре,
// чтобы их можно было выгрузить в textfile для node_exporter.
type Recorder struct {
	registry *prometheus.Registry

	objects     *prometheus.CounterVec
	outputBytes *prometheus.GaugeVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder создаёт реестр и регистрирует метрики
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		objects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomgen",
			Name:      "objects_total",
			Help:      "Число объектов сцены по типам.",
		}, []string{"type"}),
		outputBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "roomgen",
			Name:      "output_bytes",
			Help:      "Размер выходного файла: raw — JSON до сжатия, file — на диске.",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roomgen",
			Name:      "generation_seconds",
			Help:      "Длительность генерации и записи сцены.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roomgen",
			Name:      "last_run_timestamp_seconds",
			Help:      "Время завершения последнего запуска (unix).",
		}),
	}

	r.registry.MustRegister(r.objects, r.outputBytes, r.duration, r.lastRun)
	return r
}

// ObserveObjects увеличивает счётчики по типам объектов
func (r *Recorder) ObserveObjects(objects []scene.SceneObject) {
	for t, n := range scene.CountByType(objects) {
		r.objects.WithLabelValues(string(t)).Add(float64(n))
	}
}

// ObserveOutput фиксирует размеры файла
func (r *Recorder) ObserveOutput(rawBytes, fileBytes int64) {
	r.outputBytes.WithLabelValues("raw").Set(float64(rawBytes))
	r.outputBytes.WithLabelValues("file").Set(float64(fileBytes))
}

// ObserveDuration фиксирует длительность запуска и момент его завершения
func (r *Recorder) ObserveDuration(d time.Duration, finished time.Time) {
	r.duration.Set(d.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteTextfile атомарно записывает метрики в формате textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("не удалось записать метрики в %s: %w", path, err)
	}
	return nil
}
