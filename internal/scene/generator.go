package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Значения по умолчанию для генерации
const (
	DefaultCount  = 1000
	DefaultJitter = 10.0
)

var (
	ErrEmptyCatalog  = errors.New("scene: template catalog is empty")
	ErrNegativeCount = errors.New("scene: instance count is negative")
	ErrInvalidJitter = errors.New("scene: jitter must be a finite non-negative number")
)

// Options управляет генерацией экземпляров.
// Seed == 0 означает сид от текущего времени (каждый запуск уникален).
type Options struct {
	Jitter float64
	Seed   int64
}

// DefaultOptions возвращает разброс ±10 и несидированный генератор
func DefaultOptions() Options {
	return Options{Jitter: DefaultJitter}
}

// Generator размещает копии шаблонов мебели со случайным смещением по X и Z
type Generator struct {
	catalog Catalog
	jitter  float64
	seed    int64
	rng     *rand.Rand
}

// NewGenerator создаёт генератор поверх собственной копии каталога
func NewGenerator(catalog Catalog, opts Options) (*Generator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if opts.Jitter < 0 || math.IsNaN(opts.Jitter) || math.IsInf(opts.Jitter, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJitter, opts.Jitter)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		catalog: catalog.Clone(),
		jitter:  opts.Jitter,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed возвращает фактический сид; с ним запуск можно повторить
func (g *Generator) Seed() int64 {
	return g.seed
}

// Jitter возвращает полуширину диапазона смещения
func (g *Generator) Jitter() float64 {
	return g.jitter
}

// Instance выбирает шаблон равновероятно и сдвигает его копию по X и Z
func (g *Generator) Instance() SceneObject {
	tpl := g.catalog[g.rng.Intn(len(g.catalog))]
	obj := tpl.Clone()

	dx := g.offset()
	dz := g.offset()
	obj.Position = obj.Position.OffsetXZ(dx, dz)
	return obj
}

// Generate создаёт count независимых экземпляров
func (g *Generator) Generate(count int) ([]SceneObject, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	objects := make([]SceneObject, 0, count)
	for i := 0; i < count; i++ {
		objects = append(objects, g.Instance())
	}
	return objects, nil
}

// offset возвращает равномерное значение из [-jitter, jitter)
func (g *Generator) offset() float64 {
	return (g.rng.Float64()*2 - 1) * g.jitter
}

// Build собирает полную сцену: оболочка комнаты, затем count экземпляров мебели
func Build(g *Generator, count int) ([]SceneObject, error) {
	generated, err := g.Generate(count)
	if err != nil {
		return nil, err
	}

	objects := make([]SceneObject, 0, FixtureCount+len(generated))
	objects = append(objects, Fixtures()...)
	objects = append(objects, generated...)
	return objects, nil
}
