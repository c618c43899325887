package scene

import "github.com/annel0/roomgen/internal/vec"

// Параметры ряда парт в каталоге по умолчанию
const (
	catalogPairs  = 5
	catalogStartX = -5.0
	catalogStepX  = 2.5
	furnitureY    = 0.5
	tableZ        = -3.0
	chairZ        = -3.8
)

// Catalog — упорядоченный набор шаблонов мебели
type Catalog []SceneObject

// DefaultCatalog возвращает пять пар стол/стул, расставленных вдоль X с шагом 2.5
func DefaultCatalog() Catalog {
	catalog := make(Catalog, 0, catalogPairs*2)
	for i := 0; i < catalogPairs; i++ {
		x := catalogStartX + float64(i)*catalogStepX
		catalog = append(catalog,
			NewFurniture(TypeTable, vec.NewVec3Float(x, furnitureY, tableZ)),
			NewFurniture(TypeChair, vec.NewVec3Float(x, furnitureY, chairZ)),
		)
	}
	return catalog
}

// Clone копирует каталог вместе со свойствами всех шаблонов
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for i, tpl := range c {
		out[i] = tpl.Clone()
	}
	return out
}

// Validate проверяет каждый шаблон каталога
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	for _, tpl := range c {
		if err := tpl.Validate(); err != nil {
			return err
		}
	}
	return nil
}
