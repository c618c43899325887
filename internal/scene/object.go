package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/annel0/roomgen/internal/vec"
)

// ObjectType — строковый тег объекта сцены. Набор открытый, потребитель
// сам решает, как рисовать незнакомые типы.
type ObjectType string

const (
	TypeBox        ObjectType = "box"
	TypeWhiteboard ObjectType = "whiteboard"
	TypeTable      ObjectType = "table"
	TypeChair      ObjectType = "chair"
)

// IsBox возвращает true для примитива-коробки (стены, пол)
func (t ObjectType) IsBox() bool {
	return t == TypeBox
}

// Color — упакованный RGB (0xRRGGBB). Значение непрозрачное, диапазон не проверяется.
type Color uint32

// Properties — произвольные свойства мебели (например {"size": 1})
type Properties map[string]interface{}

// Clone создаёт глубокую копию свойств
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return map[string]interface{}(Properties(val).Clone())
	case Properties:
		return val.Clone()
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

var (
	ErrMissingType  = errors.New("scene: object type is empty")
	ErrMissingField = errors.New("scene: required field is missing")
	ErrBadPosition  = errors.New("scene: position is not finite")
)

// SceneObject — один размещённый объект комнаты.
// Для коробок значимы Width/Height/Depth/Color, для мебели — Selected/Properties.
type SceneObject struct {
	Type     ObjectType
	Position vec.Vec3Float
	Rotation float64

	Width  float64
	Height float64
	Depth  float64
	Color  Color

	Selected   bool
	Properties Properties
}

// NewBox создаёт коробку с заданными размерами и цветом
func NewBox(width, height, depth float64, color Color, pos vec.Vec3Float) SceneObject {
	return SceneObject{
		Type:     TypeBox,
		Width:    width,
		Height:   height,
		Depth:    depth,
		Color:    color,
		Position: pos,
	}
}

// NewFurniture создаёт предмет мебели с размером 1 и снятым выделением
func NewFurniture(t ObjectType, pos vec.Vec3Float) SceneObject {
	return SceneObject{
		Type:       t,
		Position:   pos,
		Properties: Properties{"size": 1.0},
	}
}

// Clone создаёт копию объекта, не разделяющую память с оригиналом
func (o SceneObject) Clone() SceneObject {
	o.Properties = o.Properties.Clone()
	return o
}

// Validate проверяет инварианты объекта
func (o SceneObject) Validate() error {
	if o.Type == "" {
		return ErrMissingType
	}
	if !o.Position.IsFinite() {
		return fmt.Errorf("%w: %s", ErrBadPosition, o.Type)
	}
	if !o.Type.IsBox() && o.Properties == nil {
		return fmt.Errorf("%w: %s.properties", ErrMissingField, o.Type)
	}
	return nil
}

// Формы на проводе повторяют порядок ключей, который ожидает редактор комнат.
type boxWire struct {
	Type     ObjectType    `json:"type"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Depth    float64       `json:"depth"`
	Color    Color         `json:"color"`
	Position vec.Vec3Float `json:"position"`
	Rotation float64       `json:"rotation"`
}

type furnitureWire struct {
	Type       ObjectType    `json:"type"`
	Rotation   float64       `json:"rotation"`
	Selected   bool          `json:"selected"`
	Properties Properties    `json:"properties"`
	Position   vec.Vec3Float `json:"position"`
}

// MarshalJSON выбирает форму записи по типу объекта
func (o SceneObject) MarshalJSON() ([]byte, error) {
	if o.Type.IsBox() {
		return json.Marshal(boxWire{
			Type:     o.Type,
			Width:    o.Width,
			Height:   o.Height,
			Depth:    o.Depth,
			Color:    o.Color,
			Position: o.Position,
			Rotation: o.Rotation,
		})
	}

	props := o.Properties
	if props == nil {
		props = Properties{}
	}
	return json.Marshal(furnitureWire{
		Type:       o.Type,
		Rotation:   o.Rotation,
		Selected:   o.Selected,
		Properties: props,
		Position:   o.Position,
	})
}

// UnmarshalJSON восстанавливает объект и проверяет наличие обязательных полей
func (o *SceneObject) UnmarshalJSON(data []byte) error {
	var w struct {
		Type       ObjectType     `json:"type"`
		Position   *vec.Vec3Float `json:"position"`
		Rotation   *float64       `json:"rotation"`
		Width      *float64       `json:"width"`
		Height     *float64       `json:"height"`
		Depth      *float64       `json:"depth"`
		Color      *Color         `json:"color"`
		Selected   *bool          `json:"selected"`
		Properties Properties     `json:"properties"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	if w.Type == "" {
		return ErrMissingType
	}
	if w.Position == nil {
		return fmt.Errorf("%w: %s.position", ErrMissingField, w.Type)
	}
	if w.Rotation == nil {
		return fmt.Errorf("%w: %s.rotation", ErrMissingField, w.Type)
	}

	obj := SceneObject{
		Type:     w.Type,
		Position: *w.Position,
		Rotation: *w.Rotation,
	}

	if w.Type.IsBox() {
		if w.Width == nil || w.Height == nil || w.Depth == nil || w.Color == nil {
			return fmt.Errorf("%w: box dimensions or color", ErrMissingField)
		}
		obj.Width, obj.Height, obj.Depth, obj.Color = *w.Width, *w.Height, *w.Depth, *w.Color
	} else {
		if w.Selected == nil || w.Properties == nil {
			return fmt.Errorf("%w: %s.selected or properties", ErrMissingField, w.Type)
		}
		obj.Selected = *w.Selected
		obj.Properties = w.Properties
	}

	*o = obj
	return nil
}

// CountByType считает объекты каждого типа
func CountByType(objects []SceneObject) map[ObjectType]int {
	counts := make(map[ObjectType]int)
	for _, o := range objects {
		counts[o.Type]++
	}
	return counts
}
