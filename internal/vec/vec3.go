package vec

import "math"

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Ось Y направлена вверх, X и Z задают горизонтальную плоскость комнаты.
type Vec3Float struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// NewVec3Float создаёт вектор из трёх координат
func NewVec3Float(x, y, z float64) Vec3Float {
	return Vec3Float{X: x, Y: y, Z: z}
}

// OffsetXZ сдвигает вектор в горизонтальной плоскости, Y не меняется
func (v Vec3Float) OffsetXZ(dx, dz float64) Vec3Float {
	return Vec3Float{X: v.X + dx, Y: v.Y, Z: v.Z + dz}
}

// IsFinite сообщает, что ни одна координата не NaN и не бесконечность
func (v Vec3Float) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
