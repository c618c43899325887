package scene

import "github.com/annel0/roomgen/internal/vec"

// Цвета оболочки комнаты
const (
	FloorColor Color = 13421772 // 0xCCCCCC
	WallColor  Color = 4473924  // 0x444444
)

// FixtureCount — число объектов, которые всегда присутствуют в сцене
const FixtureCount = 6

// Fixtures возвращает оболочку комнаты: пол, четыре стены и доску.
// Каждый вызов строит новый срез, так что вызывающий код может его менять.
func Fixtures() []SceneObject {
	return []SceneObject{
		// Пол 30x20
		NewBox(30, 0.2, 20, FloorColor, vec.NewVec3Float(0, 0, 0)),
		// Дальняя и ближняя стены
		NewBox(30, 3, 0.2, WallColor, vec.NewVec3Float(0, 1.5, -10)),
		NewBox(30, 3, 0.2, WallColor, vec.NewVec3Float(0, 1.5, 10)),
		// Боковые стены
		NewBox(0.2, 3, 20, WallColor, vec.NewVec3Float(-15, 1.5, 0)),
		NewBox(0.2, 3, 20, WallColor, vec.NewVec3Float(15, 1.5, 0)),
		NewFurniture(TypeWhiteboard, vec.NewVec3Float(
			-0.06710898809089949,
			1.6846811489857818,
			9.86241474523793,
		)),
	}
}
