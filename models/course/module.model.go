package course

import (
	"fmt"

	"gorm.io/gorm"
)

// Module represents a section within a course
type Module struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CourseID    uint      `json:"course_id" gorm:"not null;index:idx_module_course_order,priority:1"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Order       *int      `json:"order" gorm:"column:order_index;not null;index:idx_module_course_order,priority:2"`
	Contents    []Content `json:"contents,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (m *Module) OrderValue() (int, bool) {
	if m.Order == nil {
		return 0, false
	}
	return *m.Order, true
}

func (m *Module) SetOrderValue(order int) {
	m.Order = &order
}

func (m Module) String() string {
	if m.Order == nil {
		return m.Title
	}
	return fmt.Sprintf("%d. %s", *m.Order, m.Title)
}

// ModulesOwnedBy restricts a module query to modules of courses owned by userID
func ModulesOwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN courses ON courses.id = modules.course_id").
			Where("courses.owner_id = ?", userID)
	}
}

// ByPosition sorts siblings by their order, ties broken by insertion
func ByPosition(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".order_index asc").Order(table + ".id asc")
	}
}
