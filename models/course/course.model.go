package course

import (
	"edu/models"
	"time"

	"gorm.io/gorm"
)

// Subject groups courses by topic
type Subject struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Title string `json:"title" gorm:"size:200;not null"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
}

// Course is owned by the instructor who created it
type Course struct {
	ID        uint          `json:"id" gorm:"primarykey"`
	OwnerID   uint          `json:"owner_id" gorm:"index;not null"`
	Owner     *models.User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	SubjectID uint          `json:"subject_id" gorm:"index;not null"`
	Subject   *Subject      `json:"subject,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Title     string        `json:"title" gorm:"size:200;not null"`
	Slug      string        `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Overview  string        `json:"overview" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at"`
	Modules   []Module      `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Students  []models.User `json:"-" gorm:"many2many:course_students;constraint:OnDelete:CASCADE"`
}

// OwnedBy restricts a course query to courses of the given owner
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("courses.owner_id = ?", userID)
	}
}

// Newest sorts courses by creation time, newest first
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("courses.created_at desc").Order("courses.id desc")
}
