package models

// Permission codenames checked by CheckPermissionMiddleware
const (
	PermAddSubject   = "courses.add_subject"
	PermAddCourse    = "courses.add_course"
	PermChangeCourse = "courses.change_course"
	PermDeleteCourse = "courses.delete_course"
)

type Permission struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_user_permission"`
	User       User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Permission string `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_permission"` // e.g. "courses.add_course"
}
