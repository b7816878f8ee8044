package model

// swagger:model Course
type Course struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsPublished bool   `gorm:"default:true" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment 学生选课记录，Progress 为课程完成百分比
type Enrollment struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_enroll_user_course,unique;type:bigint unsigned" json:"userId"`
	CourseID string `gorm:"index:idx_enroll_user_course,unique;type:varchar(36)" json:"courseId"`
	Progress int    `gorm:"default:0" json:"progress"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
