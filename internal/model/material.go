package model

// Material 课程资料（PDF讲义、视频课等），视频入库时探测时长并生成缩略图
// swagger:model Material
type Material struct {
	UUIDBase
	CourseID     string  `gorm:"index;type:varchar(36)" json:"courseId"`
	Title        string  `gorm:"size:255;not null" json:"title"`
	FileURL      string  `gorm:"size:512" json:"fileUrl"`
	FileType     string  `gorm:"size:50" json:"fileType"` // pdf, video, image
	Size         int64   `gorm:"default:0" json:"size"`
	Duration     float64 `gorm:"default:0" json:"duration"` // 视频时长（秒）
	ThumbnailURL string  `gorm:"size:512" json:"thumbnailUrl"`
}

func (Material) TableName() string {
	return "materials"
}
