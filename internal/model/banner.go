package model

// Banner 首页轮播图，管理后台维护
// swagger:model Banner
type Banner struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:512" json:"imageUrl"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (Banner) TableName() string {
	return "banners"
}
