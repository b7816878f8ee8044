package model

import "encoding/json"

// MockQuestion 模拟测试题库中的一道单选题。
// Options 为 JSON 字符串数组，Answer 是正确项在 Options 中的下标。
// swagger:model MockQuestion
type MockQuestion struct {
	UUIDBase
	CourseID    string          `gorm:"index;type:varchar(36)" json:"courseId"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	Options     json.RawMessage `gorm:"type:json" json:"options"`
	Answer      int             `gorm:"default:0" json:"answer"`
	Section     string          `gorm:"size:100" json:"section"`
	Explanation string          `gorm:"type:text" json:"explanation"`
	Order       int             `gorm:"default:0" json:"order"`
}

func (MockQuestion) TableName() string {
	return "mock_questions"
}
