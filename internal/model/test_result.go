package model

import (
	"encoding/json"
	"time"
)

// TestResult 一次模拟测试的结算结果。Answers 保存逐题明细的 JSON，
// 结果产生后只读，保存失败也不回滚或重算。
// swagger:model TestResult
type TestResult struct {
	BaseModel
	UserID      uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	CourseID    string          `gorm:"index;type:varchar(36)" json:"courseId"`
	Score       int             `gorm:"not null" json:"score"` // 百分制
	Correct     int             `gorm:"default:0" json:"correct"`
	Wrong       int             `gorm:"default:0" json:"wrong"`
	Total       int             `gorm:"not null" json:"total"`
	TimeSpent   int             `gorm:"default:0" json:"timeSpent"` // 秒
	Answers     json.RawMessage `gorm:"type:json" json:"answers"`
	CompletedAt time.Time       `json:"completedAt"`
}

func (TestResult) TableName() string {
	return "test_results"
}
