package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string   `gorm:"size:100;not null" json:"name"`
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100" json:"-"` // 仅管理员本地账号使用，Google 登录账号为空
	GoogleUID string   `gorm:"size:128;index" json:"-"`
	PhotoURL  string   `gorm:"size:255" json:"photoUrl"`
	Role      UserRole `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	Disabled  bool     `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// StudentProfile 注册弹窗提交的报名信息，报名后才能选课
// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID    uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	FullName  string `gorm:"size:100;not null" json:"fullName"`
	DOB       string `gorm:"size:20" json:"dob"`
	Phone     string `gorm:"size:20" json:"phone"`
	Education string `gorm:"size:100" json:"education"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
