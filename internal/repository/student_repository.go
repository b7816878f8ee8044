package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(profile *model.StudentProfile) error {
	return r.DB.Create(profile).Error
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *StudentRepository) Update(profile *model.StudentProfile) error {
	return r.DB.Save(profile).Error
}

// List 管理端学生列表，支持按姓名模糊搜索
func (r *StudentRepository) List(page, limit int, name string) ([]model.StudentProfile, int64, error) {
	var profiles []model.StudentProfile
	var total int64

	query := r.DB.Model(&model.StudentProfile{})
	if name != "" {
		query = query.Where("full_name LIKE ?", "%"+name+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, total, err
}
