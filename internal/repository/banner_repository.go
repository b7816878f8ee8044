package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type BannerRepository struct {
	DB *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{DB: db}
}

func (r *BannerRepository) Create(banner *model.Banner) error {
	return r.DB.Create(banner).Error
}

func (r *BannerRepository) FindByID(id string) (*model.Banner, error) {
	var b model.Banner
	err := r.DB.Where("id = ?", id).First(&b).Error
	return &b, err
}

func (r *BannerRepository) ListActive() ([]model.Banner, error) {
	var banners []model.Banner
	err := r.DB.Where("is_active = ?", true).Order("`order` asc, created_at desc").Find(&banners).Error
	return banners, err
}

func (r *BannerRepository) ListAll() ([]model.Banner, error) {
	var banners []model.Banner
	err := r.DB.Order("`order` asc, created_at desc").Find(&banners).Error
	return banners, err
}

func (r *BannerRepository) Update(banner *model.Banner) error {
	return r.DB.Save(banner).Error
}

func (r *BannerRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Banner{}).Error
}
