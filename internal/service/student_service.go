package service

import (
	"errors"
	"fmt"
	"time"

	"odigyan_backend/internal/model"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	Repo       *repository.StudentRepository
	CourseRepo *repository.CourseRepository
	ResultRepo *repository.TestResultRepository
}

func NewStudentService(repo *repository.StudentRepository, courseRepo *repository.CourseRepository, resultRepo *repository.TestResultRepository) *StudentService {
	return &StudentService{Repo: repo, CourseRepo: courseRepo, ResultRepo: resultRepo}
}

type RegistrationRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	DOB       string `json:"dob"`
	Phone     string `json:"phone"`
	Education string `json:"education"`
}

// Register 完成报名。已报名的学生重复提交时更新资料。
func (s *StudentService) Register(userID uint, req RegistrationRequest) (*model.StudentProfile, error) {
	if req.DOB != "" {
		if _, err := time.Parse(util.DateFormat, req.DOB); err != nil {
			return nil, fmt.Errorf("invalid date of birth, expected %s", util.DateFormat)
		}
	}

	profile, err := s.Repo.FindByUserID(userID)
	if err == nil {
		profile.FullName = req.FullName
		profile.DOB = req.DOB
		profile.Phone = req.Phone
		profile.Education = req.Education
		if err := s.Repo.Update(profile); err != nil {
			return nil, err
		}
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.StudentProfile{
		UserID:    userID,
		FullName:  req.FullName,
		DOB:       req.DOB,
		Phone:     req.Phone,
		Education: req.Education,
	}
	if err := s.Repo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// IsRegistered 未报名的学生前端会弹出报名表单
func (s *StudentService) IsRegistered(userID uint) (bool, error) {
	_, err := s.Repo.FindByUserID(userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// StudentData 学生主页数据：档案 + 已选课程及进度
type StudentData struct {
	Profile         *model.StudentProfile `json:"student"`
	EnrolledCourses []model.Enrollment    `json:"enrolledCourses"`
}

func (s *StudentService) GetStudentData(userID uint) (*StudentData, error) {
	profile, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotRegistered
		}
		return nil, err
	}

	enrollments, err := s.CourseRepo.ListEnrollments(userID)
	if err != nil {
		return nil, err
	}

	return &StudentData{Profile: profile, EnrolledCourses: enrollments}, nil
}

func (s *StudentService) List(page, limit int, name string) ([]model.StudentProfile, int64, error) {
	return s.Repo.List(page, limit, name)
}

func (s *StudentService) TestHistory(userID uint) ([]model.TestResult, error) {
	return s.ResultRepo.ListByUser(userID)
}

// CourseResults 管理端查看某课程的全部成绩
func (s *StudentService) CourseResults(courseID string, page, limit int) ([]model.TestResult, int64, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, 0, util.ErrCourseNotFound
	}
	return s.ResultRepo.ListByCourse(courseID, page, limit)
}
