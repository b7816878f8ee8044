package controller

import (
	"errors"
	"strconv"

	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// Register godoc
// @Summary 学员注册建档
// @Description 登录后补充个人资料，完成门户注册
// @Tags 学员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RegistrationRequest true "注册资料"
// @Success 201 {object} util.Response{data=model.StudentProfile}
// @Failure 400 {object} util.Response
// @Router /api/students/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.StudentService.Register(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, profile)
}

// Me godoc
// @Summary 学员个人数据
// @Description 个人资料和已报名课程
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentData}
// @Failure 404 {object} util.Response "尚未注册建档"
// @Router /api/students/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.StudentService.GetStudentData(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotRegistered) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, data)
}

// TestHistory godoc
// @Summary 我的测试历史
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TestResult}
// @Router /api/students/me/results [get]
func (c *StudentController) TestHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.StudentService.TestHistory(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// List godoc
// @Summary 学员列表
// @Tags 学员管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param name query string false "按姓名模糊搜索"
// @Success 200 {object} util.PageResponse{data=[]model.StudentProfile}
// @Router /api/admin/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, total, err := c.StudentService.List(page, limit, ctx.Query("name"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessPage(ctx, profiles, total, page, limit)
}

// CourseResults godoc
// @Summary 课程成绩列表
// @Tags 学员管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse{data=[]model.TestResult}
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id}/results [get]
func (c *StudentController) CourseResults(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	results, total, err := c.StudentService.CourseResults(ctx.Param("id"), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessPage(ctx, results, total, page, limit)
}
