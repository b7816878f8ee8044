package controller

import (
	"errors"
	"strconv"

	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService  *service.CourseService
	StudentService *service.StudentService
}

func NewCourseController(courseService *service.CourseService, studentService *service.StudentService) *CourseController {
	return &CourseController{CourseService: courseService, StudentService: studentService}
}

// List godoc
// @Summary 已发布课程列表
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.ListPublished(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// Enroll godoc
// @Summary 报名课程
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 403 {object} util.Response "尚未完成报名建档"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 选课前必须完成报名建档
	registered, err := c.StudentService.IsRegistered(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !registered {
		util.Forbidden(ctx)
		return
	}

	enrollment, err := c.CourseService.Enroll(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "已报名该课程")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// MyCourses godoc
// @Summary 我报名的课程
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CourseService.EnrolledCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// ProgressRequest 学习进度上报
type ProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// UpdateProgress godoc
// @Summary 上报学习进度
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body ProgressRequest true "进度百分比"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/progress [put]
func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.UpdateProgress(claims.UserID, ctx.Param("id"), req.Progress); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListAll godoc
// @Summary 全部课程（含未发布）
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse{data=[]model.Course}
// @Router /api/admin/courses [get]
func (c *CourseController) ListAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := c.CourseService.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessPage(ctx, courses, total, page, limit)
}

// Create godoc
// @Summary 创建课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
