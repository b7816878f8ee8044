package controller

import (
	"errors"

	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// ListByCourse godoc
// @Summary 课程资料列表
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Material}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/materials [get]
func (c *MaterialController) ListByCourse(ctx *gin.Context) {
	materials, err := c.MaterialService.ListByCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, materials)
}

// Get godoc
// @Summary 资料详情
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param id path string true "资料ID"
// @Success 200 {object} util.Response{data=model.Material}
// @Failure 404 {object} util.Response
// @Router /api/materials/{id} [get]
func (c *MaterialController) Get(ctx *gin.Context) {
	material, err := c.MaterialService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, material)
}

// Upload godoc
// @Summary 上传课程资料
// @Description 支持图片、PDF 和视频，视频会生成缩略图
// @Tags 资料管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param title formData string true "资料标题"
// @Param file formData file true "资料文件"
// @Success 201 {object} util.Response{data=model.Material}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses/{id}/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file required")
		return
	}

	material, err := c.MaterialService.Upload(ctx.Request.Context(), ctx.Param("id"), title, fileHeader)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, material)
}

// Delete godoc
// @Summary 删除课程资料
// @Tags 资料管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	if err := c.MaterialService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
