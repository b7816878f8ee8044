package controller

import (
	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BannerController struct {
	BannerService *service.BannerService
}

func NewBannerController(bannerService *service.BannerService) *BannerController {
	return &BannerController{BannerService: bannerService}
}

// ListActive godoc
// @Summary 门户轮播图
// @Tags 轮播图
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Banner}
// @Router /api/banners [get]
func (c *BannerController) ListActive(ctx *gin.Context) {
	banners, err := c.BannerService.ListActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, banners)
}

// ListAll godoc
// @Summary 全部轮播图（含未启用）
// @Tags 轮播图管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Banner}
// @Router /api/admin/banners [get]
func (c *BannerController) ListAll(ctx *gin.Context) {
	banners, err := c.BannerService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, banners)
}

// Create godoc
// @Summary 创建轮播图
// @Tags 轮播图管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BannerRequest true "轮播图信息"
// @Success 201 {object} util.Response{data=model.Banner}
// @Failure 400 {object} util.Response
// @Router /api/admin/banners [post]
func (c *BannerController) Create(ctx *gin.Context) {
	var req service.BannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	banner, err := c.BannerService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, banner)
}

// Update godoc
// @Summary 更新轮播图
// @Tags 轮播图管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "轮播图ID"
// @Param body body service.BannerUpdateRequest true "轮播图信息"
// @Success 200 {object} util.Response{data=model.Banner}
// @Failure 404 {object} util.Response
// @Router /api/admin/banners/{id} [put]
func (c *BannerController) Update(ctx *gin.Context) {
	var req service.BannerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	banner, err := c.BannerService.Update(ctx.Param("id"), req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, banner)
}

// UploadImage godoc
// @Summary 上传轮播图片
// @Tags 轮播图管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/admin/banners/upload [post]
func (c *BannerController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.BannerService.UploadImage(ctx.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// Delete godoc
// @Summary 删除轮播图
// @Tags 轮播图管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "轮播图ID"
// @Success 200 {object} util.Response
// @Router /api/admin/banners/{id} [delete]
func (c *BannerController) Delete(ctx *gin.Context) {
	if err := c.BannerService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
