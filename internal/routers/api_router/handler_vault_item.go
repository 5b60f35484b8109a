package api_router

import (
	"errors"
	"net/http"

	"github.com/haierkeys/fast-vault-service/internal/app"
	"github.com/haierkeys/fast-vault-service/internal/dto"
	"github.com/haierkeys/fast-vault-service/internal/service"
	pkgapp "github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	apperrors "github.com/haierkeys/fast-vault-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VaultItemHandler 仓库条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type VaultItemHandler struct {
	*Handler
}

// NewVaultItemHandler 创建 VaultItemHandler 实例
func NewVaultItemHandler(a *app.App) *VaultItemHandler {
	return &VaultItemHandler{Handler: NewHandler(a)}
}

// Create 入库一个条目
// @Summary 入库条目
// @Description 上传图片、视频、语音文件，或提交笔记文本与链接
// @Tags 仓库
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "image / video / voice / note / link"
// @Param file formData file false "二进制类型的文件"
// @Param text formData string false "note 文本或 link 地址"
// @Param title formData string false "标题"
// @Success 200 {object} pkgapp.Res{data=dto.VaultItemDTO} "成功"
// @Router /api/vault/items [post]
func (h *VaultItemHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VaultItemCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("VaultItemHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	// 文件可选，是否必须由校验器按类型判断
	var part *service.FilePart
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			h.logError(c.Request.Context(), "VaultItemHandler.Create.Open", err)
			apperrors.ErrorResponse(c, code.ErrorUploadFileFailed.WithDetails(err.Error()))
			return
		}
		defer f.Close()
		part = &service.FilePart{
			Filename: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Body:     f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.App.Logger().Warn("VaultItemHandler.Create.FormFile err", zap.Error(err))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	ctx := c.Request.Context()
	item, err := h.App.IngestService.Ingest(ctx, &service.IngestRequest{
		Owner: callerOwner(c),
		Type:  params.Type,
		File:  part,
		Text:  params.Text,
		Title: params.Title,
	})
	if err != nil {
		h.logError(ctx, "VaultItemHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.NewVaultItemDTO(item)))
}

// List 列出条目
// @Summary 列出条目
// @Description 列出调用者可见的条目，按创建时间倒序，可按类型与分类过滤
// @Tags 仓库
// @Produce json
// @Param params query dto.VaultItemListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes{list=[]dto.VaultItemDTO}} "成功"
// @Router /api/vault/items [get]
func (h *VaultItemHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VaultItemListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("VaultItemHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	items, err := h.App.VaultItemService.List(ctx, callerOwner(c), params.Filter())
	if err != nil {
		h.logError(ctx, "VaultItemHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, dto.NewVaultItemDTOs(items), len(items))
}

// Delete 删除条目
// @Summary 删除条目
// @Description 按 ID 删除条目，受删除策略约束
// @Tags 仓库
// @Produce json
// @Param id query string true "条目 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/vault/items [delete]
func (h *VaultItemHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VaultItemDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("VaultItemHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	if err := h.App.VaultItemService.Delete(ctx, callerOwner(c), params.ID); err != nil {
		h.logError(ctx, "VaultItemHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
