package code

import "net/http"

var (
	Success       = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessDelete = NewSuss(3, lang{en: "Deleted successfully", zh_cn: "删除成功"})

	ErrorServerInternal       = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI          = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "找不到接口"})
	ErrorInvalidParams        = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorTooManyRequests      = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorInvalidUserAuthToken = NewError(401, http.StatusUnauthorized, lang{en: "Invalid session token", zh_cn: "会话令牌无效"})
	ErrorInvalidStorageType   = NewError(505, http.StatusInternalServerError, lang{en: "Invalid storage type", zh_cn: "存储类型无效"})

	// Ingestion validation 入库校验
	ErrorInvalidItemType     = NewError(1001, http.StatusBadRequest, lang{en: "Invalid type. Must be: image, video, voice, note, or link", zh_cn: "类型无效，必须为 image、video、voice、note 或 link"})
	ErrorMissingFile         = NewError(1002, http.StatusBadRequest, lang{en: "File is required", zh_cn: "必须上传文件"})
	ErrorUnsupportedMimeType = NewError(1003, http.StatusBadRequest, lang{en: "Invalid file type", zh_cn: "文件类型不被允许"})
	ErrorFileTooLarge        = NewError(1004, http.StatusBadRequest, lang{en: "File too large", zh_cn: "文件过大"})
	ErrorMissingText         = NewError(1005, http.StatusBadRequest, lang{en: "Text content is required", zh_cn: "必须填写文本内容"})
	ErrorInvalidURL          = NewError(1006, http.StatusBadRequest, lang{en: "Invalid URL format", zh_cn: "URL 格式无效"})

	// Storage / index 存储与索引
	ErrorUploadFileFailed = NewError(1101, http.StatusInternalServerError, lang{en: "Failed to process upload", zh_cn: "上传处理失败"})
	ErrorDBQuery          = NewError(1102, http.StatusInternalServerError, lang{en: "Failed to access vault index", zh_cn: "访问仓库索引失败"})

	// Vault item 仓库条目
	ErrorVaultItemNotFound        = NewError(1201, http.StatusNotFound, lang{en: "Vault item not found", zh_cn: "条目不存在"})
	ErrorVaultItemDeleteForbidden = NewError(1202, http.StatusForbidden, lang{en: "Not allowed to delete this vault item", zh_cn: "无权删除该条目"})
)
