package handler

import (
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/consts"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload 上传帖子图片，返回的 key 用于创建或编辑帖子
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	// 声明的类型仅做初筛，真实格式由解码结果决定
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := s.mediaSvc.UploadImage(c.Request.Context(), middleware.Viewer(c), reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
