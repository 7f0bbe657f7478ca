package handler

import (
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/pagination"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

func postURL(postID uint64) string {
	return fmt.Sprintf("/api/posts/%d", postID)
}

func profileURL(username string) string {
	return "/api/profile/" + url.PathEscape(username)
}

// pathID 解析路径中的数字 ID，非法时按不存在处理
func pathID(c *gin.Context, name string, notFound error) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, notFound)
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	return pagination.ParsePage(c.Query("page"))
}

// mutationError 非作者的修改请求重定向到只读视图，其余错误正常返回
func mutationError(c *gin.Context, err error, readView string) {
	if errors.Is(err, service.ErrOwnershipDenied) {
		ctx := c.Request.Context()
		logger.FromContext(ctx, nil).InfoContext(ctx, "ownership denied, redirecting",
			"user_id", middleware.Viewer(c).UserID,
			"path", c.Request.URL.Path,
			"redirect", readView,
		)
		response.Redirect(c, readView)
		return
	}
	response.Error(c, err)
}
