package handler

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListFeed(c *gin.Context) {
	page, err := s.postSvc.ListFeed(c.Request.Context(), middleware.Viewer(c), pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListCategory(c *gin.Context) {
	res, err := s.postSvc.ListCategory(c.Request.Context(), middleware.Viewer(c), c.Param("slug"), pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostHandler) ListProfile(c *gin.Context) {
	res, err := s.postSvc.ListProfile(c.Request.Context(), middleware.Viewer(c), c.Param("username"), pageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id", service.ErrPostNotFound)
	if !ok {
		return
	}

	res, err := s.postSvc.GetPostDetail(c.Request.Context(), middleware.Viewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// CreatePost 创建成功后跳转到作者个人主页
func (s *PostHandler) CreatePost(c *gin.Context) {
	viewer := middleware.Viewer(c)

	var req dto.PostFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), viewer, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.PostMutationDTO{
		Post:        post,
		NextViewDTO: dto.NextViewDTO{Next: profileURL(viewer.Username)},
	})
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id", service.ErrPostNotFound)
	if !ok {
		return
	}
	// 先校验作者身份，非作者无论表单内容如何都跳转
	if err := s.postSvc.CheckOwner(c.Request.Context(), middleware.Viewer(c), postID); err != nil {
		mutationError(c, err, postURL(postID))
		return
	}

	var req dto.PostFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), middleware.Viewer(c), postID, &req)
	if err != nil {
		mutationError(c, err, postURL(postID))
		return
	}

	response.Success(c, dto.PostMutationDTO{
		Post:        post,
		NextViewDTO: dto.NextViewDTO{Next: postURL(postID)},
	})
}

// DeletePost 删除成功后跳转到作者个人主页
func (s *PostHandler) DeletePost(c *gin.Context) {
	viewer := middleware.Viewer(c)
	postID, ok := pathID(c, "post_id", service.ErrPostNotFound)
	if !ok {
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), viewer, postID); err != nil {
		mutationError(c, err, postURL(postID))
		return
	}

	response.Success(c, dto.NextViewDTO{Next: profileURL(viewer.Username)})
}
