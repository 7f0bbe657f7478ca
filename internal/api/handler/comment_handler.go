package handler

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

type commentResult struct {
	Comment *dto.CommentDTO `json:"comment"`
	dto.NextViewDTO
}

func (s *CommentHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "post_id", service.ErrPostNotFound)
	if !ok {
		return
	}

	var req dto.CommentFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := s.commentSvc.AddComment(c.Request.Context(), middleware.Viewer(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentResult{Comment: comment, NextViewDTO: dto.NextViewDTO{Next: postURL(postID)}})
}

// GetComment 编辑表单回显
func (s *CommentHandler) GetComment(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := s.commentSvc.GetComment(c.Request.Context(), middleware.Viewer(c), postID, commentID)
	if err != nil {
		mutationError(c, err, postURL(postID))
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	if _, err := s.commentSvc.GetComment(c.Request.Context(), middleware.Viewer(c), postID, commentID); err != nil {
		mutationError(c, err, postURL(postID))
		return
	}

	var req dto.CommentFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), middleware.Viewer(c), postID, commentID, &req)
	if err != nil {
		mutationError(c, err, postURL(postID))
		return
	}
	response.Success(c, commentResult{Comment: comment, NextViewDTO: dto.NextViewDTO{Next: postURL(postID)}})
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	if err := s.commentSvc.DeleteComment(c.Request.Context(), middleware.Viewer(c), postID, commentID); err != nil {
		mutationError(c, err, postURL(postID))
		return
	}
	response.Success(c, dto.NextViewDTO{Next: postURL(postID)})
}

func commentPath(c *gin.Context) (uint64, uint64, bool) {
	postID, ok := pathID(c, "post_id", service.ErrPostNotFound)
	if !ok {
		return 0, 0, false
	}
	commentID, ok := pathID(c, "comment_id", service.ErrCommentNotFound)
	if !ok {
		return 0, 0, false
	}
	return postID, commentID, true
}
