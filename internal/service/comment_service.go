package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/repository"
	"context"
	log "log/slog"
)

type CommentService interface {
	AddComment(ctx context.Context, viewer Viewer, postID uint64, req *dto.CommentFormDTO) (*dto.CommentDTO, error)
	GetComment(ctx context.Context, viewer Viewer, postID, commentID uint64) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, viewer Viewer, postID, commentID uint64, req *dto.CommentFormDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, viewer Viewer, postID, commentID uint64) error
}

type commentServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	l           *log.Logger
}

func NewCommentService(postRepo repository.PostRepo, commentRepo repository.CommentRepo, l *log.Logger) CommentService {
	return &commentServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		l:           l,
	}
}

// AddComment 只校验帖子存在，不校验帖子对当前访客是否可见
func (s *commentServiceImpl) AddComment(ctx context.Context, viewer Viewer, postID uint64, req *dto.CommentFormDTO) (*dto.CommentDTO, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrTokenInvalid
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:   post.ID,
		AuthorID: viewer.UserID,
		Text:     req.Text,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "comment added", "post_id", post.ID, "comment_id", comment.ID)

	return s.reload(ctx, post.ID, comment.ID)
}

// GetComment 编辑表单回显，仅评论作者可获取
func (s *commentServiceImpl) GetComment(ctx context.Context, viewer Viewer, postID, commentID uint64) (*dto.CommentDTO, error) {
	comment, err := s.ownedComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	return toCommentDTO(comment)
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, viewer Viewer, postID, commentID uint64, req *dto.CommentFormDTO) (*dto.CommentDTO, error) {
	comment, err := s.ownedComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err = s.commentRepo.UpdateCommentText(ctx, comment.ID, req.Text); err != nil {
		return nil, err
	}
	return s.reload(ctx, postID, comment.ID)
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, viewer Viewer, postID, commentID uint64) error {
	comment, err := s.ownedComment(ctx, viewer, postID, commentID)
	if err != nil {
		return err
	}
	if err = s.commentRepo.DeleteComment(ctx, comment.ID); err != nil {
		return err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "comment deleted", "post_id", postID, "comment_id", comment.ID)
	return nil
}

func (s *commentServiceImpl) ownedComment(ctx context.Context, viewer Viewer, postID, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if err = authorize(viewer, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentServiceImpl) reload(ctx context.Context, postID, commentID uint64) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return toCommentDTO(comment)
}
