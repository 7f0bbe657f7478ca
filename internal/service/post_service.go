package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/pagination"
	"Blogicum/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// PostService 帖子的可见性查询与写操作
type PostService interface {
	ListFeed(ctx context.Context, viewer Viewer, page int) (*pagination.Page[*dto.PostDTO], error)
	ListCategory(ctx context.Context, viewer Viewer, slug string, page int) (*dto.CategoryFeedDTO, error)
	ListProfile(ctx context.Context, viewer Viewer, username string, page int) (*dto.ProfileDTO, error)
	GetPostDetail(ctx context.Context, viewer Viewer, postID uint64) (*dto.PostDetailDTO, error)
	CreatePost(ctx context.Context, viewer Viewer, req *dto.PostFormDTO) (*dto.PostDTO, error)
	CheckOwner(ctx context.Context, viewer Viewer, postID uint64) error
	UpdatePost(ctx context.Context, viewer Viewer, postID uint64, req *dto.PostFormDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, viewer Viewer, postID uint64) error
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
	categoryRepo repository.CategoryRepo
	locationRepo repository.LocationRepo
	userRepo     repository.UserRepo
	mediaSvc     MediaService
	l            *log.Logger
	now          func() time.Time
}

func NewPostService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	categoryRepo repository.CategoryRepo,
	locationRepo repository.LocationRepo,
	userRepo repository.UserRepo,
	mediaSvc MediaService,
	l *log.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		mediaSvc:     mediaSvc,
		l:            l,
		now:          utcNow,
	}
}

// ListFeed 首页：全部公开可见的帖子
func (s *postServiceImpl) ListFeed(ctx context.Context, _ Viewer, page int) (*pagination.Page[*dto.PostDTO], error) {
	return s.listPosts(ctx, repository.PostFilter{PublicOnly: true, Now: s.now()}, page)
}

// ListCategory 分类页：分类未发布时视为不存在
func (s *postServiceImpl) ListCategory(ctx context.Context, _ Viewer, slug string, page int) (*dto.CategoryFeedDTO, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	posts, err := s.listPosts(ctx, repository.PostFilter{
		CategoryID: &category.ID,
		PublicOnly: true,
		Now:        s.now(),
	}, page)
	if err != nil {
		return nil, err
	}

	categoryDTO, err := toCategoryDTO(category)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryFeedDTO{Category: categoryDTO, Posts: posts}, nil
}

// ListProfile 个人主页：本人可见自己的全部帖子，其他访客仅可见公开帖子
func (s *postServiceImpl) ListProfile(ctx context.Context, viewer Viewer, username string, page int) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	isOwner := viewer.IsAuthenticated() && viewer.UserID == user.ID
	posts, err := s.listPosts(ctx, repository.PostFilter{
		AuthorID:   &user.ID,
		PublicOnly: !isOwner,
		Now:        s.now(),
	}, page)
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileDTO{User: userDTO, Posts: posts}, nil
}

// GetPostDetail 不满足公开条件的帖子仅作者本人可见，其他人得到与不存在相同的结果
func (s *postServiceImpl) GetPostDetail(ctx context.Context, viewer Viewer, postID uint64) (*dto.PostDetailDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	isAuthor := viewer.IsAuthenticated() && viewer.UserID == post.AuthorID
	if !isAuthor && !post.IsPubliclyVisible(s.now()) {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.CommentCount = int64(len(comments))

	postDTO, err := toPostDTO(post, s.mediaSvc)
	if err != nil {
		return nil, err
	}
	commentDTOs := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		item, err := toCommentDTO(comment)
		if err != nil {
			return nil, err
		}
		commentDTOs = append(commentDTOs, item)
	}

	return &dto.PostDetailDTO{Post: postDTO, Comments: commentDTOs}, nil
}

// CreatePost 作者固定为当前访客，未指定发布时间时取当前时刻
func (s *postServiceImpl) CreatePost(ctx context.Context, viewer Viewer, req *dto.PostFormDTO) (*dto.PostDTO, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrTokenInvalid
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       req.Title,
		Text:        req.Text,
		AuthorID:    viewer.UserID,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if req.PubDate != nil {
		post.PubDate = req.PubDate.UTC()
	}

	if req.Image != nil && *req.Image != "" {
		if err := s.mediaSvc.CheckImage(ctx, viewer, *req.Image); err != nil {
			return nil, err
		}
		post.Image = req.Image
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	if post.Image != nil {
		s.claim(ctx, viewer, *post.Image)
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "post created", "post_id", post.ID, "author_id", viewer.UserID)

	return s.reload(ctx, post.ID)
}

// CheckOwner 在解析表单之前确认访客是作者，非作者返回 ErrOwnershipDenied
func (s *postServiceImpl) CheckOwner(ctx context.Context, viewer Viewer, postID uint64) error {
	_, err := s.ownedPost(ctx, viewer, postID)
	return err
}

// UpdatePost 仅作者可编辑，其他人返回 ErrOwnershipDenied 且不做任何修改
func (s *postServiceImpl) UpdatePost(ctx context.Context, viewer Viewer, postID uint64, req *dto.PostFormDTO) (*dto.PostDTO, error) {
	post, err := s.ownedPost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	if err = s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Text = req.Text
	post.CategoryID = req.CategoryID
	post.LocationID = req.LocationID
	if req.PubDate != nil {
		post.PubDate = req.PubDate.UTC()
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	var staleImage, newImage string
	switch {
	case req.Image != nil && *req.Image != "" && (post.Image == nil || *post.Image != *req.Image):
		if err = s.mediaSvc.CheckImage(ctx, viewer, *req.Image); err != nil {
			return nil, err
		}
		newImage = *req.Image
		if post.Image != nil {
			staleImage = *post.Image
		}
		post.Image = req.Image
	case req.RemoveImage && post.Image != nil:
		staleImage = *post.Image
		post.Image = nil
	}

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	if newImage != "" {
		s.claim(ctx, viewer, newImage)
	}
	if staleImage != "" {
		s.discard(ctx, staleImage)
	}

	return s.reload(ctx, post.ID)
}

// DeletePost 仅作者可删除，评论与图片随帖子一起删除
func (s *postServiceImpl) DeletePost(ctx context.Context, viewer Viewer, postID uint64) error {
	post, err := s.ownedPost(ctx, viewer, postID)
	if err != nil {
		return err
	}

	if err = s.postRepo.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	if post.Image != nil {
		s.discard(ctx, *post.Image)
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "post deleted", "post_id", post.ID, "author_id", viewer.UserID)
	return nil
}

func (s *postServiceImpl) ownedPost(ctx context.Context, viewer Viewer, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if err = authorize(viewer, post); err != nil {
		return nil, err
	}
	return post, nil
}

// listPosts 先计数再按修正后的页码取数据
func (s *postServiceImpl) listPosts(ctx context.Context, filter repository.PostFilter, page int) (*pagination.Page[*dto.PostDTO], error) {
	total, err := s.postRepo.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	pager := pagination.NewPager(total, page, pagination.DefaultPageSize)

	var posts []*model.Post
	if total > 0 {
		posts, err = s.postRepo.ListPosts(ctx, filter, pager.Limit(), pager.Offset())
		if err != nil {
			return nil, err
		}
	}

	return pagination.Map(pagination.Wrap(pager, posts), func(post *model.Post) (*dto.PostDTO, error) {
		return toPostDTO(post, s.mediaSvc)
	})
}

func (s *postServiceImpl) checkReferences(ctx context.Context, req *dto.PostFormDTO) error {
	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetCategory(ctx, *req.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryInvalid
		}
	}
	if req.LocationID != nil {
		location, err := s.locationRepo.GetLocation(ctx, *req.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return ErrLocationInvalid
		}
	}
	return nil
}

func (s *postServiceImpl) reload(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post, s.mediaSvc)
}

// claim 写入失败时图片保持待清理状态，可重试或由定时任务回收
func (s *postServiceImpl) claim(ctx context.Context, viewer Viewer, key string) {
	if err := s.mediaSvc.ClaimImage(ctx, viewer, key); err != nil {
		logger.FromContext(ctx, s.l).ErrorContext(ctx, "failed to claim post image", "key", key, "err", err)
	}
}

func (s *postServiceImpl) discard(ctx context.Context, key string) {
	if err := s.mediaSvc.DiscardImage(ctx, key); err != nil {
		logger.FromContext(ctx, s.l).WarnContext(ctx, "failed to remove post image", "key", key, "err", err)
	}
}
