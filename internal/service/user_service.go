package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/security"
	"Blogicum/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

// TokenBlacklist 已注销 Token 的存储
type TokenBlacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (Viewer, error)
	SetStaff(ctx context.Context, viewer Viewer, username string, isStaff bool) error
	DeleteUser(ctx context.Context, viewer Viewer, username string) error
}

type userServiceImpl struct {
	userRepo  repository.UserRepo
	tokens    *security.TokenManager
	blacklist TokenBlacklist
	l         *log.Logger
}

func NewUserService(userRepo repository.UserRepo, tokens *security.TokenManager, blacklist TokenBlacklist, l *log.Logger) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		l:         l,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrUsernameExist
		}
		return nil, err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "user registered", "user_id", user.ID)
	return toUserDTO(user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username, security.RolesFor(user.IsStaff))
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout 将 Token 签名加入黑名单直到其自然过期
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.blacklist.Revoke(ctx, signature, ttl)
}

// Authenticate 校验 Token 并还原访客身份
func (s *userServiceImpl) Authenticate(ctx context.Context, token string) (Viewer, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return Anonymous(), ErrTokenInvalid
	}
	revoked, err := s.blacklist.IsRevoked(ctx, signature)
	if err != nil {
		return Anonymous(), err
	}
	if revoked {
		return Anonymous(), ErrTokenInvalid
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return Anonymous(), ErrTokenInvalid
	}
	return Viewer{
		UserID:   claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}

func (s *userServiceImpl) SetStaff(ctx context.Context, viewer Viewer, username string, isStaff bool) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateUserIsStaff(ctx, user.ID, isStaff)
}

// DeleteUser 用户的帖子与评论一并删除
func (s *userServiceImpl) DeleteUser(ctx context.Context, viewer Viewer, username string) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err = s.userRepo.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "user deleted", "user_id", user.ID)
	return nil
}
