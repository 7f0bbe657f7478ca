package repository

import (
	"Blogicum/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserIsStaff(ctx context.Context, id uint64, isStaff bool) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(user).Error, "create user")
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	if err := s.db.WithContext(ctx).First(user, id).Error; err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get user")
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(user).Error; err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get user by username")
	}
	return user, nil
}

func (s *UserRepoImpl) UpdateUserIsStaff(ctx context.Context, id uint64, isStaff bool) error {
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_staff", isStaff).Error
	return errors.Wrap(err, "update user staff flag")
}

// DeleteUser 删除用户及其帖子（连同帖子下的评论）和其发表的评论
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&model.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
	return errors.Wrap(err, "delete user")
}
