package repository

import (
	"Blogicum/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LocationRepo interface {
	CreateLocation(ctx context.Context, location *model.Location) error
	GetLocation(ctx context.Context, id uint64) (*model.Location, error)
	ListLocations(ctx context.Context, publishedOnly bool) ([]*model.Location, error)
	UpdateLocation(ctx context.Context, location *model.Location) error
	DeleteLocation(ctx context.Context, id uint64) error
}

type locationRepoImpl struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepo {
	return &locationRepoImpl{db: db}
}

func (s *locationRepoImpl) CreateLocation(ctx context.Context, location *model.Location) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(location).Error, "create location")
}

func (s *locationRepoImpl) GetLocation(ctx context.Context, id uint64) (*model.Location, error) {
	var location model.Location
	if err := s.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get location")
	}
	return &location, nil
}

func (s *locationRepoImpl) ListLocations(ctx context.Context, publishedOnly bool) ([]*model.Location, error) {
	locations := make([]*model.Location, 0)
	db := s.db.WithContext(ctx)
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	if err := db.Order("name ASC").Order("id ASC").Find(&locations).Error; err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	return locations, nil
}

func (s *locationRepoImpl) UpdateLocation(ctx context.Context, location *model.Location) error {
	err := s.db.WithContext(ctx).Model(&model.Location{}).
		Where("id = ?", location.ID).
		Updates(map[string]any{
			"name":         location.Name,
			"is_published": location.IsPublished,
		}).Error
	return errors.Wrap(err, "update location")
}

// DeleteLocation 删除地点，引用它的帖子地点置空
func (s *locationRepoImpl) DeleteLocation(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Location{}, id).Error
	})
	return errors.Wrap(err, "delete location")
}
