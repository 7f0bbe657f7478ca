package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/repository"
	"context"
	log "log/slog"
)

type LocationService interface {
	ListPublished(ctx context.Context) ([]*dto.LocationDTO, error)
	ListAll(ctx context.Context, viewer Viewer) ([]*dto.LocationDTO, error)
	CreateLocation(ctx context.Context, viewer Viewer, req *dto.LocationFormDTO) (*dto.LocationDTO, error)
	UpdateLocation(ctx context.Context, viewer Viewer, id uint64, req *dto.LocationFormDTO) (*dto.LocationDTO, error)
	DeleteLocation(ctx context.Context, viewer Viewer, id uint64) error
}

type locationServiceImpl struct {
	locationRepo repository.LocationRepo
	l            *log.Logger
}

func NewLocationService(locationRepo repository.LocationRepo, l *log.Logger) LocationService {
	return &locationServiceImpl{
		locationRepo: locationRepo,
		l:            l,
	}
}

func (s *locationServiceImpl) ListPublished(ctx context.Context) ([]*dto.LocationDTO, error) {
	return s.list(ctx, true)
}

func (s *locationServiceImpl) ListAll(ctx context.Context, viewer Viewer) ([]*dto.LocationDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	return s.list(ctx, false)
}

func (s *locationServiceImpl) CreateLocation(ctx context.Context, viewer Viewer, req *dto.LocationFormDTO) (*dto.LocationDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	location := &model.Location{
		Name:        req.Name,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if err := s.locationRepo.CreateLocation(ctx, location); err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "location created", "location_id", location.ID)
	return toLocationDTO(location)
}

func (s *locationServiceImpl) UpdateLocation(ctx context.Context, viewer Viewer, id uint64, req *dto.LocationFormDTO) (*dto.LocationDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	location, err := s.locationRepo.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}
	location.Name = req.Name
	if req.IsPublished != nil {
		location.IsPublished = *req.IsPublished
	}
	if err = s.locationRepo.UpdateLocation(ctx, location); err != nil {
		return nil, err
	}
	return toLocationDTO(location)
}

// DeleteLocation 引用它的帖子保留，地点置空
func (s *locationServiceImpl) DeleteLocation(ctx context.Context, viewer Viewer, id uint64) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	location, err := s.locationRepo.GetLocation(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrLocationNotFound
	}
	return s.locationRepo.DeleteLocation(ctx, id)
}

func (s *locationServiceImpl) list(ctx context.Context, publishedOnly bool) ([]*dto.LocationDTO, error) {
	locations, err := s.locationRepo.ListLocations(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.LocationDTO, 0, len(locations))
	for _, location := range locations {
		item, err := toLocationDTO(location)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}
