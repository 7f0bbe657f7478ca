package handler

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationSvc service.LocationService
}

func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

func (s *LocationHandler) ListPublished(c *gin.Context) {
	res, err := s.locationSvc.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LocationHandler) ListAll(c *gin.Context) {
	res, err := s.locationSvc.ListAll(c.Request.Context(), middleware.Viewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LocationHandler) Create(c *gin.Context) {
	var req dto.LocationFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := s.locationSvc.CreateLocation(c.Request.Context(), middleware.Viewer(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LocationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "location_id", service.ErrLocationNotFound)
	if !ok {
		return
	}

	var req dto.LocationFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := s.locationSvc.UpdateLocation(c.Request.Context(), middleware.Viewer(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LocationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "location_id", service.ErrLocationNotFound)
	if !ok {
		return
	}

	if err := s.locationSvc.DeleteLocation(c.Request.Context(), middleware.Viewer(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
