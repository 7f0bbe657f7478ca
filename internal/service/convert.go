package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"

	"github.com/jinzhu/copier"
)

func toAuthorDTO(u *model.User) dto.AuthorDTO {
	return dto.AuthorDTO{ID: u.ID, Username: u.Username}
}

// toPostDTO 地点仅在已发布时返回
func toPostDTO(post *model.Post, media MediaService) (*dto.PostDTO, error) {
	res := &dto.PostDTO{}
	if err := copier.Copy(res, post); err != nil {
		return nil, err
	}
	res.Author = toAuthorDTO(&post.Author)
	if post.Category != nil {
		res.Category = &dto.PostCategoryDTO{
			ID:    post.Category.ID,
			Title: post.Category.Title,
			Slug:  post.Category.Slug,
		}
	}
	if post.Location != nil && post.Location.IsPublished {
		res.Location = &dto.PostLocationDTO{
			ID:   post.Location.ID,
			Name: post.Location.Name,
		}
	}
	if post.Image != nil && *post.Image != "" && media != nil {
		res.ImageURL = media.PublicURL(*post.Image)
	}
	return res, nil
}

func toCommentDTO(comment *model.Comment) (*dto.CommentDTO, error) {
	res := &dto.CommentDTO{}
	if err := copier.Copy(res, comment); err != nil {
		return nil, err
	}
	res.Author = toAuthorDTO(&comment.Author)
	return res, nil
}

func toCategoryDTO(category *model.Category) (*dto.CategoryDTO, error) {
	res := &dto.CategoryDTO{}
	if err := copier.Copy(res, category); err != nil {
		return nil, err
	}
	return res, nil
}

func toLocationDTO(location *model.Location) (*dto.LocationDTO, error) {
	res := &dto.LocationDTO{}
	if err := copier.Copy(res, location); err != nil {
		return nil, err
	}
	return res, nil
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	res := &dto.UserDTO{}
	if err := copier.Copy(res, user); err != nil {
		return nil, err
	}
	return res, nil
}
