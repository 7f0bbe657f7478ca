package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameExist     = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrTokenInvalid      = errors.New("Token 无效或已过期")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCategoryNotFound  = errors.New("分类不存在")
	ErrLocationNotFound  = errors.New("地点不存在")
	ErrCategoryInvalid   = errors.New("分类无效")
	ErrLocationInvalid   = errors.New("地点无效")
	ErrSlugExist         = errors.New("标识已被占用")
	ErrSlugEmpty         = errors.New("无法由标题生成标识，请手动填写")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrFileTooLarge      = errors.New("文件过大")
	ErrImageUnknown      = errors.New("图片不存在或已被使用")
	ErrForbidden         = errors.New("权限不足")
	// ErrOwnershipDenied 非作者的修改请求，由接口层重定向到只读视图而不是报错
	ErrOwnershipDenied = errors.New("无权修改")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUsernameExist:     BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrTokenInvalid:      Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrCommentNotFound:   NotFound,
	ErrCategoryNotFound:  NotFound,
	ErrLocationNotFound:  NotFound,
	ErrCategoryInvalid:   BadRequest,
	ErrLocationInvalid:   BadRequest,
	ErrSlugExist:         BadRequest,
	ErrSlugEmpty:         BadRequest,
	ErrFileNotSupported:  BadRequest,
	ErrFileTooLarge:      BadRequest,
	ErrImageUnknown:      BadRequest,
	ErrForbidden:         Forbidden,
	UnExpectedError:      InternalServerError,
}
