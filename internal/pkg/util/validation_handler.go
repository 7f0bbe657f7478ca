package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validator 返回与 gin binding 共用的校验器，字段名使用 json 标签
func Validator() *validator.Validate {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validate = v
		} else {
			validate = validator.New()
		}
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsValidSlug(s)
		})
	})
	return validate
}

// ValidateDTO 对 DTO 执行 binding 标签校验，供非 HTTP 入口使用
func ValidateDTO(dto any) error {
	return Validator().Struct(dto)
}

// FieldErrors 将校验错误转换为 字段 -> 提示 的映射
func FieldErrors(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}
	out := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段为必填项"
	case "max":
		return fmt.Sprintf("长度不能超过 %s", fe.Param())
	case "min":
		return fmt.Sprintf("长度不能少于 %s", fe.Param())
	case "email":
		return "邮箱格式错误"
	case "slug":
		return "仅允许拉丁字母、数字、连字符和下划线"
	default:
		return fmt.Sprintf("校验失败，规则 [%s]", fe.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
