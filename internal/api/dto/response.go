package dto

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// NextViewDTO 写操作完成后客户端应跳转的视图
type NextViewDTO struct {
	Next string `json:"next"`
}
