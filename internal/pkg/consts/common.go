package consts

const (
	// MimePrefixImage 上传文件声明的 Content-Type 前缀
	MimePrefixImage = "image/"
)

const (
	// ImageObjectPrefix 帖子图片在存储桶中的目录
	ImageObjectPrefix = "posts_images/"
)
