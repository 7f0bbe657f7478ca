package dto

// MediaTempMetadata 已上传但尚未被帖子引用的文件信息
type MediaTempMetadata struct {
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	OwnerID   uint64 `json:"owner_id"`
	CreatedAt int64  `json:"created_at"`
}

type MediaUploadDTO struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Mime   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}
