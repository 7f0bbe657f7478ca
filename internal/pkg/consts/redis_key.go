package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
	MediaTempKey      = "media:temp"
)
