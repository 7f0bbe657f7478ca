package consts

// gin.Context 中的键
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	RolesKey    = "roles"
	ViewerKey   = "viewer"
)
