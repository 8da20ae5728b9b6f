package consts

const (
	// TokenDenyKey 已注销 Token 签名的 Redis 前缀
	TokenDenyKey = "auth:deny:"
)

const (
	MimePrefixImage = "image"
)
