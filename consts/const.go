package consts

// 通用错误码
const (
	CodeSuccess = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeTooManyRequests = 10005 // 请求过于频繁
	CodeAccessDenied    = 10007 // 访问被禁止
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError = 30001 // 服务器内部错误
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	CodeTooManyRequests: "请求过于频繁，请稍后再试",
	CodeAccessDenied:    "访问被禁止，请联系管理员",

	CodeInternalError: "服务器内部错误",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}
