package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// WithMessage 返回携带动态信息的同码错误，用于需要拼接上下文的场景。
func (d Definition) WithMessage(message string) Definition {
	return Definition{Code: d.Code, Message: message}
}

// 签到签退模块错误。
var (
	DuplicateSession = Definition{Code: "DUPLICATE_SESSION", Message: "今日已签到，请先签退"}
	NoOpenSession    = Definition{Code: "NO_OPEN_SESSION", Message: "没有找到有效的签到记录"}
	NotApproved      = Definition{Code: "NOT_APPROVED", Message: "签到记录尚未审批通过，无法签退"}
	RecordRejected   = Definition{Code: "RECORD_REJECTED", Message: "签到记录已被驳回，无法签退"}
	InvalidTimestamp = Definition{Code: "INVALID_TIMESTAMP", Message: "签退时间格式不正确"}
	InvalidArgument  = Definition{Code: "INVALID_ARGUMENT", Message: "打卡类型不能为空"}
)

// 审批模块错误。
var (
	RecordNotFound  = Definition{Code: "RECORD_NOT_FOUND", Message: "记录不存在"}
	AlreadyApproved = Definition{Code: "ALREADY_APPROVED", Message: "该记录已经审批通过"}
	AlreadyRejected = Definition{Code: "ALREADY_REJECTED", Message: "该记录已被驳回，无法审批"}
)

// 存储层错误。
var (
	StoreUnavailable = Definition{Code: "STORE_UNAVAILABLE", Message: "存储服务暂不可用，请稍后重试"}
)

// 认证相关错误。
var (
	Unauthorized  = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
)

// 限流错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "请求过于频繁，请稍后再试"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	DuplicateSession.Code: DuplicateSession,
	NoOpenSession.Code:    NoOpenSession,
	NotApproved.Code:      NotApproved,
	RecordRejected.Code:   RecordRejected,
	InvalidTimestamp.Code: InvalidTimestamp,
	InvalidArgument.Code:  InvalidArgument,
	RecordNotFound.Code:   RecordNotFound,
	AlreadyApproved.Code:  AlreadyApproved,
	AlreadyRejected.Code:  AlreadyRejected,
	StoreUnavailable.Code: StoreUnavailable,
	Unauthorized.Code:     Unauthorized,
	InvalidUserID.Code:    InvalidUserID,
	TooManyRequests.Code:  TooManyRequests,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
