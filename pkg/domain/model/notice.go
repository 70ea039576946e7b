package model

// NoticeCode classifies the outcome of a register operation
type NoticeCode string

const (
	NoticeOK                   NoticeCode = "ok"
	NoticeNotFound             NoticeCode = "not_found"
	NoticeMissingPreconditions NoticeCode = "missing_preconditions"
	NoticeEmptyRegister        NoticeCode = "empty_register"
	NoticeInvalid              NoticeCode = "invalid"
)

// Notice is a human readable advisory returned to callers instead of a hard failure
type Notice struct {
	Code    NoticeCode `json:"code"`
	Message string     `json:"message"`
}

// IsAdvisory reports whether the notice describes a recoverable condition
// that left the store untouched.
func (n *Notice) IsAdvisory() bool {
	if n == nil {
		return false
	}
	switch n.Code {
	case NoticeNotFound, NoticeMissingPreconditions, NoticeEmptyRegister:
		return true
	default:
		return false
	}
}
