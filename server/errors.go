package server

import "encoding/json"

// 下发给客户端的错误码
const (
	ErrBadRequest      = "E_BAD_REQUEST"
	ErrInvalidArgument = "E_INVALID_ARGUMENT"
	ErrRateLimit       = "E_RATE_LIMIT"
	ErrInternal        = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:      {},
	ErrInvalidArgument: {},
	ErrRateLimit:       {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// ErrorMessage 出站错误消息
type ErrorMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Msg  string `json:"msg,omitempty"`
}

// encodeError 未登记的错误码按 E_INTERNAL 下发
func encodeError(code, msg string) []byte {
	if !IsKnownCode(code) || code == "" {
		code = ErrInternal
	}
	b, _ := json.Marshal(ErrorMessage{Type: "error", Code: code, Msg: msg})
	return b
}
