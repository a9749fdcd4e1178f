package rope

import "errors"

// ErrInvalidArgument 构造参数非法（长度 < 1 或非整数）
var ErrInvalidArgument = errors.New("rope: invalid argument")
