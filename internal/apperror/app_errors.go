package apperror

import "errors"

var (
	ErrConnection        = errors.New("connection error")
	ErrNotOpen           = errors.New("connection is not open")
	ErrUnknownFrame      = errors.New("unknown frame type")
	ErrMalformedFrame    = errors.New("malformed frame")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrStaleSnapshot     = errors.New("snapshot does not follow current state")
	ErrNicknameNotFound  = errors.New("nickname not found")
)
