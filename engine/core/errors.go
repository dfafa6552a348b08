package core

import (
	"errors"
)

// malformed content, fatal at load time
var (
	ErrMissingField   = errors.New("required field missing")
	ErrInvalidNumber  = errors.New("unparsable numeric field")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrUnknownType    = errors.New("unknown content type")
	ErrDuplicateGlyph = errors.New("duplicate glyph mapping")
)

// out-of-range access, fatal at the call site
var (
	ErrUnknownAnimation = errors.New("animation not found")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrUnknownGlyph     = errors.New("glyph not in font map")
	ErrNotFound         = errors.New("not found")
)

var (
	ErrDisposed           = errors.New("use after dispose")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnknown            = errors.New("unknown")
)
