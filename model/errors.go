package model

import "errors"

// Error kinds surfaced before the pipeline runs. Everything after
// validation is absorbed by documented numeric fallbacks instead.
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecodeFailure     = errors.New("could not decode audio")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
