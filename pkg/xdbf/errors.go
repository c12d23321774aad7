package xdbf

import "errors"

var (
	ErrInvalid            = errors.New("xdbf: invalid container")
	ErrNotFound           = errors.New("xdbf: entry not found")
	ErrTruncated          = errors.New("xdbf: block truncated")
	ErrBadMagic           = errors.New("xdbf: bad block magic")
	ErrUnsupportedVersion = errors.New("xdbf: unsupported block version")
)
