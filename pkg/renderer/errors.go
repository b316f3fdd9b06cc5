package renderer

import "errors"

var (
	ErrInterrupted = errors.New("renderer: interrupted while rendering")
)
