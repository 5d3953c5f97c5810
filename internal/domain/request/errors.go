package request

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrUnknownType     = errors.New("unknown request type")
	ErrInvalidPayload  = errors.New("request payload does not match its type")
	ErrVersionConflict = errors.New("request was modified concurrently")
)
