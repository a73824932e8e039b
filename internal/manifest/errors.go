package manifest

import "errors"

var (
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrUnknownCommand  = errors.New("unknown custom command")
)
