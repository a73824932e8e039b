package build

import "errors"

var (
	ErrBuild      = errors.New("build failed")
	ErrFilesystem = errors.New("filesystem operation failed")
	ErrStepFailed = errors.New("step command failed")
	ErrCancelled  = errors.New("build cancelled")
)
