package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrJobNotFound     = errors.New("job not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInternal        = errors.New("internal error")
)
