package course

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrNotCourseRecipient = errors.New("course is not assigned to this user")
)
