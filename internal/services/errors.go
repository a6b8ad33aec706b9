package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user does not exist")
	ErrTaskNotFound     = errors.New("task does not exist")
	ErrNotAssigned      = errors.New("task not found or not assigned to user")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrNotAdmin         = errors.New("admin privileges required")
	ErrInvalidTask      = errors.New("task failed validation")
)
