package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrReportNotFound     = errors.New("report not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAlreadySubmitted   = errors.New("quiz already completed")
	ErrAnswerCount        = errors.New("answer count does not match question count")
	ErrInvalidVoteType    = errors.New("vote type must be 'up' or 'down'")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidPriority    = errors.New("invalid priority value")
	ErrInvalidOption      = errors.New("selected option is out of range")
	ErrInvalidAssignee    = errors.New("assignee must be a municipal or admin user")
)
