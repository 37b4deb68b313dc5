package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrTaskNotFound      = errors.New("task not found")
	ErrSnapshotNotFound  = errors.New("performance snapshot not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyPatch        = errors.New("no fields to update")

	ErrCropNotFound         = errors.New("crop not found")
	ErrFieldNotFound        = errors.New("field not found")
	ErrSupplyNotFound       = errors.New("supply item not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReportNotFound       = errors.New("report not found")
)
