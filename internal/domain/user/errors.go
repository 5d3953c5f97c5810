package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrUnknownRole       = errors.New("role is not in the hierarchy")
	ErrUnknownDepartment = errors.New("department is not configured")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrEmailNotAllowed   = errors.New("email address is not on the company domain")
)
