package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password too short")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrInvalidAvatarType  = errors.New("avatar must be an image")
	ErrAvatarTooLarge     = errors.New("avatar exceeds size limit")
	ErrEmptyAvatar        = errors.New("avatar is empty")
	ErrAvatarUpload       = errors.New("avatar upload failed")
	ErrStorageUnavailable = errors.New("storage service is not configured")
)
