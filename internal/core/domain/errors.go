package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountFrozen      = errors.New("account frozen")
	ErrForbidden          = errors.New("access forbidden")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAlreadySubscribed = errors.New("bonus already unlocked")

	ErrNoMedicalRecord = errors.New("patient has no medical record")
	ErrInvalidSnapshot = errors.New("invalid snapshot format")

	ErrCallInProgress        = errors.New("another call is in progress")
	ErrNoActiveCall          = errors.New("no active call")
	ErrInvalidCallTransition = errors.New("invalid call transition")
	ErrNoPendingSOS          = errors.New("no pending SOS request")

	ErrBadAIResponse = errors.New("malformed AI response")
)
