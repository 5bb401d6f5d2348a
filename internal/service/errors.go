package service

import "errors"

// Sentinel errors surfaced to handlers, which map them to HTTP statuses.
var (
	// ErrStudentNotFound indicates the referenced student does not exist.
	ErrStudentNotFound = errors.New("student not found")

	// ErrResultNotFound indicates the referenced result does not exist.
	ErrResultNotFound = errors.New("result not found")

	// ErrEmailTaken indicates the email is already registered for the role.
	ErrEmailTaken = errors.New("email already registered")

	// ErrRollNumberTaken indicates the roll number is already registered.
	ErrRollNumberTaken = errors.New("roll number already registered")

	// ErrRollNumberRequired indicates a student registration without a roll number.
	ErrRollNumberRequired = errors.New("roll number is required for students")

	// ErrInvalidCredentials indicates a failed login. The message is
	// deliberately identical for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole indicates an unknown user role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrMarksOutOfRange indicates marks below zero or above the total.
	ErrMarksOutOfRange = errors.New("marks obtained must be between 0 and total marks")

	// ErrTotalMarksNotPositive indicates a zero or negative total.
	ErrTotalMarksNotPositive = errors.New("total marks must be greater than 0")
)
