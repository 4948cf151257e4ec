package service

import (
	"net/http"

	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
)

var (
	ErrFullNameRequired = commonerrors.NewDomainError(
		"FULL_NAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Full Name is required",
	)

	ErrEmailRequired = commonerrors.NewDomainError(
		"EMAIL_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Email is required",
	)

	ErrEmailInvalid = commonerrors.NewDomainError(
		"EMAIL_INVALID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Email is invalid",
	)

	ErrPasswordRequired = commonerrors.NewDomainError(
		"PASSWORD_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Password is required",
	)

	// Duplicate email is a domain failure, not an HTTP error: the handler
	// answers 200 with the error flag set, matching the published contract.
	ErrUserAlreadyExists = commonerrors.NewDomainError(
		"USER_ALREADY_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusOK,
		"User already exist",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusBadRequest,
		"User not found",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusBadRequest,
		"Invalid Credentials",
	)

	ErrValidationFailed = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)
)
