package service

import (
	"net/http"

	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
)

var (
	ErrTitleRequired = commonerrors.NewDomainError(
		"TITLE_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Title is required",
	)

	ErrContentRequired = commonerrors.NewDomainError(
		"CONTENT_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Content is required",
	)

	ErrNoChanges = commonerrors.NewDomainError(
		"NO_CHANGES",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"No changes provided",
	)

	ErrNoteNotFound = commonerrors.NewDomainError(
		"NOTE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"Note not found",
	)

	ErrSearchQueryRequired = commonerrors.NewDomainError(
		"SEARCH_QUERY_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Search query is required",
	)

	ErrValidationFailed = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)
)
