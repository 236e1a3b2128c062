package domain

import "errors"

var (
	ErrNotFound      = errors.New("document not found")
	ErrRequiredField = errors.New("required field missing")

	ErrFetchFailed  = errors.New("fetch failed")
	ErrUploadFailed = errors.New("upload failed")
	ErrWriteFailed  = errors.New("write failed")
)
