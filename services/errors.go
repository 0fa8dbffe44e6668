package services

import "errors"

var (
	ErrStorageList    = errors.New("storage listing failed")
	ErrEnrolmentFetch = errors.New("enrolment lookup failed")
	ErrMappingSave    = errors.New("mapping save failed")
	ErrInvalidKey     = errors.New("object key outside the exam archive")
)
