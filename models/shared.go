package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used across records.
const DateLayout = "2006-01-02"

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

var validate = validator.New()
