package interview

import "errors"

var (
	// ErrNilRecord is returned when Run is called without a record.
	ErrNilRecord = errors.New("interview: record is nil")
	// ErrIncompleteRecord is returned when the correction loop is started
	// before every field has an answer.
	ErrIncompleteRecord = errors.New("interview: record is incomplete")
	// ErrNilDriver is returned by constructors given no prompt driver.
	ErrNilDriver = errors.New("interview: prompt driver is nil")
)
