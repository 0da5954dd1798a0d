package recurrence

import "errors"

var (
	ErrUnsupportedFrequency = errors.New("unsupported recurrence frequency")
)
