package domain

import "errors"

// Input-shape and configuration errors. These are raised eagerly at
// construction boundaries and never surface from inside a solve.
var (
	ErrInvalidTimeBlock       = errors.New("scheduling: time block start/duration out of [0,1440) range")
	ErrInvalidDayOfWeek       = errors.New("scheduling: day of week must be in [0,6]")
	ErrInvalidDurationBounds  = errors.New("scheduling: minLessonDuration must be <= maxLessonDuration")
	ErrPreferredOutOfBounds   = errors.New("scheduling: preferredDuration must be within [min,max] duration bounds")
	ErrEmptyPersonID          = errors.New("scheduling: person id must not be empty")
	ErrNegativeMaxLessons     = errors.New("scheduling: maxLessonsPerWeek must be >= 1")
	ErrUnknownConstraintName  = errors.New("scheduling: unknown constraint name in enabled set")
	ErrInvalidGranularity     = errors.New("scheduling: granularity must be a positive integer minute step")
)
