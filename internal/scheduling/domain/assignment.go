package domain

// LessonAssignment is a committed lesson: a specific student occupying a
// specific day/start/duration slot. Never overlaps any other assignment
// on the same day once committed to a Solution.
type LessonAssignment struct {
	StudentID       string
	DayOfWeek       int
	StartMinute     int
	DurationMinutes int
}

// EndMinute returns the exclusive end minute of the assignment.
func (a LessonAssignment) EndMinute() int { return a.StartMinute + a.DurationMinutes }

// Block returns the assignment's interval as a TimeBlock.
func (a LessonAssignment) Block() TimeBlock {
	return TimeBlock{Start: a.StartMinute, Duration: a.DurationMinutes}
}

// OverlapsSameDay reports whether two assignments on the same day share a
// minute. Assignments on different days never overlap.
func (a LessonAssignment) OverlapsSameDay(other LessonAssignment) bool {
	if a.DayOfWeek != other.DayOfWeek {
		return false
	}
	return a.Block().Overlaps(other.Block())
}

// Candidate is an un-committed LessonAssignment belonging to a student's
// domain, together with the sub-variable index used when a student
// requests more than one lesson per week.
type Candidate struct {
	StudentID       string
	SubVariable     int
	DayOfWeek       int
	StartMinute     int
	DurationMinutes int
}

// ToAssignment commits the candidate as a LessonAssignment.
func (c Candidate) ToAssignment() LessonAssignment {
	return LessonAssignment{
		StudentID:       c.StudentID,
		DayOfWeek:       c.DayOfWeek,
		StartMinute:     c.StartMinute,
		DurationMinutes: c.DurationMinutes,
	}
}

// Block returns the candidate's interval as a TimeBlock.
func (c Candidate) Block() TimeBlock {
	return TimeBlock{Start: c.StartMinute, Duration: c.DurationMinutes}
}

// SameSlot reports whether two candidates occupy the same (day, start)
// pair, used to enforce shared-student distinct-slot constraints between
// a multi-lesson student's sub-variables.
func (c Candidate) SameSlot(other Candidate) bool {
	return c.DayOfWeek == other.DayOfWeek && c.StartMinute == other.StartMinute
}
