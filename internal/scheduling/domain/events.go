package domain

import (
	sharedDomain "github.com/felixgeelhaar/lessonsched/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	RoutingKeySolveCompleted      = "scheduling.solve.completed"
	RoutingKeyStudentUnscheduled  = "scheduling.student.unscheduled"
)

// SolveCompleted is raised once per solve, after the Solution has been
// persisted, summarizing the outcome.
type SolveCompleted struct {
	sharedDomain.BaseEvent
	SolveRequestID   uuid.UUID
	SolutionID       uuid.UUID
	ScheduledCount   int
	UnscheduledCount int
	TerminatedEarly  bool
}

// NewSolveCompleted constructs the SolveCompleted event.
func NewSolveCompleted(solveRequestID, solutionID uuid.UUID, scheduledCount, unscheduledCount int, terminatedEarly bool) SolveCompleted {
	return SolveCompleted{
		BaseEvent:        sharedDomain.NewBaseEvent(solutionID, "Solution", RoutingKeySolveCompleted),
		SolveRequestID:   solveRequestID,
		SolutionID:       solutionID,
		ScheduledCount:   scheduledCount,
		UnscheduledCount: unscheduledCount,
		TerminatedEarly:  terminatedEarly,
	}
}

// StudentUnscheduled is raised once per student the solver could not
// place, alongside SolveCompleted.
type StudentUnscheduled struct {
	sharedDomain.BaseEvent
	SolveRequestID uuid.UUID
	StudentID      string
	Reason         string
}

// NewStudentUnscheduled constructs the StudentUnscheduled event.
func NewStudentUnscheduled(solveRequestID uuid.UUID, studentID, reason string) StudentUnscheduled {
	return StudentUnscheduled{
		BaseEvent:      sharedDomain.NewBaseEvent(solveRequestID, "SolveRequest", RoutingKeyStudentUnscheduled),
		SolveRequestID: solveRequestID,
		StudentID:      studentID,
		Reason:         reason,
	}
}
