// Package commands implements the write-side CQRS handlers for the
// scheduling module.
package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/services"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/infrastructure/persistence"
	sharedApp "github.com/felixgeelhaar/lessonsched/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/lessonsched/internal/shared/domain"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// SolveScheduleCommand carries the inputs for one solve run.
type SolveScheduleCommand struct {
	Teacher     domain.TeacherConfig
	Students    []domain.StudentConfig
	Options     services.SolveOptions
	RequestedBy uuid.UUID
}

// CommandName identifies the command for logging/routing.
func (SolveScheduleCommand) CommandName() string { return "scheduling.solve_schedule" }

// SolveScheduleHandler runs a solve, persists the result, and enqueues
// the domain events a completed solve raises to the transactional
// outbox.
type SolveScheduleHandler struct {
	repo    persistence.SolutionRepository
	uow     sharedApp.UnitOfWork
	outbox  outbox.Repository
	logger  *slog.Logger
}

// NewSolveScheduleHandler constructs a SolveScheduleHandler. outboxRepo
// may be nil in local mode, in which case no events are built or
// persisted for later delivery (see eventbus.InProcessEventBus for the
// local/dev publication path wired at the application's composition root).
func NewSolveScheduleHandler(repo persistence.SolutionRepository, uow sharedApp.UnitOfWork, outboxRepo outbox.Repository, logger *slog.Logger) *SolveScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SolveScheduleHandler{repo: repo, uow: uow, outbox: outboxRepo, logger: logger}
}

// Handle runs the solver façade and stores the StoredSolution and its
// originating request's domain events inside one unit of work.
func (h *SolveScheduleHandler) Handle(ctx context.Context, cmd SolveScheduleCommand) (sharedApp.CommandResult, error) {
	solution := services.Solve(cmd.Teacher, cmd.Students, cmd.Options, h.logger)

	requestID := uuid.New()
	stored := persistence.NewStoredSolution(requestID, solution)

	err := sharedApp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.repo.Save(txCtx, stored); err != nil {
			return err
		}
		if h.outbox == nil {
			return nil
		}
		for _, evt := range buildEvents(requestID, stored.ID, solution) {
			msg, err := outbox.NewMessage(evt)
			if err != nil {
				return err
			}
			if err := h.outbox.Save(txCtx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return sharedApp.NewErrorResult(err), err
	}

	h.logger.Info("solve request stored", "solution_id", stored.ID, "solve_request_id", requestID)
	return sharedApp.NewSuccessResult(stored.ID), nil
}

func buildEvents(requestID, solutionID uuid.UUID, solution domain.Solution) []sharedDomain.DomainEvent {
	events := []sharedDomain.DomainEvent{
		domain.NewSolveCompleted(
			requestID, solutionID,
			solution.Metadata.ScheduledStudents,
			len(solution.UnscheduledStudentIDs),
			solution.Metadata.TerminatedEarly,
		),
	}
	for _, studentID := range solution.UnscheduledStudentIDs {
		events = append(events, domain.NewStudentUnscheduled(requestID, studentID, "no feasible slot"))
	}
	return events
}
