package services

import (
	"log/slog"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// SolveOptions is the full enumerated option set accepted by Solve.
// Unknown options are rejected at construction via NewSolveOptions, never
// silently ignored.
type SolveOptions struct {
	UseHeuristics            bool
	UseConstraintPropagation bool
	EnabledConstraints       []string
	MaxTimeMs                int64
	MaxBacktracks            int
	LogLevel                 slog.Level
}

// DefaultSolveOptions returns the recommended configuration: heuristics
// and propagation enabled, every constraint active, default bounds.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		UseHeuristics:            true,
		UseConstraintPropagation: true,
		EnabledConstraints:       domain.AllConstraintNames(),
		MaxTimeMs:                DefaultMaxTimeMs,
		MaxBacktracks:            DefaultMaxBacktracks,
		LogLevel:                 slog.LevelInfo,
	}
}

// NewSolveOptions validates a caller-supplied option set, applying
// defaults for zero-valued bounds and rejecting unknown constraint names.
func NewSolveOptions(opts SolveOptions) (SolveOptions, error) {
	if len(opts.EnabledConstraints) == 0 {
		opts.EnabledConstraints = domain.AllConstraintNames()
	}
	if err := domain.ValidateConstraintNames(opts.EnabledConstraints); err != nil {
		return SolveOptions{}, err
	}
	if opts.MaxTimeMs <= 0 {
		opts.MaxTimeMs = DefaultMaxTimeMs
	}
	if opts.MaxBacktracks <= 0 {
		opts.MaxBacktracks = DefaultMaxBacktracks
	}
	return opts, nil
}

// Solve orchestrates domain build -> search -> metadata, implementing
// §4.7. It always returns a Solution, possibly partial; it never panics
// or errors from inside search, per §7.
func Solve(teacher domain.TeacherConfig, students []domain.StudentConfig, opts SolveOptions, logger *slog.Logger) domain.Solution {
	start := time.Now()

	if logger == nil {
		logger = slog.Default()
	}

	if len(students) == 0 {
		return domain.Solution{
			Metadata: domain.SolutionMetadata{
				TotalStudents:     0,
				ScheduledStudents: 0,
				ComputeTimeMs:     time.Since(start).Milliseconds(),
			},
		}
	}

	build := BuildDomains(teacher, students)
	constraints := domain.NewFilteredConstraintSet(teacher, students, opts.EnabledConstraints)
	store := NewDomainStore(build.Domains)

	searchOpts := SearchOptions{
		UseHeuristics:            opts.UseHeuristics,
		UseConstraintPropagation: opts.UseConstraintPropagation,
		MaxTimeMs:                opts.MaxTimeMs,
		MaxBacktracks:            opts.MaxBacktracks,
	}
	result := Search(store, teacher, students, build, constraints, searchOpts)

	solution := result.Best.Solution
	solution.Metadata = domain.SolutionMetadata{
		TotalStudents:      len(students),
		ScheduledStudents:  len(students) - len(solution.UnscheduledStudentIDs),
		AverageUtilization: utilization(teacher, solution),
		ComputeTimeMs:      time.Since(start).Milliseconds(),
		BacktrackCount:     result.BacktrackCount,
		TerminatedEarly:    result.TerminatedEarly,
	}

	logger.Info("solve completed",
		"total_students", solution.Metadata.TotalStudents,
		"scheduled_students", solution.Metadata.ScheduledStudents,
		"backtrack_count", solution.Metadata.BacktrackCount,
		"compute_time_ms", solution.Metadata.ComputeTimeMs,
		"terminated_early", solution.Metadata.TerminatedEarly,
	)

	return solution
}

// utilization computes scheduledMinutes / teacherAvailableMinutes.
func utilization(teacher domain.TeacherConfig, solution domain.Solution) float64 {
	available := teacher.Availability.TotalMinutes()
	if available == 0 {
		return 0
	}
	scheduled := 0
	for _, a := range solution.Assignments {
		scheduled += a.DurationMinutes
	}
	return float64(scheduled) / float64(available)
}
