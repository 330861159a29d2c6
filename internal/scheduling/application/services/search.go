package services

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// DefaultMaxTimeMs and DefaultMaxBacktracks are the §4.6 termination
// defaults.
const (
	DefaultMaxTimeMs      = 5000
	DefaultMaxBacktracks  = 50000
)

// SearchOptions configures one backtracking search run.
type SearchOptions struct {
	UseHeuristics            bool
	UseConstraintPropagation bool
	MaxTimeMs                int64
	MaxBacktracks            int
}

// SearchResult is the outcome of a bounded backtracking search.
type SearchResult struct {
	Best            domain.ScoredSolution
	BacktrackCount  int
	TerminatedEarly bool
}

// searchState carries the mutable bookkeeping threaded through recursion:
// the running best-so-far, the backtrack budget counter, and the
// deadline. A single instance is shared across the whole search tree.
type searchState struct {
	store       *DomainStore
	teacher     domain.TeacherConfig
	constraints domain.ConstraintSet
	opts        SearchOptions
	deadline    time.Time

	best           domain.ScoredSolution
	haveBest       bool
	backtrackCount int
	stopped        bool

	allStudentIDs []string
	unschedulable []UnschedulableStudent
}

// Search implements §4.6: deterministic depth-first backtracking search
// with bounded backtracks and wall-clock timeout, emitting the best
// partial solution on exhaustion or bound-hit.
func Search(store *DomainStore, teacher domain.TeacherConfig, students []domain.StudentConfig, build BuildResult, constraints domain.ConstraintSet, opts SearchOptions) SearchResult {
	if opts.MaxTimeMs <= 0 {
		opts.MaxTimeMs = DefaultMaxTimeMs
	}
	if opts.MaxBacktracks <= 0 {
		opts.MaxBacktracks = DefaultMaxBacktracks
	}

	allIDs := make([]string, len(students))
	for i, s := range students {
		allIDs[i] = s.Person.ID
	}

	state := &searchState{
		store:         store,
		teacher:       teacher,
		constraints:   constraints,
		opts:          opts,
		deadline:      time.Now().Add(time.Duration(opts.MaxTimeMs) * time.Millisecond),
		allStudentIDs: allIDs,
		unschedulable: build.Unschedulable,
	}

	assigned := make(map[SubVariableKey]bool)
	partial := domain.PartialSolution{}
	state.recurse(assigned, partial, 0)

	if !state.haveBest {
		state.best = domain.ScoredSolution{Solution: state.leafSolution(partial)}
	}

	return SearchResult{
		Best:            state.best,
		BacktrackCount:  state.backtrackCount,
		TerminatedEarly: state.stopped,
	}
}

func (s *searchState) budgetExceeded() bool {
	if s.backtrackCount >= s.opts.MaxBacktracks {
		return true
	}
	return time.Now().After(s.deadline)
}

// recurse explores the search tree rooted at the current assigned/partial
// state. softCost is the running soft-constraint total for the current
// partial solution.
func (s *searchState) recurse(assigned map[SubVariableKey]bool, partial domain.PartialSolution, softCost float64) {
	if s.stopped {
		return
	}

	key, ok := SelectVariable(s.store, assigned, s.opts.UseHeuristics)
	if !ok {
		s.considerLeaf(partial, softCost)
		return
	}

	candidates := s.store.Candidates(key)
	if len(candidates) == 0 {
		assigned[key] = true
		s.recurse(assigned, partial, softCost)
		delete(assigned, key)
		return
	}

	ordered := OrderCandidates(s.store, key, partial, s.teacher, s.constraints, assigned, s.opts.UseHeuristics)

	tried := false
	for _, cand := range ordered {
		if s.stopped {
			return
		}
		if s.budgetExceeded() {
			s.stopped = true
			s.considerLeaf(partial, softCost)
			return
		}
		if !s.constraints.CheckHard(cand, partial, s.teacher) {
			continue
		}
		tried = true

		assignment := cand.ToAssignment()
		newPartial := domain.PartialSolution{Assignments: append(append([]domain.LessonAssignment{}, partial.Assignments...), assignment)}
		assigned[key] = true

		var frame UndoFrame
		if s.opts.UseConstraintPropagation {
			// A propagation wipeout on some other sub-variable is not
			// branch failure: the committing student stays scheduled
			// here, and the wiped sub-variable is left unscheduled when
			// it is later selected and found to have an empty domain
			// (the empty-candidates case above).
			frame, _ = Propagate(s.store, cand, newPartial, s.teacher, s.constraints, assigned)
		}

		newSoftCost := softCost + s.constraints.SoftCost(cand, partial, s.teacher)
		s.recurse(assigned, newPartial, newSoftCost)

		if s.opts.UseConstraintPropagation {
			Restore(s.store, frame)
		}
		delete(assigned, key)
		s.backtrackCount++

		if s.stopped {
			return
		}
	}

	if !tried {
		// Every candidate failed the commit-time hard check. Leave this
		// student unscheduled at this branch and recurse on the
		// remaining students instead of failing the branch outright.
		assigned[key] = true
		s.recurse(assigned, partial, softCost)
		delete(assigned, key)
	}
}

// considerLeaf builds the Solution for the current complete (or
// budget-terminated) branch and keeps it if it beats the best-so-far.
func (s *searchState) considerLeaf(partial domain.PartialSolution, softCost float64) {
	scored := domain.ScoredSolution{Solution: s.leafSolution(partial), SoftCost: softCost}
	tie := s.haveBest && !scored.Better(s.best) && !s.best.Better(scored)
	if !s.haveBest || scored.Better(s.best) ||
		(tie && assignmentsLess(scored.Solution.Assignments, s.best.Solution.Assignments)) {
		s.best = scored
		s.haveBest = true
	}
}

// assignmentsLess compares two canonically sorted assignment lists
// lexicographically by (day, start minute, student id).
func assignmentsLess(a, b []domain.LessonAssignment) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].DayOfWeek != b[i].DayOfWeek {
			return a[i].DayOfWeek < b[i].DayOfWeek
		}
		if a[i].StartMinute != b[i].StartMinute {
			return a[i].StartMinute < b[i].StartMinute
		}
		if a[i].StudentID != b[i].StudentID {
			return a[i].StudentID < b[i].StudentID
		}
	}
	return len(a) < len(b)
}

func (s *searchState) leafSolution(partial domain.PartialSolution) domain.Solution {
	scheduled := make(map[string]bool, len(partial.Assignments))
	for _, a := range partial.Assignments {
		scheduled[a.StudentID] = true
	}

	var unscheduled []string
	for _, u := range s.unschedulable {
		unscheduled = append(unscheduled, u.StudentID)
	}
	for _, id := range s.allStudentIDs {
		if !scheduled[id] {
			alreadyListed := false
			for _, u := range s.unschedulable {
				if u.StudentID == id {
					alreadyListed = true
					break
				}
			}
			if !alreadyListed {
				unscheduled = append(unscheduled, id)
			}
		}
	}

	sort.Strings(unscheduled)

	return domain.Solution{
		Assignments:           domain.SortedAssignments(partial.Assignments),
		UnscheduledStudentIDs: unscheduled,
	}
}
