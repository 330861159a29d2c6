package domain

import "sort"

// SolutionMetadata summarizes a solve run.
type SolutionMetadata struct {
	TotalStudents       int
	ScheduledStudents   int
	AverageUtilization  float64
	ComputeTimeMs       int64
	BacktrackCount      int
	TerminatedEarly     bool
}

// Solution is the output of a solve: the set of committed assignments,
// the students who could not be scheduled, and run metadata.
type Solution struct {
	Assignments          []LessonAssignment
	UnscheduledStudentIDs []string
	Metadata              SolutionMetadata
}

// ScoredSolution pairs a Solution with the total soft-constraint penalty
// accumulated while building it, for best-so-far comparison during search.
type ScoredSolution struct {
	Solution Solution
	SoftCost float64
}

// Score returns the lexicographic comparison key used to pick the
// best-so-far solution during search: more assignments wins, then lower
// soft cost, then — for determinism — the solution's own assignment
// ordering is used as a final tiebreak by the caller.
func (s ScoredSolution) Score() (int, float64) {
	return len(s.Solution.Assignments), s.SoftCost
}

// Better reports whether s is strictly better than other under the
// lexicographic (|assignments| desc, softCost asc) comparison.
func (s ScoredSolution) Better(other ScoredSolution) bool {
	sCount, sCost := s.Score()
	oCount, oCost := other.Score()
	if sCount != oCount {
		return sCount > oCount
	}
	return sCost < oCost
}

// SortedAssignments returns a copy of the assignments in the canonical
// deterministic order: by day, then start minute, then student id.
func SortedAssignments(assignments []LessonAssignment) []LessonAssignment {
	sorted := make([]LessonAssignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return a.StudentID < b.StudentID
	})
	return sorted
}
