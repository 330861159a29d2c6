// Package services implements the constraint-satisfaction solver: domain
// construction, propagation, heuristics, backtracking search, and the
// solver façade that orchestrates them.
package services

import (
	"fmt"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// StudentDomain is one student's ordered, mutable sequence of feasible
// candidates, expanded into sub-variables when MaxLessonsPerWeek > 1.
type StudentDomain struct {
	StudentID    string
	SubVariables []SubVariableDomain
}

// SubVariableDomain is one sub-variable's candidate sequence. A student
// requesting k lessons per week owns k sub-variables sharing the same
// base candidate set, distinguished only by the shared-slot-distinctness
// constraint enforced during search.
type SubVariableDomain struct {
	SubVariable int
	Candidates  []domain.Candidate
}

// UnschedulableStudent records a student excluded from search because no
// feasible candidate exists at all.
type UnschedulableStudent struct {
	StudentID string
	Reason    string
}

// BuildResult is the domain builder's output.
type BuildResult struct {
	Domains       []StudentDomain
	Unschedulable []UnschedulableStudent
}

// BuildDomains implements §4.2: for each student, resolve duration,
// intersect availability per day, enumerate candidates, and expand into
// sub-variables for multi-lesson students.
func BuildDomains(teacher domain.TeacherConfig, students []domain.StudentConfig) BuildResult {
	var result BuildResult

	for _, student := range students {
		duration := teacher.Constraints.ResolveDuration(student.PreferredDuration)
		granularity := teacher.Constraints.GranularityMinutes()

		intersection := domain.IntersectWeeks(teacher.Availability, student.Availability)

		var base []domain.Candidate
		for day := 0; day < 7; day++ {
			for _, block := range intersection.Days[day].Blocks {
				for _, start := range block.EnumerateSlots(duration, granularity) {
					base = append(base, domain.Candidate{
						StudentID:       student.Person.ID,
						DayOfWeek:       day,
						StartMinute:     start,
						DurationMinutes: duration,
					})
				}
			}
		}

		if len(base) == 0 {
			result.Unschedulable = append(result.Unschedulable, UnschedulableStudent{
				StudentID: student.Person.ID,
				Reason:    "no feasible slot",
			})
			continue
		}

		sd := StudentDomain{StudentID: student.Person.ID}
		for k := 0; k < student.MaxLessonsPerWeek; k++ {
			candidates := make([]domain.Candidate, len(base))
			for i, c := range base {
				c.SubVariable = k
				candidates[i] = c
			}
			sd.SubVariables = append(sd.SubVariables, SubVariableDomain{
				SubVariable: k,
				Candidates:  candidates,
			})
		}
		result.Domains = append(result.Domains, sd)
	}

	return result
}

// TotalCandidates sums the candidates across every sub-variable.
func (d StudentDomain) TotalCandidates() int {
	n := 0
	for _, sv := range d.SubVariables {
		n += len(sv.Candidates)
	}
	return n
}

// String renders a domain for debug logging.
func (d StudentDomain) String() string {
	return fmt.Sprintf("student=%s subvars=%d candidates=%d", d.StudentID, len(d.SubVariables), d.TotalCandidates())
}
