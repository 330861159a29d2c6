package domain

import "math"

// ConstraintKind distinguishes hard constraints (candidate-failing) from
// soft constraints (cost-accumulating).
type ConstraintKind int

const (
	Hard ConstraintKind = iota
	Soft
)

// ConstraintResult is the outcome of evaluating one constraint against one
// candidate and the partial solution built so far.
type ConstraintResult struct {
	OK        bool
	Violated  bool
	Cost      float64
}

// Ok is the zero-cost, non-violating result.
func Ok() ConstraintResult { return ConstraintResult{OK: true} }

// Violated reports a hard-constraint failure.
func Violated() ConstraintResult { return ConstraintResult{Violated: true} }

// Costed reports a soft-constraint contribution.
func Costed(cost float64) ConstraintResult { return ConstraintResult{OK: true, Cost: cost} }

// PartialSolution is the read-only view of committed assignments a
// constraint evaluates a candidate against.
type PartialSolution struct {
	Assignments []LessonAssignment
}

// OnDay returns every committed assignment on the given day.
func (p PartialSolution) OnDay(day int) []LessonAssignment {
	var out []LessonAssignment
	for _, a := range p.Assignments {
		if a.DayOfWeek == day {
			out = append(out, a)
		}
	}
	return out
}

// OnDayWithStudent returns every committed assignment for a student on a
// given day.
func (p PartialSolution) OnDayWithStudent(day int, studentID string) []LessonAssignment {
	var out []LessonAssignment
	for _, a := range p.Assignments {
		if a.DayOfWeek == day && a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

// Constraint evaluates a single candidate assignment against the teacher
// configuration and the partial solution built so far.
type Constraint interface {
	Name() string
	Kind() ConstraintKind
	Evaluate(candidate Candidate, partial PartialSolution, teacher TeacherConfig) ConstraintResult
}

// Name constants for the enabled-constraint-subset option and for
// identifying constraints in logs/metadata.
const (
	NameAvailability         = "availability"
	NameNonOverlap           = "non_overlap"
	NameDuration             = "duration"
	NameConsecutiveLimit     = "consecutive_limit"
	NameBreakRequirement     = "break_requirement"
	NameDailyCount           = "daily_count"
	NameBackToBackPreference = "back_to_back_preference"
	NameWorkloadBalance      = "workload_balance"
	NamePreferredTime        = "preferred_time"
)

// DefaultBackToBackWeight is the per-adjacent-pair soft cost weight.
const DefaultBackToBackWeight = 20.0

// AllConstraintNames lists every constraint recognized by the enabled-set
// option, in the order they should be evaluated.
func AllConstraintNames() []string {
	return []string{
		NameAvailability, NameNonOverlap, NameDuration,
		NameConsecutiveLimit, NameBreakRequirement, NameDailyCount,
		NameBackToBackPreference, NameWorkloadBalance, NamePreferredTime,
	}
}

// studentAvailability is supplied at construction time (by
// NewFilteredConstraintSet through NewAvailabilityConstraint) so that constraints which need student-specific availability (only
// Availability does) don't need to thread the whole StudentConfig set
// through every evaluation call.
type availabilityConstraint struct {
	studentAvailability map[string]WeekSchedule
}

// NewAvailabilityConstraint builds the Availability hard constraint.
func NewAvailabilityConstraint(students []StudentConfig) Constraint {
	m := make(map[string]WeekSchedule, len(students))
	for _, s := range students {
		m[s.Person.ID] = s.Availability
	}
	return &availabilityConstraint{studentAvailability: m}
}

func (c *availabilityConstraint) Name() string        { return NameAvailability }
func (c *availabilityConstraint) Kind() ConstraintKind { return Hard }

func (c *availabilityConstraint) Evaluate(cand Candidate, _ PartialSolution, teacher TeacherConfig) ConstraintResult {
	teacherBlocks := teacher.Availability.BlocksOn(cand.DayOfWeek)
	if !anyBlockContains(teacherBlocks, cand.StartMinute, cand.DurationMinutes) {
		return Violated()
	}
	studentAvail, ok := c.studentAvailability[cand.StudentID]
	if !ok {
		return Violated()
	}
	studentBlocks := studentAvail.BlocksOn(cand.DayOfWeek)
	if !anyBlockContains(studentBlocks, cand.StartMinute, cand.DurationMinutes) {
		return Violated()
	}
	return Ok()
}

func anyBlockContains(blocks []TimeBlock, start, duration int) bool {
	for _, b := range blocks {
		if b.Contains(start, duration) {
			return true
		}
	}
	return false
}

// nonOverlapConstraint enforces no overlap on (student, day) or
// (teacher, day).
type nonOverlapConstraint struct{}

// NewNonOverlapConstraint builds the NonOverlap hard constraint.
func NewNonOverlapConstraint() Constraint { return &nonOverlapConstraint{} }

func (c *nonOverlapConstraint) Name() string        { return NameNonOverlap }
func (c *nonOverlapConstraint) Kind() ConstraintKind { return Hard }

func (c *nonOverlapConstraint) Evaluate(cand Candidate, partial PartialSolution, _ TeacherConfig) ConstraintResult {
	candAssignment := cand.ToAssignment()
	for _, existing := range partial.OnDay(cand.DayOfWeek) {
		if existing.OverlapsSameDay(candAssignment) {
			return Violated()
		}
	}
	return Ok()
}

// durationConstraint enforces the bounds and allowed-set membership.
type durationConstraint struct{}

// NewDurationConstraint builds the Duration hard constraint.
func NewDurationConstraint() Constraint { return &durationConstraint{} }

func (c *durationConstraint) Name() string        { return NameDuration }
func (c *durationConstraint) Kind() ConstraintKind { return Hard }

func (c *durationConstraint) Evaluate(cand Candidate, _ PartialSolution, teacher TeacherConfig) ConstraintResult {
	if !teacher.Constraints.AllowsDuration(cand.DurationMinutes) {
		return Violated()
	}
	return Ok()
}

// consecutiveLimitConstraint bounds the maximal back-to-back run length on
// the candidate's day once the candidate is added.
type consecutiveLimitConstraint struct{}

// NewConsecutiveLimitConstraint builds the ConsecutiveLimit hard constraint.
func NewConsecutiveLimitConstraint() Constraint { return &consecutiveLimitConstraint{} }

func (c *consecutiveLimitConstraint) Name() string        { return NameConsecutiveLimit }
func (c *consecutiveLimitConstraint) Kind() ConstraintKind { return Hard }

func (c *consecutiveLimitConstraint) Evaluate(cand Candidate, partial PartialSolution, teacher TeacherConfig) ConstraintResult {
	limit := teacher.Constraints.MaxConsecutiveMinutes
	if limit <= 0 {
		return Ok()
	}
	day := append(partial.OnDay(cand.DayOfWeek), cand.ToAssignment())
	for _, run := range runsOnDay(day) {
		if run.totalMinutes() > limit {
			return Violated()
		}
	}
	return Ok()
}

// breakRequirementConstraint requires a gap of at least
// BreakDurationMinutes after any run that reaches MaxConsecutiveMinutes
// exactly.
type breakRequirementConstraint struct{}

// NewBreakRequirementConstraint builds the BreakRequirement hard constraint.
func NewBreakRequirementConstraint() Constraint { return &breakRequirementConstraint{} }

func (c *breakRequirementConstraint) Name() string        { return NameBreakRequirement }
func (c *breakRequirementConstraint) Kind() ConstraintKind { return Hard }

func (c *breakRequirementConstraint) Evaluate(cand Candidate, partial PartialSolution, teacher TeacherConfig) ConstraintResult {
	breakMin := teacher.Constraints.BreakDurationMinutes
	limit := teacher.Constraints.MaxConsecutiveMinutes
	if breakMin <= 0 || limit <= 0 {
		return Ok()
	}
	day := append(partial.OnDay(cand.DayOfWeek), cand.ToAssignment())
	runs := runsOnDay(day)
	for i, run := range runs {
		if run.totalMinutes() != limit {
			continue
		}
		if i+1 >= len(runs) {
			continue
		}
		gap := runs[i+1].start - run.end
		if gap < breakMin {
			return Violated()
		}
	}
	return Ok()
}

// dailyCountConstraint bounds the number of assignments on a single day.
type dailyCountConstraint struct{}

// NewDailyCountConstraint builds the DailyCount hard constraint.
func NewDailyCountConstraint() Constraint { return &dailyCountConstraint{} }

func (c *dailyCountConstraint) Name() string        { return NameDailyCount }
func (c *dailyCountConstraint) Kind() ConstraintKind { return Hard }

func (c *dailyCountConstraint) Evaluate(cand Candidate, partial PartialSolution, teacher TeacherConfig) ConstraintResult {
	max := teacher.Constraints.MaxLessonsPerDay
	if max <= 0 {
		return Ok()
	}
	if len(partial.OnDay(cand.DayOfWeek))+1 > max {
		return Violated()
	}
	return Ok()
}

// run is a maximal chain of same-day assignments where each starts
// exactly where the previous ends.
type run struct {
	start, end int
}

func (r run) totalMinutes() int { return r.end - r.start }

func runsOnDay(assignments []LessonAssignment) []run {
	if len(assignments) == 0 {
		return nil
	}
	sorted := SortedAssignments(assignments)
	var runs []run
	cur := run{start: sorted[0].StartMinute, end: sorted[0].EndMinute()}
	for _, a := range sorted[1:] {
		if a.StartMinute == cur.end {
			cur.end = a.EndMinute()
			continue
		}
		runs = append(runs, cur)
		cur = run{start: a.StartMinute, end: a.EndMinute()}
	}
	runs = append(runs, cur)
	return runs
}

// backToBackPreferenceConstraint is soft: rewards or penalizes adjacency
// between the teacher's assignments depending on the configured preference.
type backToBackPreferenceConstraint struct {
	weight float64
}

// NewBackToBackPreferenceConstraint builds the BackToBackPreference soft
// constraint with the default weight.
func NewBackToBackPreferenceConstraint() Constraint {
	return &backToBackPreferenceConstraint{weight: DefaultBackToBackWeight}
}

func (c *backToBackPreferenceConstraint) Name() string        { return NameBackToBackPreference }
func (c *backToBackPreferenceConstraint) Kind() ConstraintKind { return Soft }

func (c *backToBackPreferenceConstraint) Evaluate(cand Candidate, partial PartialSolution, teacher TeacherConfig) ConstraintResult {
	pref := teacher.Constraints.BackToBackPreference
	if pref == BackToBackAgnostic || pref == "" {
		return Costed(0)
	}
	day := partial.OnDay(cand.DayOfWeek)
	adjacent := false
	for _, existing := range day {
		if existing.EndMinute() == cand.StartMinute || cand.ToAssignment().EndMinute() == existing.StartMinute {
			adjacent = true
			break
		}
	}
	switch pref {
	case BackToBackMaximize:
		if !adjacent && len(day) > 0 {
			return Costed(c.weight)
		}
	case BackToBackMinimize:
		if adjacent {
			return Costed(c.weight)
		}
	}
	return Costed(0)
}

// workloadBalanceConstraint is soft: penalizes uneven distribution of
// lesson counts across the days that have any assignment.
type workloadBalanceConstraint struct{}

// NewWorkloadBalanceConstraint builds the WorkloadBalance soft constraint.
func NewWorkloadBalanceConstraint() Constraint { return &workloadBalanceConstraint{} }

func (c *workloadBalanceConstraint) Name() string        { return NameWorkloadBalance }
func (c *workloadBalanceConstraint) Kind() ConstraintKind { return Soft }

func (c *workloadBalanceConstraint) Evaluate(cand Candidate, partial PartialSolution, _ TeacherConfig) ConstraintResult {
	counts := make(map[int]int)
	for _, a := range partial.Assignments {
		counts[a.DayOfWeek]++
	}
	counts[cand.DayOfWeek]++

	n := len(counts)
	if n == 0 {
		return Costed(0)
	}
	sum := 0
	for _, v := range counts {
		sum += v
	}
	mean := float64(sum) / float64(n)
	var variance float64
	for _, v := range counts {
		diff := float64(v) - mean
		variance += diff * diff
	}
	variance /= float64(n)
	return Costed(math.Sqrt(variance))
}

// preferredTimeConstraint is soft: penalizes distance of the candidate's
// start minute from a per-student preferred centre (default midday).
type preferredTimeConstraint struct {
	preferredCentre map[string]int
	defaultCentre   int
}

// NewPreferredTimeConstraint builds the PreferredTime soft constraint. A
// student not present in centres uses the default midday centre.
func NewPreferredTimeConstraint(centres map[string]int) Constraint {
	return &preferredTimeConstraint{preferredCentre: centres, defaultCentre: 12 * 60}
}

func (c *preferredTimeConstraint) Name() string        { return NamePreferredTime }
func (c *preferredTimeConstraint) Kind() ConstraintKind { return Soft }

func (c *preferredTimeConstraint) Evaluate(cand Candidate, _ PartialSolution, _ TeacherConfig) ConstraintResult {
	centre := c.defaultCentre
	if v, ok := c.preferredCentre[cand.StudentID]; ok {
		centre = v
	}
	distance := abs(cand.StartMinute - centre)
	return Costed(float64(distance) / 60.0)
}
