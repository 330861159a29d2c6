package domain

// ConstraintSet is the ordered, enabled subset of constraints
// participating in one solve.
type ConstraintSet struct {
	hard []Constraint
	soft []Constraint
}

// NewConstraintSet partitions the given constraints into hard and soft
// groups, preserving relative order within each group.
func NewConstraintSet(constraints []Constraint) ConstraintSet {
	var cs ConstraintSet
	for _, c := range constraints {
		if c.Kind() == Hard {
			cs.hard = append(cs.hard, c)
		} else {
			cs.soft = append(cs.soft, c)
		}
	}
	return cs
}

// NewDefaultConstraintSet builds the full constraint set for a given
// teacher/student population, with every named constraint enabled.
func NewDefaultConstraintSet(teacher TeacherConfig, students []StudentConfig) ConstraintSet {
	return NewFilteredConstraintSet(teacher, students, AllConstraintNames())
}

// NewFilteredConstraintSet builds a constraint set containing only the
// named constraints, in AllConstraintNames order. Unknown names are
// ignored here (callers should validate names at the boundary — see
// ValidateConstraintNames).
func NewFilteredConstraintSet(teacher TeacherConfig, students []StudentConfig, enabled []string) ConstraintSet {
	enabledSet := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		enabledSet[name] = true
	}

	var all []Constraint
	registry := map[string]func() Constraint{
		NameAvailability:         func() Constraint { return NewAvailabilityConstraint(students) },
		NameNonOverlap:           func() Constraint { return NewNonOverlapConstraint() },
		NameDuration:             func() Constraint { return NewDurationConstraint() },
		NameConsecutiveLimit:     func() Constraint { return NewConsecutiveLimitConstraint() },
		NameBreakRequirement:     func() Constraint { return NewBreakRequirementConstraint() },
		NameDailyCount:           func() Constraint { return NewDailyCountConstraint() },
		NameBackToBackPreference: func() Constraint { return NewBackToBackPreferenceConstraint() },
		NameWorkloadBalance:      func() Constraint { return NewWorkloadBalanceConstraint() },
		NamePreferredTime:        func() Constraint { return NewPreferredTimeConstraint(nil) },
	}
	for _, name := range AllConstraintNames() {
		if !enabledSet[name] {
			continue
		}
		if factory, ok := registry[name]; ok {
			all = append(all, factory())
		}
	}
	_ = teacher
	return NewConstraintSet(all)
}

// ValidateConstraintNames raises a boundary error if the enabled set
// contains a name not recognized by AllConstraintNames.
func ValidateConstraintNames(enabled []string) error {
	known := make(map[string]bool)
	for _, n := range AllConstraintNames() {
		known[n] = true
	}
	for _, n := range enabled {
		if !known[n] {
			return ErrUnknownConstraintName
		}
	}
	return nil
}

// CheckHard evaluates every hard constraint against the candidate; it
// returns false on the first violation (short-circuiting).
func (cs ConstraintSet) CheckHard(cand Candidate, partial PartialSolution, teacher TeacherConfig) bool {
	for _, c := range cs.hard {
		if c.Evaluate(cand, partial, teacher).Violated {
			return false
		}
	}
	return true
}

// SoftCost sums the cost contributed by every soft constraint for the
// candidate against the partial solution.
func (cs ConstraintSet) SoftCost(cand Candidate, partial PartialSolution, teacher TeacherConfig) float64 {
	total := 0.0
	for _, c := range cs.soft {
		total += c.Evaluate(cand, partial, teacher).Cost
	}
	return total
}

// HardConstraints exposes the hard constraints in evaluation order. The
// propagation engine re-checks other students' domains through CheckHard.
func (cs ConstraintSet) HardConstraints() []Constraint { return cs.hard }
