package services

import (
	"math"
	"sort"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// SelectVariable implements §4.5 MRV variable ordering: the unassigned
// sub-variable with the smallest non-empty domain, tie-broken by higher
// degree (candidates conflicting with other unassigned sub-variables'
// candidates), then lexicographic student id, then sub-variable index.
// A sub-variable with an empty domain is selected only when every
// unassigned sub-variable's domain is empty.
//
// When heuristicsEnabled is false, the unassigned sub-variable with the
// lexicographically smallest (student id, sub-variable) key is returned
// instead, so the choice does not depend on input order (the canonical
// determinism fixture of §4.5).
func SelectVariable(store *DomainStore, assigned map[SubVariableKey]bool, heuristicsEnabled bool) (SubVariableKey, bool) {
	var candidates []SubVariableKey
	for _, key := range store.Keys() {
		if assigned[key] {
			continue
		}
		candidates = append(candidates, key)
	}
	if len(candidates) == 0 {
		return SubVariableKey{}, false
	}
	if !heuristicsEnabled {
		first := candidates[0]
		for _, key := range candidates[1:] {
			if lessKey(key, first) {
				first = key
			}
		}
		return first, true
	}

	domainSize := func(key SubVariableKey) int {
		if n := len(store.Candidates(key)); n > 0 {
			return n
		}
		return math.MaxInt
	}
	best := candidates[0]
	bestSize := domainSize(best)
	bestDegree := degree(store, best, assigned)
	for _, key := range candidates[1:] {
		size := domainSize(key)
		if size > bestSize {
			continue
		}
		if size < bestSize {
			best, bestSize, bestDegree = key, size, degree(store, key, assigned)
			continue
		}
		d := degree(store, key, assigned)
		if d > bestDegree ||
			(d == bestDegree && lessKey(key, best)) {
			best, bestSize, bestDegree = key, size, d
		}
	}
	return best, true
}

func lessKey(a, b SubVariableKey) bool {
	if a.StudentID != b.StudentID {
		return a.StudentID < b.StudentID
	}
	return a.SubVariable < b.SubVariable
}

// degree counts, for every candidate of `key`, how many candidates of
// other unassigned sub-variables would conflict with it (same day and
// overlapping interval) — a rough measure of constrainedness used only
// as an MRV tie-break.
func degree(store *DomainStore, key SubVariableKey, assigned map[SubVariableKey]bool) int {
	total := 0
	mine := store.Candidates(key)
	for _, otherKey := range store.Keys() {
		if otherKey == key || assigned[otherKey] {
			continue
		}
		for _, m := range mine {
			for _, o := range store.Candidates(otherKey) {
				if m.DayOfWeek == o.DayOfWeek && m.Block().Overlaps(o.Block()) {
					total++
				}
			}
		}
	}
	return total
}

// OrderCandidates implements §4.5 LCV value ordering: candidates ordered
// by fewest domain removals caused elsewhere, tie-broken by ascending
// soft cost, then earlier day, then earlier start minute.
//
// When heuristicsEnabled is false, candidates are returned in their
// existing (domain-construction) order.
func OrderCandidates(store *DomainStore, key SubVariableKey, partial domain.PartialSolution, teacher domain.TeacherConfig, constraints domain.ConstraintSet, assigned map[SubVariableKey]bool, heuristicsEnabled bool) []domain.Candidate {
	candidates := store.Candidates(key)
	ordered := make([]domain.Candidate, len(candidates))
	copy(ordered, candidates)

	if !heuristicsEnabled {
		return ordered
	}

	type scored struct {
		cand     domain.Candidate
		removals int
		softCost float64
	}
	scoredList := make([]scored, len(ordered))
	for i, c := range ordered {
		scoredList[i] = scored{
			cand:     c,
			removals: countRemovals(store, key, c, partial, teacher, constraints, assigned),
			softCost: constraints.SoftCost(c, partial, teacher),
		}
	}
	sort.SliceStable(scoredList, func(i, j int) bool {
		a, b := scoredList[i], scoredList[j]
		if a.removals != b.removals {
			return a.removals < b.removals
		}
		if a.softCost != b.softCost {
			return a.softCost < b.softCost
		}
		if a.cand.DayOfWeek != b.cand.DayOfWeek {
			return a.cand.DayOfWeek < b.cand.DayOfWeek
		}
		return a.cand.StartMinute < b.cand.StartMinute
	})
	for i, s := range scoredList {
		ordered[i] = s.cand
	}
	return ordered
}

// countRemovals estimates how many candidates across other unassigned
// sub-variables would be removed from their domains if `cand` were
// committed, without mutating state.
func countRemovals(store *DomainStore, key SubVariableKey, cand domain.Candidate, partial domain.PartialSolution, teacher domain.TeacherConfig, constraints domain.ConstraintSet, assigned map[SubVariableKey]bool) int {
	hypothetical := domain.PartialSolution{Assignments: append(append([]domain.LessonAssignment{}, partial.Assignments...), cand.ToAssignment())}

	total := 0
	for _, otherKey := range store.Keys() {
		if otherKey == key || assigned[otherKey] {
			continue
		}
		sameStudent := otherKey.StudentID == cand.StudentID
		for _, o := range store.Candidates(otherKey) {
			if sameStudent && o.SameSlot(cand) {
				total++
				continue
			}
			if !constraints.CheckHard(o, hypothetical, teacher) {
				total++
			}
		}
	}
	return total
}
