package services

import "github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"

// SubVariableKey identifies one of a student's sub-variables uniquely
// within a solve.
type SubVariableKey struct {
	StudentID   string
	SubVariable int
}

// removalRecord is one undo-log entry: the candidates removed from one
// sub-variable's domain during a single commit's propagation pass, along
// with the index each occupied so restoration preserves LCV ordering.
type removalRecord struct {
	key        SubVariableKey
	candidates []indexedCandidate
}

type indexedCandidate struct {
	index     int
	candidate domain.Candidate
}

// UndoFrame is everything a single commit's propagation removed; passing
// it to Restore reverses the commit in O(removed) time.
type UndoFrame struct {
	removals []removalRecord
}

// DomainStore is the solver's mutable per-sub-variable candidate state
// during one solve, with a reversible restore-point stack.
type DomainStore struct {
	bySubVar map[SubVariableKey][]domain.Candidate
	order    []SubVariableKey
}

// NewDomainStore builds a DomainStore from the domain builder's output.
func NewDomainStore(domains []StudentDomain) *DomainStore {
	store := &DomainStore{bySubVar: make(map[SubVariableKey][]domain.Candidate)}
	for _, sd := range domains {
		for _, sv := range sd.SubVariables {
			key := SubVariableKey{StudentID: sd.StudentID, SubVariable: sv.SubVariable}
			store.bySubVar[key] = sv.Candidates
			store.order = append(store.order, key)
		}
	}
	return store
}

// Keys returns every sub-variable key in stable construction order.
func (s *DomainStore) Keys() []SubVariableKey { return s.order }

// Candidates returns the current domain for a sub-variable.
func (s *DomainStore) Candidates(key SubVariableKey) []domain.Candidate {
	return s.bySubVar[key]
}

// Propagate implements §4.4: after committing candidate `committed`,
// remove from every other sub-variable's domain any candidate that would
// now violate a hard constraint, plus (for a committed student's own
// sibling sub-variables) any candidate occupying the same (day, start)
// slot. Returns the undo frame and whether any domain was wiped out.
func Propagate(store *DomainStore, committed domain.Candidate, partial domain.PartialSolution, teacher domain.TeacherConfig, constraints domain.ConstraintSet, assigned map[SubVariableKey]bool) (UndoFrame, bool) {
	var frame UndoFrame
	wipeout := false

	for _, key := range store.order {
		if assigned[key] {
			continue
		}
		if key.StudentID == committed.StudentID && key.SubVariable == committed.SubVariable {
			continue
		}

		current := store.bySubVar[key]
		var kept []domain.Candidate
		var removed []indexedCandidate

		sameStudent := key.StudentID == committed.StudentID
		for i, cand := range current {
			if sameStudent && cand.SameSlot(committed) {
				removed = append(removed, indexedCandidate{index: i, candidate: cand})
				continue
			}
			if !constraints.CheckHard(cand, partial, teacher) {
				removed = append(removed, indexedCandidate{index: i, candidate: cand})
				continue
			}
			kept = append(kept, cand)
		}

		if len(removed) == 0 {
			continue
		}
		store.bySubVar[key] = kept
		frame.removals = append(frame.removals, removalRecord{key: key, candidates: removed})
		if len(kept) == 0 {
			wipeout = true
		}
	}

	return frame, wipeout
}

// Restore undoes a single commit's propagation, re-inserting removed
// candidates at their original index.
func Restore(store *DomainStore, frame UndoFrame) {
	for _, rec := range frame.removals {
		current := store.bySubVar[rec.key]
		restored := make([]domain.Candidate, 0, len(current)+len(rec.candidates))
		removedAt := make(map[int]domain.Candidate, len(rec.candidates))
		maxIndex := -1
		for _, rc := range rec.candidates {
			removedAt[rc.index] = rc.candidate
			if rc.index > maxIndex {
				maxIndex = rc.index
			}
		}
		curIdx := 0
		for i := 0; i <= maxIndex || curIdx < len(current); i++ {
			if cand, ok := removedAt[i]; ok {
				restored = append(restored, cand)
				continue
			}
			if curIdx < len(current) {
				restored = append(restored, current[curIdx])
				curIdx++
			}
		}
		store.bySubVar[rec.key] = restored
	}
}
