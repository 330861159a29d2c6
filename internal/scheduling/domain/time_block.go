package domain

import "sort"

// MinutesPerDay is the width of one day's minute-offset axis, [0,1440).
const MinutesPerDay = 24 * 60

// DefaultGranularityMinutes is the default candidate-enumeration step.
const DefaultGranularityMinutes = 15

// TimeBlock is a half-open minute interval [Start, Start+Duration) within
// a single day, [0, MinutesPerDay).
type TimeBlock struct {
	Start    int
	Duration int
}

// NewTimeBlock validates and constructs a TimeBlock.
func NewTimeBlock(start, duration int) (TimeBlock, error) {
	if start < 0 || duration <= 0 || start+duration > MinutesPerDay {
		return TimeBlock{}, ErrInvalidTimeBlock
	}
	return TimeBlock{Start: start, Duration: duration}, nil
}

// End returns the exclusive end minute of the block.
func (b TimeBlock) End() int { return b.Start + b.Duration }

// Overlaps reports whether two blocks share any minute.
func (b TimeBlock) Overlaps(other TimeBlock) bool {
	return b.Start < other.End() && other.Start < b.End()
}

// Touches reports whether two blocks are adjacent (one ends exactly where
// the other starts) without overlapping.
func (b TimeBlock) Touches(other TimeBlock) bool {
	return b.End() == other.Start || other.End() == b.Start
}

// Contains reports whether the block fully covers [t, t+d).
func (b TimeBlock) Contains(t, d int) bool {
	return t >= b.Start && t+d <= b.End()
}

// EnumerateSlots returns every start minute, aligned to granularity, such
// that a block of the given duration fits entirely within b.
func (b TimeBlock) EnumerateSlots(duration, granularity int) []int {
	if granularity <= 0 || duration <= 0 {
		return nil
	}
	var starts []int
	first := b.Start
	if rem := first % granularity; rem != 0 {
		first += granularity - rem
	}
	for t := first; t+duration <= b.End(); t += granularity {
		starts = append(starts, t)
	}
	return starts
}

// MergeBlocks sorts and merges a set of blocks, coalescing any pair that
// touches or overlaps into a single block.
func MergeBlocks(blocks []TimeBlock) []TimeBlock {
	if len(blocks) == 0 {
		return nil
	}
	sorted := make([]TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []TimeBlock{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End() {
			if next.End() > last.End() {
				last.Duration = next.End() - last.Start
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// IntersectBlocks returns the set of blocks common to both inputs, each
// input assumed already merged (disjoint, sorted by start).
func IntersectBlocks(a, b []TimeBlock) []TimeBlock {
	var result []TimeBlock
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := max(a[i].Start, b[j].Start)
		end := min(a[i].End(), b[j].End())
		if start < end {
			result = append(result, TimeBlock{Start: start, Duration: end - start})
		}
		if a[i].End() < b[j].End() {
			i++
		} else {
			j++
		}
	}
	return result
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
