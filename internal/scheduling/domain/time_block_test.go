package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeBlock_Invalid(t *testing.T) {
	_, err := domain.NewTimeBlock(-1, 30)
	require.ErrorIs(t, err, domain.ErrInvalidTimeBlock)

	_, err = domain.NewTimeBlock(1430, 30)
	require.ErrorIs(t, err, domain.ErrInvalidTimeBlock)

	_, err = domain.NewTimeBlock(600, 0)
	require.ErrorIs(t, err, domain.ErrInvalidTimeBlock)
}

func TestTimeBlock_Overlaps(t *testing.T) {
	a, _ := domain.NewTimeBlock(600, 60)
	b, _ := domain.NewTimeBlock(630, 60)
	c, _ := domain.NewTimeBlock(660, 60)

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.True(t, a.Touches(c))
}

func TestTimeBlock_Contains(t *testing.T) {
	block, _ := domain.NewTimeBlock(600, 120)
	assert.True(t, block.Contains(600, 60))
	assert.True(t, block.Contains(660, 60))
	assert.False(t, block.Contains(650, 100))
}

func TestTimeBlock_EnumerateSlots(t *testing.T) {
	block, _ := domain.NewTimeBlock(600, 90)
	starts := block.EnumerateSlots(60, 15)
	assert.Equal(t, []int{600, 615, 630}, starts)
}

func TestMergeBlocks_CoalescesTouchingAndOverlapping(t *testing.T) {
	a, _ := domain.NewTimeBlock(600, 60)
	b, _ := domain.NewTimeBlock(660, 60)
	c, _ := domain.NewTimeBlock(800, 30)

	merged := domain.MergeBlocks([]domain.TimeBlock{c, b, a})
	require.Len(t, merged, 2)
	assert.Equal(t, 600, merged[0].Start)
	assert.Equal(t, 120, merged[0].Duration)
	assert.Equal(t, 800, merged[1].Start)
}

func TestIntersectBlocks(t *testing.T) {
	a, _ := domain.NewTimeBlock(540, 180) // 09:00-12:00
	b, _ := domain.NewTimeBlock(600, 120) // 10:00-12:00

	result := domain.IntersectBlocks([]domain.TimeBlock{a}, []domain.TimeBlock{b})
	require.Len(t, result, 1)
	assert.Equal(t, 600, result[0].Start)
	assert.Equal(t, 120, result[0].Duration)
}

func TestIntersectBlocks_NoOverlap(t *testing.T) {
	a, _ := domain.NewTimeBlock(540, 60)
	b, _ := domain.NewTimeBlock(840, 60)

	result := domain.IntersectBlocks([]domain.TimeBlock{a}, []domain.TimeBlock{b})
	assert.Empty(t, result)
}
