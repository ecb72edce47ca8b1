package dice_test

import (
	"fmt"

	"pgregory.net/rapid"
)

// seqRoller replays values in order, clamped to the die size.
type seqRoller struct {
	values []int
	next   int
}

func (s *seqRoller) Roll(size int) (int, error) {
	v := s.values[s.next%len(s.values)]
	s.next++
	if v > size {
		v = size
	}
	return v, nil
}

func (s *seqRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = s.Roll(size)
	}
	return out, nil
}

// rapidRoller draws every die face from a rapid generator.
type rapidRoller struct {
	t *rapid.T
}

func (r rapidRoller) Roll(size int) (int, error) {
	return rapid.IntRange(1, size).Draw(r.t, "face"), nil
}

func (r rapidRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

type brokenRoller struct{}

func (brokenRoller) Roll(int) (int, error)       { return 0, fmt.Errorf("entropy exhausted") }
func (brokenRoller) RollN(int, int) ([]int, error) { return nil, fmt.Errorf("entropy exhausted") }
