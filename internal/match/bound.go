package match

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/mhtoin/initbot/internal/errors"
)

// Kind selects how a Bound compares a value.
type Kind int

const (
	// Eq matches exactly Lower.
	Eq Kind = iota
	// Min matches values >= Lower.
	Min
	// Max matches values <= Upper.
	Max
	// Range matches Lower <= v <= Upper.
	Range
)

// Bound is a predicate over integers, used for table rows keyed by a roll.
type Bound struct {
	Kind  Kind
	Lower int
	Upper int
}

// Exactly returns a bound matching only v.
func Exactly(v int) Bound { return Bound{Kind: Eq, Lower: v, Upper: v} }

// AtLeast returns a bound matching v and anything above.
func AtLeast(v int) Bound { return Bound{Kind: Min, Lower: v, Upper: math.MaxInt} }

// AtMost returns a bound matching v and anything below.
func AtMost(v int) Bound { return Bound{Kind: Max, Lower: math.MinInt, Upper: v} }

// Between returns a bound matching lower through upper inclusive.
func Between(lower, upper int) Bound { return Bound{Kind: Range, Lower: lower, Upper: upper} }

// Matches reports whether v satisfies the bound.
func (b Bound) Matches(v int) bool {
	switch b.Kind {
	case Eq:
		return v == b.Lower
	case Min:
		return v >= b.Lower
	case Max:
		return v <= b.Upper
	case Range:
		return b.Lower <= v && v <= b.Upper
	default:
		return false
	}
}

func (b Bound) String() string {
	switch b.Kind {
	case Eq:
		return strconv.Itoa(b.Lower)
	case Min:
		return ">=" + strconv.Itoa(b.Lower)
	case Max:
		return "<=" + strconv.Itoa(b.Upper)
	case Range:
		return fmt.Sprintf("%d-%d", b.Lower, b.Upper)
	default:
		return "?"
	}
}

var rangePattern = regexp.MustCompile(`^(-?[0-9]+)-(-?[0-9]+)$`)

// ParseBound reads the String form of a bound: "7", ">=20", "<=1" or "3-5".
func ParseBound(s string) (Bound, error) {
	switch {
	case IsInt(s):
		v, _ := strconv.Atoi(s)
		return Exactly(v), nil
	case len(s) > 2 && s[:2] == ">=" && IsInt(s[2:]):
		v, _ := strconv.Atoi(s[2:])
		return AtLeast(v), nil
	case len(s) > 2 && s[:2] == "<=" && IsInt(s[2:]):
		v, _ := strconv.Atoi(s[2:])
		return AtMost(v), nil
	}

	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return Bound{}, errors.InvalidArgumentf("invalid bound %q", s)
	}
	lower, _ := strconv.Atoi(m[1])
	upper, _ := strconv.Atoi(m[2])
	if lower > upper {
		return Bound{}, errors.InvalidArgumentf("invalid bound %q: lower exceeds upper", s)
	}
	return Between(lower, upper), nil
}

// MarshalJSON encodes the bound as its string form.
func (b Bound) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts the string form or a bare integer.
func (b *Bound) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*b = Exactly(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBound(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// First returns the first candidate whose bound matches v.
func First[T any](v int, candidates []T, bound func(T) Bound) (T, error) {
	for _, c := range candidates {
		if bound(c).Matches(v) {
			return c, nil
		}
	}
	var zero T
	return zero, errors.NoMatch(strconv.Itoa(v), boundStrings(candidates, bound))
}

// FirstOrClamp is First, except that a value below every bound yields the
// candidate with the lowest bound and a value above every bound yields the
// candidate with the highest one.
func FirstOrClamp[T any](v int, candidates []T, bound func(T) Bound) (T, error) {
	if c, err := First(v, candidates, bound); err == nil {
		return c, nil
	}
	if len(candidates) == 0 {
		var zero T
		return zero, errors.NoMatch(strconv.Itoa(v), nil)
	}

	lowest, highest := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		if bound(c).Lower < bound(lowest).Lower {
			lowest = c
		}
		if bound(c).Upper > bound(highest).Upper {
			highest = c
		}
	}
	if v <= bound(lowest).Lower {
		return lowest, nil
	}
	if v >= bound(highest).Upper {
		return highest, nil
	}

	var zero T
	return zero, errors.NoMatch(strconv.Itoa(v), boundStrings(candidates, bound))
}

func boundStrings[T any](candidates []T, bound func(T) Bound) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, bound(c).String())
	}
	return out
}
