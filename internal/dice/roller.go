package dice

import (
	"regexp"
	"strconv"
	"strings"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"
)

// Roller evaluates dice against a random source and logs every result.
type Roller struct {
	src    rpgdice.Roller
	logger *zap.Logger
}

// NewRoller returns a Roller drawing from src. A nil src uses the
// toolkit's crypto backed default and a nil logger discards output.
func NewRoller(src rpgdice.Roller, logger *zap.Logger) *Roller {
	if src == nil {
		src = rpgdice.DefaultRoller
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source exposes the underlying random source.
func (r *Roller) Source() rpgdice.Roller {
	return r.src
}

// Roll evaluates every repetition of d.
func (r *Roller) Roll(d DieRoll) ([]int, error) {
	results, err := d.Roll(r.src)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", d.String()),
		zap.Ints("results", results),
	)
	return results, nil
}

// RollOne evaluates a single outcome of d, ignoring its repetitions.
func (r *Roller) RollOne(d DieRoll) (int, error) {
	v, err := d.RollOne(r.src)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", d.String()),
		zap.Int("result", v),
	)
	return v, nil
}

// Pick returns a uniform index in [0, n).
func (r *Roller) Pick(n int) (int, error) {
	v, err := r.src.Roll(n)
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}

// FormatResults renders one outcome as the number and several as
// "sum (a, b, c)".
func FormatResults(results []int) string {
	if len(results) == 1 {
		return strconv.Itoa(results[0])
	}
	sum := 0
	parts := make([]string, len(results))
	for i, v := range results {
		sum += v
		parts[i] = strconv.Itoa(v)
	}
	return strconv.Itoa(sum) + " (" + strings.Join(parts, ", ") + ")"
}

var wordPattern = regexp.MustCompile(`^([^0-9A-Za-z]*)(.*?)([^0-9A-Za-z]*)$`)

// Render replaces every word that holds dice notation with its result and
// joins the words with single spaces. Punctuation around a notation is
// kept, so "(d20+5)," renders as "(17),".
func (r *Roller) Render(words []string) (string, bool, error) {
	out := make([]string, len(words))
	rolled := false
	for i, w := range words {
		m := wordPattern.FindStringSubmatch(w)
		if m == nil {
			out[i] = w
			continue
		}
		d, err := Parse(m[2])
		if err != nil {
			out[i] = w
			continue
		}
		results, err := r.Roll(d)
		if err != nil {
			return "", false, err
		}
		out[i] = m[1] + FormatResults(results) + m[3]
		rolled = true
	}
	return strings.Join(out, " "), rolled, nil
}
