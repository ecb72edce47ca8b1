package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mhtoin/initbot/internal/dice"
	"github.com/mhtoin/initbot/internal/errors"
)

func roll(_ context.Context, env *Env, req *Request) error {
	if len(req.Args) == 0 {
		return errors.InvalidArgument("What should I roll? Try: roll 2d6+1")
	}

	if len(req.Args) == 1 && dice.IsNotation(req.Args[0]) {
		d, err := dice.Parse(req.Args[0])
		if err != nil {
			return err
		}
		results, err := env.Roller.Roll(d)
		if err != nil {
			return err
		}
		return env.reply(req.ChannelID, fmt.Sprintf("%s rolled %s on %s", req.Display, formatRoll(results), d))
	}

	text, rolled, err := env.Roller.Render(req.Args)
	if err != nil {
		return err
	}
	if !rolled {
		return errors.InvalidNotationf("No dice notation in '%s'", strings.Join(req.Args, " "))
	}
	return env.reply(req.ChannelID, req.Display+": "+text)
}

// formatRoll renders one result as **n** and repetitions as
// **a, b, c (N total)**.
func formatRoll(results []int) string {
	if len(results) == 1 {
		return "**" + strconv.Itoa(results[0]) + "**"
	}
	sum := 0
	parts := make([]string, len(results))
	for i, v := range results {
		sum += v
		parts[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("**%s (%d total)**", strings.Join(parts, ", "), sum)
}
