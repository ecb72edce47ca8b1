package state

import (
	"context"

	"github.com/mhtoin/initbot/internal/errors"
)

// ImportResult counts what Import copied.
type ImportResult struct {
	Added   int
	Updated int
}

// Import copies the rule tables and every character from src to dst.
// Characters already present in dst are overwritten.
func Import(ctx context.Context, dst, src Store) (ImportResult, error) {
	var res ImportResult

	book, err := src.Rules(ctx)
	if err != nil {
		return res, errors.Wrap(err, "reading source rules")
	}
	if err := dst.ImportRules(ctx, book); err != nil {
		return res, errors.Wrap(err, "writing rules")
	}

	chars, err := src.Characters(ctx)
	if err != nil {
		return res, errors.Wrap(err, "reading source characters")
	}
	for _, c := range chars {
		err := dst.AddCharacter(ctx, c)
		switch {
		case err == nil:
			res.Added++
		case errors.IsAlreadyExists(err):
			if err := dst.UpdateCharacter(ctx, c); err != nil {
				return res, errors.Wrapf(err, "updating %s", c.Name)
			}
			res.Updated++
		default:
			return res, errors.Wrapf(err, "adding %s", c.Name)
		}
	}
	return res, nil
}
