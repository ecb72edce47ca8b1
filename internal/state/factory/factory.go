// Package factory opens a state.Store from a source URI of the form
// <scheme>:<location>.
package factory

import (
	"context"
	"sort"
	"strings"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/bolt"
	"github.com/mhtoin/initbot/internal/state/jsonfile"
	"github.com/mhtoin/initbot/internal/state/redis"
	"github.com/mhtoin/initbot/internal/state/sqlite"
)

// Opener opens a store at a scheme specific location.
type Opener func(ctx context.Context, location string) (state.Store, error)

var openers = map[string]Opener{
	"json": func(_ context.Context, dir string) (state.Store, error) {
		return jsonfile.Open(dir)
	},
	"sqlite": func(ctx context.Context, path string) (state.Store, error) {
		return sqlite.Open(ctx, path)
	},
	"redis": func(ctx context.Context, addr string) (state.Store, error) {
		return redis.Open(ctx, addr)
	},
	"bolt": func(_ context.Context, path string) (state.Store, error) {
		return bolt.Open(path)
	},
}

// Schemes lists the supported source schemes.
func Schemes() []string {
	out := make([]string, 0, len(openers))
	for scheme := range openers {
		out = append(out, scheme)
	}
	sort.Strings(out)
	return out
}

// Open parses source and opens the matching store.
func Open(ctx context.Context, source string) (state.Store, error) {
	scheme, location, ok := strings.Cut(source, ":")
	if !ok {
		return nil, errors.InvalidArgumentf("state source %q has no scheme; use one of %s", source, strings.Join(Schemes(), ", "))
	}
	open, found := openers[strings.ToLower(scheme)]
	if !found {
		return nil, errors.InvalidArgumentf("unknown state scheme %q; use one of %s", scheme, strings.Join(Schemes(), ", "))
	}
	store, err := open(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s state", scheme)
	}
	return store, nil
}
