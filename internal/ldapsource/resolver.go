package ldapsource

import (
	"context"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
)

// entityKind names the remote entity class a lookup resolves against
type entityKind string

const (
	kindOrganization entityKind = "organization"
	kindLocation     entityKind = "location"
	kindUser         entityKind = "user"
)

// lookupFunc resolves a single name to its remote identifier. The second
// return value reports whether the name matched anything.
type lookupFunc func(ctx context.Context, name string) (int, bool, error)

// resolveIDs translates names into remote identifiers, in input order, via
// exact-match lookups. The first unresolvable name or remote error aborts
// resolution; no partial list is ever returned.
func resolveIDs(ctx context.Context, kind entityKind, names []string, lookup lookupFunc) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, found, err := lookup(ctx, name)
		if err != nil {
			return nil, apperrors.RemoteOperation("search "+string(kind), err).WithMetadata("name", name)
		}
		if !found {
			return nil, apperrors.EntityNotFound(string(kind), name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
