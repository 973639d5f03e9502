package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrNotFound is returned by Get and Delete when no record matches the
// supplied reference or reference fragment.
var ErrNotFound = errors.New("booking not found")

// RefPrefix is prepended to every generated booking reference.
const RefPrefix = "SA-"

// Store is the persistence interface for booking records. Save is an
// upsert keyed by Record.Reference. Get and Delete accept a full
// reference or a fragment of one; see Resolve for the lookup tiers.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, refOrFragment string) (Record, error)
	Delete(ctx context.Context, refOrFragment string) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// NewReference mints a booking reference of the form SA- followed by
// six random digits. The keyspace is small so collisions are possible;
// Save overwrites on conflict, which at this scale is an accepted
// trade for short, dictatable references.
func NewReference() string {
	return fmt.Sprintf("%s%06d", RefPrefix, rand.Intn(1000000))
}

// digitsOnly strips everything but decimal digits from s.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// resolve finds the stored reference that matches refOrFragment, in
// three tiers: exact match, prefix plus the fragment's digits, then a
// scan comparing digit sequences. It guards the in-memory and file
// backends; the postgres backend expresses the same tiers in SQL.
func resolve(refOrFragment string, refs map[string]struct{}) (string, bool) {
	if _, ok := refs[refOrFragment]; ok {
		return refOrFragment, true
	}
	digits := digitsOnly(refOrFragment)
	if digits == "" {
		return "", false
	}
	if candidate := RefPrefix + digits; candidate != refOrFragment {
		if _, ok := refs[candidate]; ok {
			return candidate, true
		}
	}
	for ref := range refs {
		if digitsOnly(ref) == digits {
			return ref, true
		}
	}
	return "", false
}
