package gedcom

import (
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// UIDTag is the vendor tag holding a record's stable unique identifier.
const UIDTag = "_UID"

// UID returns the record's _UID value, or "" when it has none.
func (r *Record) UID() string {
	return r.childValue(UIDTag)
}

// AssignUIDs gives every root individual and family without a _UID child a
// new one and returns how many were added. The identifier is a random UUID
// in upper case without dashes.
func (f *File) AssignUIDs() (int, error) {
	added := 0
	for _, r := range f.roots {
		if r.kind != KindIndividual && r.kind != KindFamily {
			continue
		}
		if r.Has(UIDTag) {
			continue
		}
		id, err := uuid.NewRandom()
		if err != nil {
			return added, errors.Wrapf(err, "uid for %s", r.id)
		}
		r.AddChildValue(UIDTag, formatUID(id))
		added++
	}
	if added > 0 {
		f.logger.Debug("assigned uids", "count", added)
	}
	return added, nil
}

func formatUID(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}
