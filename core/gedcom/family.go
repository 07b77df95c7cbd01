package gedcom

import (
	"github.com/FocuswithJustin/gedcom/core/errors"
)

// Family is the view over a FAM record.
type Family struct {
	*Record
}

// NewFamily creates a detached FAM record.
func NewFamily() *Family {
	return &Family{newRecord(KindFamily, KindFamily.Tag(), "")}
}

// Husbands returns the HUSB children. The pointers are not dereferenced.
func (f *Family) Husbands() []*Spouse {
	return f.spouses("HUSB")
}

// Wives returns the WIFE children. The pointers are not dereferenced.
func (f *Family) Wives() []*Spouse {
	return f.spouses("WIFE")
}

// Partners returns every HUSB child followed by every WIFE child.
func (f *Family) Partners() []*Spouse {
	return append(f.Husbands(), f.Wives()...)
}

func (f *Family) spouses(tag string) []*Spouse {
	var out []*Spouse
	for _, rec := range f.List(tag) {
		out = append(out, &Spouse{rec})
	}
	return out
}

// Husband returns the first HUSB child.
func (f *Family) Husband() (*Spouse, error) {
	rec, err := f.First("HUSB")
	if err != nil {
		return nil, err
	}
	return &Spouse{rec}, nil
}

// Wife returns the first WIFE child.
func (f *Family) Wife() (*Spouse, error) {
	rec, err := f.First("WIFE")
	if err != nil {
		return nil, err
	}
	return &Spouse{rec}, nil
}

// Marriage returns the first MARR event.
func (f *Family) Marriage() (*Event, error) {
	return f.event("MARR")
}

// Children returns the CHIL children.
func (f *Family) Children() []*Child {
	var out []*Child
	for _, rec := range f.List("CHIL") {
		out = append(out, &Child{rec})
	}
	return out
}

func (f *Family) hasChild(pointer string) bool {
	if pointer == "" {
		return false
	}
	for _, c := range f.List("CHIL") {
		if c.Value == pointer {
			return true
		}
	}
	return false
}

// Spouse is the view over a HUSB or WIFE record inside a family.
type Spouse struct {
	*Record
}

// IsHusband reports whether the record is a HUSB.
func (s *Spouse) IsHusband() bool {
	return s.kind == KindHusband
}

// Individual dereferences the spouse pointer.
func (s *Spouse) Individual() (*Individual, error) {
	return s.individual(s.Value)
}

// Child is the view over a CHIL record inside a family.
type Child struct {
	*Record
}

// Individual dereferences the child pointer.
func (c *Child) Individual() (*Individual, error) {
	return c.individual(c.Value)
}

// FatherRelation returns the _FREL value (e.g. "Natural", "Adopted").
func (c *Child) FatherRelation() (string, error) {
	return c.relation("_FREL")
}

// MotherRelation returns the _MREL value (e.g. "Natural", "Adopted").
func (c *Child) MotherRelation() (string, error) {
	return c.relation("_MREL")
}

func (c *Child) relation(tag string) (string, error) {
	rec := c.first(tag)
	if rec == nil {
		return "", errors.NewMissingChild(c.tag, tag)
	}
	return rec.Value, nil
}
