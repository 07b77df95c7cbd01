package gedcom

import (
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// Individual is the view over an INDI record.
type Individual struct {
	*Record
}

// NewIndividual creates a detached INDI record.
func NewIndividual() *Individual {
	return &Individual{newRecord(KindIndividual, KindIndividual.Tag(), "")}
}

// Name returns the preferred name: the first NAME child without a TYPE
// child, or the first NAME when every NAME is typed.
func (i *Individual) Name() (Name, error) {
	names := i.List("NAME")
	if len(names) == 0 {
		return Name{}, errors.NewMissingChild(i.tag, "NAME")
	}
	preferred := names[0]
	for _, n := range names {
		if !n.Has("TYPE") {
			preferred = n
			break
		}
	}
	return nameOf(preferred)
}

// AKA returns every NAME typed "aka" (case-insensitive), in file order.
func (i *Individual) AKA() ([]Name, error) {
	var out []Name
	for _, n := range i.List("NAME") {
		if !isAKA(n) {
			continue
		}
		name, err := nameOf(n)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// Sex returns the value of the SEX child.
func (i *Individual) Sex() (string, error) {
	rec, err := i.First("SEX")
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

// Gender is an alias for Sex.
func (i *Individual) Gender() (string, error) {
	return i.Sex()
}

// IsMale reports whether the recorded sex is M. A missing SEX is not male.
func (i *Individual) IsMale() bool {
	return i.hasSex("M")
}

// IsFemale reports whether the recorded sex is F. A missing SEX is not
// female.
func (i *Individual) IsFemale() bool {
	return i.hasSex("F")
}

func (i *Individual) hasSex(sex string) bool {
	got, err := i.Sex()
	return err == nil && strings.EqualFold(got, sex)
}

// SetSex records the sex as "M" or "F" (case-insensitive input), updating
// an existing SEX child in place or appending a new one.
func (i *Individual) SetSex(sex string) error {
	norm := strings.ToUpper(sex)
	if norm != "M" && norm != "F" {
		return &errors.InvalidSexError{Value: sex}
	}
	if rec := i.first("SEX"); rec != nil {
		rec.Value = norm
		return nil
	}
	i.AddChildValue("SEX", norm)
	return nil
}

// Title returns the TITL value, or "" when there is none.
func (i *Individual) Title() string {
	return i.childValue("TITL")
}

// Birth returns the first BIRT event.
func (i *Individual) Birth() (*Event, error) {
	return i.event("BIRT")
}

// Death returns the first DEAT event.
func (i *Individual) Death() (*Event, error) {
	return i.event("DEAT")
}

// Parents resolves the family named by the first FAMC child and returns its
// partners as individuals, husbands first. An individual without FAMC has
// no parents. The family's CHIL list is not required to mention i.
func (i *Individual) Parents() ([]*Individual, error) {
	famc := i.first("FAMC")
	if famc == nil {
		return nil, nil
	}
	fam, err := i.family(famc.Value)
	if err != nil {
		return nil, err
	}
	if !fam.hasChild(i.id) {
		i.logger().Debug("individual not listed as CHIL of its FAMC family",
			"individual", i.id, "family", fam.id)
	}

	partners := fam.Partners()
	parents := make([]*Individual, 0, len(partners))
	for _, p := range partners {
		ind, err := p.Individual()
		if err != nil {
			return nil, err
		}
		parents = append(parents, ind)
	}
	return parents, nil
}

// Father returns the parent recorded as male, or nil if there is none.
// More than one male parent is an AmbiguousParentError, and a parent with
// no SEX record is a MissingChildError.
func (i *Individual) Father() (*Individual, error) {
	return i.parentWithSex("M")
}

// Mother returns the parent recorded as female, or nil if there is none.
// More than one female parent is an AmbiguousParentError, and a parent with
// no SEX record is a MissingChildError.
func (i *Individual) Mother() (*Individual, error) {
	return i.parentWithSex("F")
}

func (i *Individual) parentWithSex(sex string) (*Individual, error) {
	parents, err := i.Parents()
	if err != nil {
		return nil, err
	}
	var matches []*Individual
	for _, p := range parents {
		got, err := p.Sex()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(got, sex) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	}
	return nil, &errors.AmbiguousParentError{Individual: i.id, Sex: sex, Count: len(matches)}
}

// Families returns the families named by FAMS children, in file order.
func (i *Individual) Families() ([]*Family, error) {
	var out []*Family
	for _, fams := range i.List("FAMS") {
		fam, err := i.family(fams.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, fam)
	}
	return out, nil
}

// family resolves pointer to a FAM record.
func (r *Record) family(pointer string) (*Family, error) {
	rec, err := r.resolve(pointer)
	if err != nil {
		return nil, err
	}
	fam, ok := rec.AsFamily()
	if !ok {
		return nil, &errors.TagMismatchError{Tag: rec.tag, Want: KindFamily.Tag()}
	}
	return fam, nil
}

// individual resolves pointer to an INDI record.
func (r *Record) individual(pointer string) (*Individual, error) {
	rec, err := r.resolve(pointer)
	if err != nil {
		return nil, err
	}
	ind, ok := rec.AsIndividual()
	if !ok {
		return nil, &errors.TagMismatchError{Tag: rec.tag, Want: KindIndividual.Tag()}
	}
	return ind, nil
}

// event returns the first child with tag as an Event.
func (r *Record) event(tag string) (*Event, error) {
	rec, err := r.First(tag)
	if err != nil {
		return nil, err
	}
	return &Event{rec}, nil
}
