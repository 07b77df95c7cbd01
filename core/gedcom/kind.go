package gedcom

import (
	"maps"
	"slices"
)

// Kind identifies the record variant selected from a tag.
type Kind int

const (
	// KindRecord is the generic variant used for unregistered tags.
	KindRecord Kind = iota
	// KindIndividual is an INDI record.
	KindIndividual
	// KindFamily is a FAM record.
	KindFamily
	// KindHusband is a HUSB pointer inside a family.
	KindHusband
	// KindWife is a WIFE pointer inside a family.
	KindWife
	// KindChild is a CHIL pointer inside a family.
	KindChild
	// KindBirth is a BIRT event.
	KindBirth
	// KindDeath is a DEAT event.
	KindDeath
	// KindMarriage is a MARR event.
	KindMarriage
	// KindNote is a NOTE record.
	KindNote
)

var kindNames = [...]string{
	KindRecord:     "Record",
	KindIndividual: "Individual",
	KindFamily:     "Family",
	KindHusband:    "Husband",
	KindWife:       "Wife",
	KindChild:      "Child",
	KindBirth:      "Birth",
	KindDeath:      "Death",
	KindMarriage:   "Marriage",
	KindNote:       "Note",
}

var kindTags = [...]string{
	KindRecord:     "",
	KindIndividual: "INDI",
	KindFamily:     "FAM",
	KindHusband:    "HUSB",
	KindWife:       "WIFE",
	KindChild:      "CHIL",
	KindBirth:      "BIRT",
	KindDeath:      "DEAT",
	KindMarriage:   "MARR",
	KindNote:       "NOTE",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Tag returns the tag the kind is bound to, or "" for KindRecord.
func (k Kind) Tag() string {
	if k < 0 || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

// IsEvent reports whether the kind is one of the event variants.
func (k Kind) IsEvent() bool {
	return k == KindBirth || k == KindDeath || k == KindMarriage
}

// pointerPrefix is the allocation prefix for root records of this kind.
func (k Kind) pointerPrefix() string {
	switch k {
	case KindIndividual:
		return "I"
	case KindFamily:
		return "F"
	}
	return ""
}

// TagRegistry maps tags to record kinds. It is built once and never
// modified, so one registry can be shared by every File.
type TagRegistry struct {
	kinds map[string]Kind
}

func newTagRegistry(kinds ...Kind) *TagRegistry {
	r := &TagRegistry{kinds: make(map[string]Kind, len(kinds))}
	for _, k := range kinds {
		r.kinds[k.Tag()] = k
	}
	return r
}

var builtinTags = newTagRegistry(
	KindIndividual,
	KindFamily,
	KindHusband,
	KindWife,
	KindChild,
	KindBirth,
	KindDeath,
	KindMarriage,
	KindNote,
)

// BuiltinTags returns the registry of built-in tag bindings.
func BuiltinTags() *TagRegistry {
	return builtinTags
}

// KindOf returns the kind bound to tag, or KindRecord if none is.
func (r *TagRegistry) KindOf(tag string) Kind {
	if k, ok := r.kinds[tag]; ok {
		return k
	}
	return KindRecord
}

// Tags returns the registered tags in sorted order.
func (r *TagRegistry) Tags() []string {
	return slices.Sorted(maps.Keys(r.kinds))
}
