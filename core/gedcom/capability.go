package gedcom

// HasName is implemented by variants that carry personal names.
type HasName interface {
	Node
	Name() (Name, error)
	AKA() ([]Name, error)
}

// HasParents is implemented by variants whose parents can be resolved.
type HasParents interface {
	Node
	Parents() ([]*Individual, error)
	Father() (*Individual, error)
	Mother() (*Individual, error)
}

// HasDateAndPlace is implemented by event variants.
type HasDateAndPlace interface {
	Node
	Date() (string, error)
	Place() (string, error)
}

// HasPartners is implemented by variants that group partners.
type HasPartners interface {
	Node
	Partners() []*Spouse
	Husbands() []*Spouse
	Wives() []*Spouse
}

// PointsToIndividual is implemented by pointer records that reference an
// individual.
type PointsToIndividual interface {
	Node
	Individual() (*Individual, error)
}

var (
	_ HasName            = (*Individual)(nil)
	_ HasParents         = (*Individual)(nil)
	_ HasDateAndPlace    = (*Event)(nil)
	_ HasPartners        = (*Family)(nil)
	_ PointsToIndividual = (*Spouse)(nil)
	_ PointsToIndividual = (*Child)(nil)
)
