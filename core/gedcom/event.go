package gedcom

// Event is the view over a BIRT, DEAT or MARR record.
type Event struct {
	*Record
}

// Date returns the DATE value as written in the file.
func (e *Event) Date() (string, error) {
	rec, err := e.First("DATE")
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

// Place returns the PLAC value.
func (e *Event) Place() (string, error) {
	rec, err := e.First("PLAC")
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}
