// Package gedcom reads and writes GEDCOM genealogy files.
//
// A GEDCOM file is a flat sequence of lines, each carrying a level, an
// optional pointer, a tag and an optional value. The level encodes nesting:
// a line at level L belongs to the closest preceding line at level L-1.
// This package turns that line stream into a tree of records owned by a
// File, and turns the tree back into lines.
//
// # Records and Variants
//
// Every node in the tree is a *Record. Its Kind is chosen from its tag when
// the record is created and never changes:
//
//   - INDI: Individual (names, sex, parents, birth and death)
//   - FAM: Family (husbands, wives, children, marriage)
//   - HUSB, WIFE: Spouse (pointer to an individual)
//   - CHIL: Child (pointer to an individual)
//   - BIRT, DEAT, MARR: Event (date and place)
//   - NOTE: Note (CONT/CONC continuation)
//
// Any other tag yields a generic record. Typed views are obtained with
// Record.Variant or the AsIndividual, AsFamily, ... helpers, and callers can
// program against the capability interfaces HasName, HasParents,
// HasDateAndPlace and HasPartners.
//
// # Pointers
//
// A File keeps a pointer table from ids such as "@I1@" to records. Root
// individuals and families added without an id are given a fresh one by
// Allocate, which probes "@<prefix><n>@" with a counter shared by all
// prefixes.
//
// # Example
//
//	f, err := gedcom.ParseString(text)
//	if err != nil {
//	    return err
//	}
//	for _, ind := range f.Individuals() {
//	    name, err := ind.Name()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(ind.ID(), name.Given, name.Surname)
//	}
//
// A File is not safe for concurrent use.
package gedcom
