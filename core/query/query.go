// Package query runs XPath expressions over a GEDCOM tree.
//
// The tree is projected into an XML document: one <gedcom> root element
// with one element per record, named after the record's tag and nested the
// same way. Each element carries the record's pointer in an "id"
// attribute, its value in a "value" attribute and its level in a "level"
// attribute. For example,
//
//	//INDI[SEX/@value='F']/NAME/@value
//
// selects the name values of every female individual, and
//
//	//FAM[CHIL/@value='@I3@']
//
// selects the families that list @I3@ as a child.
//
// The projection is a snapshot: records added after New are not visible.
package query

import (
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/gedcom/core/gedcom"
)

// RootElement is the name of the document element wrapping all records.
const RootElement = "gedcom"

// Document is the XML projection of a GEDCOM file.
type Document struct {
	root    *xmlquery.Node
	records map[*xmlquery.Node]*gedcom.Record
}

// New projects f into a queryable document.
func New(f *gedcom.File) *Document {
	d := &Document{
		root:    &xmlquery.Node{Type: xmlquery.DocumentNode},
		records: make(map[*xmlquery.Node]*gedcom.Record),
	}
	top := &xmlquery.Node{Type: xmlquery.ElementNode, Data: RootElement}
	xmlquery.AddChild(d.root, top)
	for _, rec := range f.Roots() {
		d.project(top, rec, 0)
	}
	return d
}

func (d *Document) project(parent *xmlquery.Node, rec *gedcom.Record, level int) {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: ElementName(rec.Tag())}
	if rec.ID() != "" {
		xmlquery.AddAttr(n, "id", rec.ID())
	}
	if rec.Value != "" {
		xmlquery.AddAttr(n, "value", rec.Value)
	}
	xmlquery.AddAttr(n, "level", strconv.Itoa(level))
	xmlquery.AddChild(parent, n)
	d.records[n] = rec

	for _, c := range rec.Subrecords() {
		d.project(n, c, level+1)
	}
}

// ElementName returns the element name used for tag. Tags that start with
// a digit are not valid XML names and get a leading underscore.
func ElementName(tag string) string {
	if tag != "" && tag[0] >= '0' && tag[0] <= '9' {
		return "_" + tag
	}
	return tag
}

// compile validates expr.
func compile(expr string) (*xpath.Expr, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return e, nil
}

// Find returns the records selected by expr, in document order. An
// expression that selects attributes returns the records owning them.
func (d *Document) Find(expr string) ([]*gedcom.Record, error) {
	e, err := compile(expr)
	if err != nil {
		return nil, err
	}

	var out []*gedcom.Record
	seen := make(map[*gedcom.Record]bool)
	for _, n := range xmlquery.QuerySelectorAll(d.root, e) {
		if n.Type == xmlquery.AttributeNode {
			n = n.Parent
		}
		rec, ok := d.records[n]
		if !ok || seen[rec] {
			continue
		}
		seen[rec] = true
		out = append(out, rec)
	}
	return out, nil
}

// Values returns the string value of every node selected by expr. An
// attribute yields its text and an element yields its record's value.
func (d *Document) Values(expr string) ([]string, error) {
	e, err := compile(expr)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, n := range xmlquery.QuerySelectorAll(d.root, e) {
		out = append(out, d.valueOf(n))
	}
	return out, nil
}

func (d *Document) valueOf(n *xmlquery.Node) string {
	if n.Type == xmlquery.AttributeNode {
		return n.InnerText()
	}
	if rec, ok := d.records[n]; ok {
		return rec.Value
	}
	return n.InnerText()
}

// Eval evaluates expr and returns a float64, string or bool for scalar
// expressions such as count(//INDI), or a []string of values for node-set
// expressions.
func (d *Document) Eval(expr string) (any, error) {
	e, err := compile(expr)
	if err != nil {
		return nil, err
	}

	switch v := e.Evaluate(xmlquery.CreateXPathNavigator(d.root)).(type) {
	case *xpath.NodeIterator:
		out := []string{}
		for v.MoveNext() {
			nav, ok := v.Current().(*xmlquery.NodeNavigator)
			if !ok {
				continue
			}
			if nav.NodeType() == xpath.AttributeNode {
				out = append(out, nav.Value())
				continue
			}
			out = append(out, d.valueOf(nav.Current()))
		}
		return out, nil
	default:
		return v, nil
	}
}

// XML renders the projection, mostly useful for debugging expressions.
func (d *Document) XML() string {
	return d.root.OutputXMLWithOptions(xmlquery.WithIndentation("  "))
}
