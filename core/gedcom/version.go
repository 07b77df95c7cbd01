package gedcom

// Values written into the synthesized header.
const (
	// ProductName identifies this library in HEAD.SOUR.NAME.
	ProductName = "juniper-gedcom"
	// Version is written to HEAD.SOUR.VERS.
	Version = "0.1.0"
	// FormatVersion is the GEDCOM version declared in HEAD.GEDC.VERS.
	FormatVersion = "5.5"
	// FormatForm is the GEDCOM form declared in HEAD.GEDC.FORM.
	FormatForm = "LINEAGE-LINKED"
	// Charset is declared in HEAD.CHAR.
	Charset = "UNICODE"
)
