package gedcom

const (
	headerTag  = "HEAD"
	trailerTag = "TRLR"
)

// EnsureHeaderTrailer makes the first root a HEAD record and the last root
// a TRLR record, inserting canonical ones where missing. It is idempotent
// and leaves an existing header untouched.
func (f *File) EnsureHeaderTrailer() {
	if len(f.roots) == 0 || f.roots[0].tag != headerTag {
		head := canonicalHeader()
		f.adopt(head, 0)
		f.roots = append([]*Record{head}, f.roots...)
	}
	if f.roots[len(f.roots)-1].tag != trailerTag {
		trlr := newRecord(KindRecord, trailerTag, "")
		f.adopt(trlr, 0)
		f.roots = append(f.roots, trlr)
	}
}

// HasHeader reports whether the first root is a HEAD record.
func (f *File) HasHeader() bool {
	return len(f.roots) > 0 && f.roots[0].tag == headerTag
}

// HasTrailer reports whether the last root is a TRLR record.
func (f *File) HasTrailer() bool {
	return len(f.roots) > 0 && f.roots[len(f.roots)-1].tag == trailerTag
}

//	0 HEAD
//	1 SOUR
//	2 NAME juniper-gedcom
//	2 VERS 0.1.0
//	1 CHAR UNICODE
//	1 GEDC
//	2 VERS 5.5
//	2 FORM LINEAGE-LINKED
func canonicalHeader() *Record {
	head := newRecord(KindRecord, headerTag, "")
	sour := head.AddChildValue("SOUR", "")
	sour.AddChildValue("NAME", ProductName)
	sour.AddChildValue("VERS", Version)
	head.AddChildValue("CHAR", Charset)
	gedc := head.AddChildValue("GEDC", "")
	gedc.AddChildValue("VERS", FormatVersion)
	gedc.AddChildValue("FORM", FormatForm)
	return head
}
