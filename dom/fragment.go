package dom

// DocumentFragment is a lightweight, parentless container used to batch a
// run of sibling nodes for a single insertion (spec §3, §4.1): inserting
// one appends/replaces with its entire child sequence rather than the
// fragment node itself, which is left empty afterward.
type DocumentFragment struct {
	nodeBase
}

func newDocumentFragment(doc *Document) *DocumentFragment {
	f := &DocumentFragment{}
	f.initBase(f, DocumentFragmentNodeKind)
	f.ownerDocument = doc
	return f
}

func (f *DocumentFragment) NodeName() string { return "#document-fragment" }

func (f *DocumentFragment) shallowClone(doc *Document) Node {
	c := newDocumentFragment(doc)
	c.loc = f.loc
	return c
}
