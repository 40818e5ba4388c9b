package dom

// Notation declares an external, non-XML data format or a helper
// application's name, referenced from an unparsed Entity's NDATA clause or
// from a NOTATION-typed attribute (spec §3, §4). Always readonly.
type Notation struct {
	nodeBase
	name     string
	publicID string
	systemID string
}

func newNotation(doc *Document, name, publicID, systemID string) *Notation {
	n := &Notation{name: name, publicID: publicID, systemID: systemID}
	n.initBase(n, NotationNodeKind)
	n.ownerDocument = doc
	n.readonly = true
	return n
}

func (n *Notation) NodeName() string { return n.name }
func (n *Notation) PublicID() string  { return n.publicID }
func (n *Notation) SystemID() string  { return n.systemID }

func (n *Notation) shallowClone(doc *Document) Node {
	c := newNotation(doc, n.name, n.publicID, n.systemID)
	c.loc = n.loc
	return c
}
