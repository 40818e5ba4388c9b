package dom

// Comment holds XML comment text (spec §3). Comments are excluded from
// textContent and, when the "comments" DOMConfiguration parameter is off,
// dropped entirely by normalizeDocument.
type Comment struct {
	characterData
}

func newComment(doc *Document, data string) *Comment {
	c := &Comment{}
	c.initBase(c, CommentNodeKind)
	c.ownerDocument = doc
	c.data = data
	return c
}

func (c *Comment) NodeName() string { return "#comment" }

func (c *Comment) shallowClone(doc *Document) Node {
	n := newComment(doc, c.data)
	n.loc = c.loc
	return n
}
