package dom

// CDATASection marks a run of character data that a serializer must emit
// inside a CDATA marked section rather than escaping (spec §3, §4.5). It
// shares Text's character-data operations but is a distinct kind, so it
// survives round-tripping unless explicitly demoted (the "cdata-sections"
// DOMConfiguration parameter, normalize.go).
type CDATASection struct {
	characterData
}

func newCDATASection(doc *Document, data string) *CDATASection {
	c := &CDATASection{}
	c.initBase(c, CDATASectionNodeKind)
	c.ownerDocument = doc
	c.data = data
	return c
}

func (c *CDATASection) NodeName() string { return "#cdata-section" }

func (c *CDATASection) shallowClone(doc *Document) Node {
	n := newCDATASection(doc, c.data)
	n.loc = c.loc
	return n
}

// SplitText mirrors Text.SplitText for CDATA sections (spec §4.3.8: "As
// with Text nodes, split the content").
func (c *CDATASection) SplitText(offset int) (*CDATASection, error) {
	if c.readonly {
		return nil, newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	r := []rune(c.data)
	if offset < 0 || offset > len(r) {
		return nil, newDOMException(IndexSizeErr, "offset out of range")
	}
	rest := string(r[offset:])
	c.data = string(r[:offset])
	c.bumpSequence()

	doc := c.OwnerDocument()
	newNode, err := doc.CreateCDATASection(rest)
	if err != nil {
		return nil, err
	}
	if parent := c.ParentNode(); parent != nil {
		if err := parent.InsertBefore(newNode, c.NextSibling()); err != nil {
			return nil, err
		}
	}
	return newNode, nil
}
