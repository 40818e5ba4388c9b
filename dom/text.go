package dom

import "strings"

// Text is a run of character data (spec §3, §4.3.8).
type Text struct {
	characterData
}

func newText(doc *Document, data string) *Text {
	t := &Text{}
	t.initBase(t, TextNodeKind)
	t.ownerDocument = doc
	t.data = data
	return t
}

func (t *Text) NodeName() string { return "#text" }

func (t *Text) shallowClone(doc *Document) Node {
	c := newText(doc, t.data)
	c.loc = t.loc
	return c
}

// SplitText implements spec §4.3.8: breaks this node into two adjacent
// Text nodes at offset, the original node keeping the text before offset
// and a newly created, inserted sibling holding the rest.
func (t *Text) SplitText(offset int) (*Text, error) {
	if t.readonly {
		return nil, newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	r := []rune(t.data)
	if offset < 0 || offset > len(r) {
		return nil, newDOMException(IndexSizeErr, "offset out of range")
	}
	rest := string(r[offset:])
	t.data = string(r[:offset])
	t.bumpSequence()

	doc := t.OwnerDocument()
	newNode := doc.CreateTextNode(rest)
	if parent := t.ParentNode(); parent != nil {
		if err := parent.InsertBefore(newNode, t.NextSibling()); err != nil {
			return nil, err
		}
	}
	return newNode, nil
}

// WholeText concatenates this node's data with that of every Text sibling
// logically adjacent to it (no intervening non-Text node), in document
// order, without mutating the tree (spec §4.3.8).
func (t *Text) WholeText() string {
	return strings.Join(wholeTextData(t), "")
}

func wholeTextData(t *Text) []string {
	start := t
	for {
		prev, ok := start.PreviousSibling().(*Text)
		if !ok {
			break
		}
		start = prev
	}
	var out []string
	for cur := start; cur != nil; {
		out = append(out, cur.data)
		next, ok := cur.NextSibling().(*Text)
		if !ok {
			break
		}
		cur = next
	}
	return out
}

// ReplaceWholeText implements spec §4.3.8: replaces the entire logically
// adjacent Text run (this node and its Text siblings on both sides) with a
// single Text node holding content, or removes the run entirely when
// content is empty. Returns the replacement node, or nil if the run was
// removed.
func (t *Text) ReplaceWholeText(content string) (*Text, error) {
	parent := t.ParentNode()
	if parent == nil {
		if content == "" {
			return nil, nil
		}
		t.data = content
		t.bumpSequence()
		return t, nil
	}

	start := t
	for {
		prev, ok := start.PreviousSibling().(*Text)
		if !ok {
			break
		}
		start = prev
	}
	var run []*Text
	for cur := start; cur != nil; {
		run = append(run, cur)
		next, ok := cur.NextSibling().(*Text)
		if !ok {
			break
		}
		cur = next
	}

	for _, tn := range run {
		if tn == t {
			continue
		}
		if err := parent.RemoveChild(tn); err != nil {
			return nil, err
		}
	}
	if content == "" {
		if err := parent.RemoveChild(t); err != nil {
			return nil, err
		}
		return nil, nil
	}
	t.data = content
	t.bumpSequence()
	return t, nil
}

// IsElementContentWhitespace reports whether this Text node is whitespace
// that the declaring DTD's element content model (if known) classifies as
// ignorable (spec §4.3.5's element-content-whitespace parameter).
func (t *Text) IsElementContentWhitespace() bool {
	if !isAllWhitespace(t.data) {
		return false
	}
	parent, ok := t.ParentNode().(*Element)
	if !ok {
		return false
	}
	doc := parent.OwnerDocument()
	if doc == nil {
		return false
	}
	dt := doc.Doctype()
	if dt == nil {
		return false
	}
	decl, ok := dt.elements.GetNamedItem(parent.NodeName()).(*ElementDeclaration)
	return ok && decl.Content != nil && !decl.Content.Mixed && !decl.Content.Any
}
