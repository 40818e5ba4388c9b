package dom

import "strings"

// textContent implements the per-kind dispatch spec §4.1 describes for the
// textContent attribute: CharacterData kinds return their data verbatim;
// Element/Attr/DocumentFragment/EntityReference concatenate the data of
// every Text/CDATASection descendant, depth-first, skipping Comment and
// ProcessingInstruction subtrees entirely; every other kind has no text
// content.
func textContent(n Node) string {
	switch n.Kind() {
	case TextNodeKind, CDATASectionNodeKind, CommentNodeKind, ProcessingInstructionNodeKind:
		return n.(interface{ Data() string }).Data()
	case ElementNodeKind, AttributeNodeKind, DocumentFragmentNodeKind, EntityReferenceNodeKind:
		var sb strings.Builder
		collectText(n, &sb)
		return sb.String()
	default:
		return ""
	}
}

func collectText(n Node, sb *strings.Builder) {
	for _, c := range n.ChildNodes() {
		switch c.Kind() {
		case TextNodeKind, CDATASectionNodeKind:
			sb.WriteString(c.(interface{ Data() string }).Data())
		case CommentNodeKind, ProcessingInstructionNodeKind:
			// excluded from textContent
		default:
			collectText(c, sb)
		}
	}
}

// setTextContent implements the symmetric setter: for kinds with a data
// string, set it directly; for container kinds, replace all children with
// at most one new Text node; every other kind ignores the write (its
// textContent is effectively read-only null).
func setTextContent(n Node, s string) error {
	switch n.Kind() {
	case TextNodeKind, CDATASectionNodeKind, CommentNodeKind, ProcessingInstructionNodeKind:
		return n.(interface{ SetData(string) error }).SetData(s)
	case ElementNodeKind, AttributeNodeKind, DocumentFragmentNodeKind, EntityReferenceNodeKind:
		if n.IsReadonly() {
			return newDOMException(NoModificationAllowedErr, "node is readonly")
		}
		b := n.base()
		for _, c := range n.ChildNodes() {
			if err := n.RemoveChild(c); err != nil {
				return err
			}
		}
		if s == "" {
			return nil
		}
		doc := documentOf(n)
		if doc == nil {
			return nil
		}
		t := doc.CreateTextNode(s)
		_ = b
		return n.AppendChild(t)
	default:
		return nil
	}
}
