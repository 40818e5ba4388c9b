package dom

// mutate.go implements the single internal operation described in spec
// §4.1 that backs AppendChild/InsertBefore/ReplaceChild/RemoveChild on every
// node kind that has a child sequence (Document, DocumentFragment, Element,
// Attr, EntityReference).

type mutateMode int

const (
	mutateAppend mutateMode = iota
	mutateInsertBefore
	mutateReplace
	mutateRemove
)

func mutate(parent, newChild, refChild Node, mode mutateMode) error {
	pb := parent.base()
	if pb.readonly {
		return newDOMException(NoModificationAllowedErr, "parent is readonly")
	}

	if mode == mutateRemove {
		if refChild == nil || indexOfChild(pb, refChild) < 0 {
			return newDOMException(NotFoundErr, "node not found among children")
		}
		detachFromContainer(refChild)
		return nil
	}

	var insertIndex int
	switch mode {
	case mutateAppend:
		insertIndex = len(pb.children)
	case mutateInsertBefore:
		if refChild == nil {
			insertIndex = len(pb.children)
		} else {
			idx := indexOfChild(pb, refChild)
			if idx < 0 {
				return newDOMException(NotFoundErr, "reference node not found among children")
			}
			insertIndex = idx
		}
	case mutateReplace:
		idx := indexOfChild(pb, refChild)
		if idx < 0 {
			return newDOMException(NotFoundErr, "node to replace not found among children")
		}
		insertIndex = idx
	}

	if newChild == nil {
		return newDOMException(HierarchyRequestErr, "new child must not be nil")
	}

	var toInsert []Node
	if newChild.Kind() == DocumentFragmentNodeKind {
		toInsert = newChild.ChildNodes()
	} else {
		toInsert = []Node{newChild}
	}

	for _, c := range toInsert {
		if err := validateInsertion(parent, c); err != nil {
			return err
		}
	}

	var excluding Node
	if mode == mutateReplace {
		excluding = refChild
	}
	if pb.kind == DocumentNodeKind {
		if err := validateDocumentArity(pb, toInsert, excluding); err != nil {
			return err
		}
	}

	if mode == mutateReplace {
		detachFromContainer(refChild)
	}

	if newChild.Kind() == DocumentFragmentNodeKind {
		fb := newChild.base()
		for _, c := range toInsert {
			detachFromContainer(c)
		}
		fb.children = nil
		fb.bumpSequence()
	} else {
		detachFromContainer(newChild)
	}

	for i, c := range toInsert {
		if c.OwnerDocument() == nil {
			rehomeOwner(c, documentOf(parent))
		}
		cb := c.base()
		cb.container = parent
		idx := insertIndex + i
		pb.children = append(pb.children, nil)
		copy(pb.children[idx+1:], pb.children[idx:])
		pb.children[idx] = c
	}
	pb.bumpSequence()
	return nil
}

func validateInsertion(parent, child Node) error {
	childDoc := child.OwnerDocument()
	parentDoc := documentOf(parent)
	if childDoc != nil && childDoc != parentDoc {
		return newDOMException(WrongDocumentErr, "child belongs to a different document")
	}
	if wouldCycle(parent, child) {
		return newDOMException(HierarchyRequestErr, "node would become its own ancestor")
	}
	if !admitsChild(parent.Kind(), child.Kind()) {
		return newDOMException(HierarchyRequestErr, "child kind not admissible in parent")
	}
	return nil
}

func validateDocumentArity(pb *nodeBase, toInsert []Node, excluding Node) error {
	elemCount, dtCount := 0, 0
	for _, c := range pb.children {
		if c == excluding {
			continue
		}
		switch c.Kind() {
		case ElementNodeKind:
			elemCount++
		case DocumentTypeNodeKind:
			dtCount++
		}
	}
	for _, c := range toInsert {
		switch c.Kind() {
		case ElementNodeKind:
			elemCount++
			if elemCount > 1 {
				return newDOMException(HierarchyRequestErr, "document already has a document element")
			}
		case DocumentTypeNodeKind:
			dtCount++
			if dtCount > 1 {
				return newDOMException(HierarchyRequestErr, "document already has a doctype")
			}
		}
	}
	return nil
}

// admitsChild encodes the fixed per-parent-kind admissible child kinds
// (spec §3 "Sequences and maps").
func admitsChild(parentKind, childKind NodeKind) bool {
	switch parentKind {
	case DocumentNodeKind:
		switch childKind {
		case ElementNodeKind, DocumentTypeNodeKind, CommentNodeKind, ProcessingInstructionNodeKind:
			return true
		}
		return false
	case DocumentFragmentNodeKind, ElementNodeKind, EntityReferenceNodeKind:
		switch childKind {
		case ElementNodeKind, TextNodeKind, CDATASectionNodeKind, CommentNodeKind,
			ProcessingInstructionNodeKind, EntityReferenceNodeKind:
			return true
		}
		return false
	case AttributeNodeKind:
		// invariant 7: Attr children may only be Text or EntityReference.
		return childKind == TextNodeKind || childKind == EntityReferenceNodeKind
	default:
		return false
	}
}

func wouldCycle(parent, newChild Node) bool {
	cur := parent
	for cur != nil {
		if cur == newChild {
			return true
		}
		cur = cur.base().container
	}
	return false
}

func indexOfChild(pb *nodeBase, n Node) int {
	for i, c := range pb.children {
		if c == n {
			return i
		}
	}
	return -1
}

func removeFromChildSlice(parent, n Node) {
	pb := parent.base()
	if i := indexOfChild(pb, n); i >= 0 {
		pb.children = append(pb.children[:i], pb.children[i+1:]...)
	}
}

// documentOf returns the owner document for a node that may itself be the
// Document (the mutation operation's "parent" argument is often a
// Document).
func documentOf(n Node) *Document {
	if d, ok := n.(*Document); ok {
		return d
	}
	return n.OwnerDocument()
}

// detachFromContainer removes n from whatever structure currently holds
// it -- a child-sequence, an Element's attribute map, or a DocumentType's
// named maps -- without validating anything. Spec §3: "inserting a node
// that already has a container first detaches it."
func detachFromContainer(n Node) {
	b := n.base()
	old := b.container
	if old == nil {
		return
	}
	switch ot := old.(type) {
	case *Element:
		if n.Kind() == AttributeNodeKind {
			a := n.(*Attr)
			ot.attributes.removeNamedItemNS(a.NamespaceURI(), a.LocalName())
			ot.maintainDefaultAttribute(a.NamespaceURI(), a.LocalName(), a.NodeName())
		} else {
			removeFromChildSlice(old, n)
		}
	case *DocumentType:
		switch n.Kind() {
		case EntityNodeKind:
			ot.entities.removeNamedItem(nameOf(n))
		case NotationNodeKind:
			ot.notations.removeNamedItem(nameOf(n))
		case ElementDeclarationNodeKind:
			ot.elements.removeNamedItem(nameOf(n))
		case AttlistDeclarationNodeKind:
			ot.attlists.removeNamedItem(nameOf(n))
		}
	case *AttlistDeclaration:
		ot.attributes.removeNamedItem(nameOf(n))
	default:
		removeFromChildSlice(old, n)
	}
	b.container = nil
	old.base().bumpSequence()
}

// rehomeOwner recursively reassigns ownerDocument across a subtree (and,
// for Element, its attribute map), without touching container/readonly --
// the shared primitive behind both implicit adoption-on-insert (spec §4.1)
// and the explicit adopt pass (adopt.go).
func rehomeOwner(n Node, doc *Document) {
	b := n.base()
	b.ownerDocument = doc
	if el, ok := n.(*Element); ok {
		for _, a := range el.attributes.items() {
			rehomeOwner(a, doc)
		}
	}
	if dt, ok := n.(*DocumentType); ok {
		for _, e := range dt.entities.items() {
			rehomeOwner(e, doc)
		}
		for _, nt := range dt.notations.items() {
			rehomeOwner(nt, doc)
		}
		for _, e := range dt.elements.items() {
			rehomeOwner(e, doc)
		}
		for _, a := range dt.attlists.items() {
			rehomeOwner(a, doc)
		}
	}
	if al, ok := n.(*AttlistDeclaration); ok {
		for _, a := range al.attributes.items() {
			rehomeOwner(a, doc)
		}
	}
	for _, c := range b.children {
		rehomeOwner(c, doc)
	}
}
