package dom

// ProcessingInstruction carries a fixed target and mutable data string
// (spec §3). Unlike Text/CDATASection/Comment it is not a characterData:
// its identity includes the target, which is immutable once created (it is
// the node's NodeName and determines what a consuming application treats
// the instruction as).
type ProcessingInstruction struct {
	nodeBase
	target string
	data   string
}

func newProcessingInstruction(doc *Document, target, data string) *ProcessingInstruction {
	p := &ProcessingInstruction{target: target, data: data}
	p.initBase(p, ProcessingInstructionNodeKind)
	p.ownerDocument = doc
	return p
}

func (p *ProcessingInstruction) NodeName() string { return p.target }
func (p *ProcessingInstruction) Target() string   { return p.target }
func (p *ProcessingInstruction) Data() string      { return p.data }

func (p *ProcessingInstruction) SetData(s string) error {
	if p.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	p.data = s
	p.bumpSequence()
	return nil
}

func (p *ProcessingInstruction) shallowClone(doc *Document) Node {
	c := newProcessingInstruction(doc, p.target, p.data)
	c.loc = p.loc
	return c
}
