package serializer

import (
	"strings"

	"github.com/arturoeanton/xmldom/dom"
)

// emit.go holds the per-kind emission rules (spec §4.5) and the serializer
// filter contract (§4.5.1) that gates every one of them except xmlns
// declaration attributes, which the contract explicitly excludes.

// ctx carries per-write state through the recursive emit calls: the shared
// configuration, the output accumulator, and the handful of toggles that
// live on Options rather than dom.DOMConfiguration.
type ctx struct {
	buf        *buffer
	cfg        *dom.DOMConfiguration
	handler    dom.ErrorHandler
	filter     Filter
	canonical  bool
	pretty     bool
	discard    bool
	assumeElem bool
	ascii      bool
}

// report runs the configured handler for de, falling back to the severity
// default when none is installed (warning continues, error/fatal abort).
// Duplicated from dom/error.go's unexported reportError, which this package
// cannot call directly; kept in lockstep with it deliberately.
func (c *ctx) report(de *dom.DOMError) *dom.Halt {
	cont := de.Severity == dom.SeverityWarning
	if c.handler != nil {
		decided := c.handler(de)
		if de.Severity != dom.SeverityFatal {
			cont = decided
		}
	}
	if !cont {
		return &dom.Halt{Err: de}
	}
	return nil
}

func interruptHalt(n dom.Node) *dom.Halt {
	return &dom.Halt{Err: &dom.DOMError{
		Severity: dom.SeverityFatal,
		Type:     "filter-interrupt",
		Message:  "serializer filter interrupted the write",
		Related:  n,
	}}
}

// consultFilter applies the filter's whatToShow gate and returns its
// decision, or FilterAccept when there is no filter or it isn't watching
// this node's kind.
func (c *ctx) consultFilter(n dom.Node) FilterAction {
	if c.filter == nil || !c.filter.WhatToShow().Accepts(n.Kind()) {
		return FilterAccept
	}
	return c.filter.AcceptNode(n)
}

// outScope is the serializer's read-only counterpart to fixup.go's nsScope:
// it tracks which xmlns bindings are already in effect from an ancestor, so
// canonical-form emission can suppress an attribute that would only
// re-declare an identical binding.
type outScope struct {
	parent  *outScope
	binding map[string]string
}

func (s *outScope) lookup(prefix string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if uri, ok := cur.binding[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

func isXMLNSAttr(a *dom.Attr) bool { return a.NamespaceURI() == dom.XMLNSNamespace }

// xmlnsPrefixKey returns the scope key an xmlns-declaration attribute binds:
// "" for a bare "xmlns" (the default namespace), otherwise its local name
// (the prefix it declares).
func xmlnsPrefixKey(a *dom.Attr) string {
	if a.Prefix() == "" {
		return ""
	}
	return a.LocalName()
}

func (c *ctx) emit(n dom.Node, depth int, scope *outScope) *dom.Halt {
	switch v := n.(type) {
	case *dom.Element:
		return c.emitElement(v, scope, depth)
	case *dom.Text:
		return c.emitText(v)
	case *dom.CDATASection:
		return c.emitCDATA(v)
	case *dom.Comment:
		return c.emitComment(v, depth)
	case *dom.ProcessingInstruction:
		return c.emitPI(v)
	case *dom.EntityReference:
		return c.emitEntityRef(v, scope, depth)
	case *dom.DocumentType:
		return c.emitDoctype(v)
	default:
		// Document, Attr, DocumentFragment and the DTD declaration kinds
		// are never tree-sequence members reached through ChildNodes, so
		// this default case is unreachable in practice.
		return nil
	}
}

func (c *ctx) emitChildren(n dom.Node, scope *outScope, depth int) *dom.Halt {
	for _, child := range n.ChildNodes() {
		if halt := c.emit(child, depth, scope); halt != nil {
			return halt
		}
	}
	return nil
}

func (c *ctx) emitElement(el *dom.Element, scope *outScope, depth int) *dom.Halt {
	switch c.consultFilter(el) {
	case FilterInterrupt:
		return interruptHalt(el)
	case FilterReject:
		return nil
	case FilterSkip:
		return c.emitChildren(el, scope, depth)
	}

	local := &outScope{parent: scope, binding: map[string]string{}}
	c.buf.writeRaw("<" + el.NodeName())

	attrs := el.Attributes()
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i).(*dom.Attr)
		if isXMLNSAttr(a) {
			if !c.cfg.NamespaceDeclarations {
				continue
			}
			key := xmlnsPrefixKey(a)
			if c.canonical {
				if bound, ok := scope.lookup(key); ok && bound == a.Value() {
					continue
				}
			}
			c.emitAttr(a)
			local.binding[key] = a.Value()
			continue
		}
		if c.discard && !a.Specified() {
			continue
		}
		switch c.consultFilter(a) {
		case FilterReject, FilterSkip:
			continue
		case FilterInterrupt:
			return interruptHalt(a)
		}
		c.emitAttr(a)
	}

	children := el.ChildNodes()
	if len(children) == 0 && !c.canonical {
		c.buf.writeRaw("/>")
		return nil
	}
	c.buf.writeRaw(">")

	indent := c.pretty && isElementOnlyChildren(children)
	for _, child := range children {
		if indent {
			c.buf.setSeparator("\n" + strings.Repeat("  ", depth+1))
		}
		if halt := c.emit(child, depth+1, local); halt != nil {
			return halt
		}
	}
	if indent && len(children) > 0 {
		c.buf.setSeparator("\n" + strings.Repeat("  ", depth))
	}
	c.buf.writeRaw("</" + el.NodeName() + ">")
	return nil
}

func (c *ctx) emitAttr(a *dom.Attr) {
	value := escapeAttrValue(a.Value(), c.canonical)
	if c.ascii {
		value = asciiEscape(value)
	}
	c.buf.writeRaw(" " + a.NodeName() + "=\"" + value + "\"")
}

// isElementOnlyChildren reports whether children contains no Text or
// CDATASection node -- the heuristic pretty-printing uses to decide it is
// safe to inject indentation whitespace without altering mixed content.
func isElementOnlyChildren(children []dom.Node) bool {
	for _, c := range children {
		if c.Kind() == dom.TextNodeKind || c.Kind() == dom.CDATASectionNodeKind {
			return false
		}
	}
	return true
}

func (c *ctx) emitText(t *dom.Text) *dom.Halt {
	switch c.consultFilter(t) {
	case FilterInterrupt:
		return interruptHalt(t)
	case FilterReject, FilterSkip:
		return nil
	}
	if !c.cfg.ElementContentWhitespace && isElementContentWhitespace(t, c.assumeElem) {
		return nil
	}
	out := escapeText(t.Data(), c.canonical)
	if c.ascii {
		out = asciiEscape(out)
	}
	c.buf.write(out)
	return nil
}

// isElementContentWhitespace implements spec §4.5's dedicated detection
// rule, which is deliberately richer than dom.Text.IsElementContentWhitespace:
// it also honors the pxdom-assume-element-content override and walks
// through EntityReference ancestors to find the nearest Element.
func isElementContentWhitespace(t *dom.Text, assumeElementContent bool) bool {
	data := t.Data()
	for _, r := range data {
		switch r {
		case ' ', '\t', '\n':
		default:
			return false
		}
	}

	var parent *dom.Element
	cur := dom.Node(t)
	for {
		p := cur.ParentNode()
		if p == nil {
			return false
		}
		if el, ok := p.(*dom.Element); ok {
			parent = el
			break
		}
		if p.Kind() != dom.EntityReferenceNodeKind {
			return false
		}
		cur = p
	}

	elementOnly := assumeElementContent
	if doc := parent.OwnerDocument(); doc != nil {
		if dt := doc.Doctype(); dt != nil {
			if decl, ok := dt.ElementDeclarations().GetNamedItem(parent.NodeName()).(*dom.ElementDeclaration); ok && decl.Content != nil {
				elementOnly = !decl.Content.Mixed
			}
		}
	}
	return elementOnly
}

func (c *ctx) emitCDATA(cd *dom.CDATASection) *dom.Halt {
	switch c.consultFilter(cd) {
	case FilterInterrupt:
		return interruptHalt(cd)
	case FilterReject, FilterSkip:
		return nil
	}
	if !c.cfg.CDATASections {
		out := escapeText(cd.Data(), c.canonical)
		if c.ascii {
			out = asciiEscape(out)
		}
		c.buf.write(out)
		return nil
	}

	data := cd.Data()
	if !containsCDATAHazard(data) {
		c.buf.writeRaw("<![CDATA[" + data + "]]>")
		return nil
	}
	if !c.cfg.SplitCDATASections {
		return c.report(&dom.DOMError{Severity: dom.SeverityFatal, Type: "wf-invalid-character",
			Message: "CDATA section contains ']]>' or a bare CR and splitting is disabled", Related: cd})
	}
	body, splits := splitCDATAData(data)
	if splits > 0 {
		if halt := c.report(&dom.DOMError{Severity: dom.SeverityWarning, Type: "cdata-section-splitted",
			Message: "CDATA section split to escape an embedded ']]>' or CR", Related: cd}); halt != nil {
			return halt
		}
	}
	c.buf.writeRaw("<![CDATA[" + body + "]]>")
	return nil
}

func (c *ctx) emitComment(cm *dom.Comment, depth int) *dom.Halt {
	if !c.cfg.Comments {
		return nil
	}
	switch c.consultFilter(cm) {
	case FilterInterrupt:
		return interruptHalt(cm)
	case FilterReject, FilterSkip:
		return nil
	}
	data := cm.Data()
	if !commentWellFormed(data) {
		return c.report(&dom.DOMError{Severity: dom.SeverityFatal, Type: "wf-invalid-character",
			Message: "comment data contains '--' or ends in '-'", Related: cm})
	}
	if c.pretty && strings.Contains(data, "\n") {
		indented := strings.ReplaceAll(data, "\n", "\n"+strings.Repeat("  ", depth+1))
		c.buf.writeRaw("<!--" + indented + "-->")
		return nil
	}
	text := data
	if c.ascii {
		text = asciiEscape(text)
	}
	c.buf.writeRaw("<!--" + text + "-->")
	return nil
}

func (c *ctx) emitPI(pi *dom.ProcessingInstruction) *dom.Halt {
	switch c.consultFilter(pi) {
	case FilterInterrupt:
		return interruptHalt(pi)
	case FilterReject, FilterSkip:
		return nil
	}
	if !piWellFormed(pi.Data()) {
		return c.report(&dom.DOMError{Severity: dom.SeverityFatal, Type: "wf-invalid-character",
			Message: "processing instruction data contains '?>' or a CR", Related: pi})
	}
	if pi.Data() == "" {
		c.buf.writeRaw("<?" + pi.Target() + "?>")
		return nil
	}
	c.buf.writeRaw("<?" + pi.Target() + " " + pi.Data() + "?>")
	return nil
}

func (c *ctx) emitEntityRef(er *dom.EntityReference, scope *outScope, depth int) *dom.Halt {
	action := c.consultFilter(er)
	if action == FilterInterrupt {
		return interruptHalt(er)
	}
	if action == FilterReject {
		return nil
	}
	if !c.cfg.Entities || action == FilterSkip {
		return c.emitChildren(er, scope, depth)
	}
	c.buf.writeRaw("&" + er.NodeName() + ";")
	return nil
}

func (c *ctx) emitDoctype(dt *dom.DocumentType) *dom.Halt {
	switch c.consultFilter(dt) {
	case FilterInterrupt:
		return interruptHalt(dt)
	case FilterReject, FilterSkip:
		return nil
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE ")
	b.WriteString(dt.Name())
	switch {
	case dt.PublicID() != "":
		b.WriteString(" PUBLIC \"")
		b.WriteString(dt.PublicID())
		b.WriteString("\" \"")
		b.WriteString(dt.SystemID())
		b.WriteString("\"")
	case dt.SystemID() != "":
		b.WriteString(" SYSTEM \"")
		b.WriteString(dt.SystemID())
		b.WriteString("\"")
	}
	if dt.InternalSubset() != "" {
		b.WriteString(" [")
		b.WriteString(dt.InternalSubset())
		b.WriteString("]")
	}
	b.WriteString(">")
	c.buf.writeRaw(b.String())
	return nil
}
