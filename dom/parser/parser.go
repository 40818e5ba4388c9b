// Package parser implements the XML reader half of the Load and Save
// recommendation (spec §4.4): given a byte stream, it builds a dom.Document
// through the same encoding-selection, content-loop and filter-contract
// design the specification describes, generalizing the teacher's
// streaming_decoder.go (Option-configured construction of an
// encoding/xml.Decoder) from a map[string]any sink to the dom package's
// typed node tree.
package parser

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/arturoeanton/xmldom/dom"
	"k8s.io/klog/v2"
)

// Options configures a Parser (spec §4.4 "Input Source" and "Filter
// contract"). The zero value is usable: default configuration, no filter,
// and DOMErrors decided by the severity defaults since no handler is set.
type Options struct {
	// Config seeds the produced Document's DOMConfiguration. Nil means a
	// fresh default configuration (dom.newDOMConfiguration's defaults).
	Config *dom.DOMConfiguration

	// ErrorHandler receives every DOMError the parse produces. When nil,
	// spec §7's severity defaults apply: warnings continue, errors and
	// fatal errors abort. An installed handler's return value decides for
	// warnings and errors; a fatal error always aborts.
	ErrorHandler dom.ErrorHandler

	// Filter, if set, is offered each element through StartElement, after
	// the element's attributes are read and before its children are parsed
	// (spec §4.4). The parser does not call AcceptNode, so character data
	// and the other node kinds are not offered to the filter.
	Filter Filter

	// CharsetOverride forces a charset, bypassing BOM/declaration
	// sniffing entirely (spec §4.4 "encoding override").
	CharsetOverride string

	// Normalize requests a post-parse normalizeDocument pass using the
	// produced Document's configuration (spec §4.4's "post-parse
	// normalize step").
	Normalize bool
}

// Parser reads a byte stream into a dom.Document.
type Parser struct {
	opts Options
}

// New builds a Parser from opts.
func New(opts Options) *Parser { return &Parser{opts: opts} }

// Parse is shorthand for ParseContext(context.Background(), r).
func (p *Parser) Parse(r io.Reader) (*dom.Document, error) {
	return p.ParseContext(context.Background(), r)
}

// ParseContext reads r to EOF and returns the resulting Document, or the
// first error a handler/default decided should abort the parse. ctx is
// checked between content-loop iterations so a caller can cancel a parse of
// a large or slow stream (spec §5: "operations ... accept a context").
func (p *Parser) ParseContext(ctx context.Context, r io.Reader) (*dom.Document, error) {
	br := bufio.NewReader(r)
	bomEncoding, err := sniffBOM(br)
	if err != nil {
		return nil, fmt.Errorf("xmldom/parser: %w", err)
	}

	var src io.Reader = br
	if p.opts.CharsetOverride != "" {
		decoded, derr := decodeCharset(p.opts.CharsetOverride, br)
		if derr != nil {
			return nil, derr
		}
		src = decoded
	}
	tee := &cdataTee{r: src}
	dec := xml.NewDecoder(tee)
	dec.Entity = map[string]string{}
	charsetOverride := p.opts.CharsetOverride
	if charsetOverride == "" {
		charsetOverride = bomEncoding
	}
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if p.opts.CharsetOverride != "" {
			// Already decoded ahead of the tee, whatever the declaration says.
			return input, nil
		}
		if charsetOverride != "" {
			charset = charsetOverride
		}
		return decodeCharset(charset, input)
	}
	// Non-strict mode is the load-bearing choice here: it is what lets an
	// undeclared-at-tokenizer-time "&name;" general entity reference
	// survive into a CharData token as literal text instead of aborting
	// the decode, so this package's own entity expansion (entities.go)
	// can resolve it against the DTD declarations gathered from the
	// DOCTYPE's internal subset.
	dec.Strict = false

	doc := dom.NewDocument()
	if p.opts.Config != nil {
		*doc.Config() = *p.opts.Config
	}

	b := &builder{
		doc:     doc,
		dec:     dec,
		tee:     tee,
		opts:    p.opts,
		entCopy: map[string]string{},
	}
	b.stack = []dom.Node{doc}

	for {
		select {
		case <-ctx.Done():
			return doc, ctx.Err()
		default:
		}
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if halt := b.fail("not-well-formed", err.Error()); halt != nil {
				return doc, halt
			}
			break
		}
		if halt := b.handleToken(tok, start, dec.InputOffset()); halt != nil {
			return doc, halt
		}
	}

	if b.dt != nil {
		applyAttributeDefaulting(doc, b.dt)
	}
	if p.opts.Normalize {
		doc.NormalizeDocument()
	}
	return doc, nil
}

// builder carries the mutable state threaded through one parse: the
// document under construction, the open-element stack (doc at the bottom),
// and the entity table accumulated from any DOCTYPE's internal subset.
type builder struct {
	doc     *dom.Document
	dec     *xml.Decoder
	tee     *cdataTee
	opts    Options
	stack   []dom.Node
	nsStack []map[string]string
	dt      *dom.DocumentType
	entCopy map[string]string // name -> replacement text, predefined excluded
}

func (b *builder) top() dom.Node { return b.stack[len(b.stack)-1] }

func (b *builder) fail(typ, msg string) *dom.Halt {
	err := &dom.DOMError{Severity: dom.SeverityFatal, Type: typ, Message: msg}
	return b.report(err)
}

// report runs the configured error handler (falling back to severity
// defaults) and additionally logs non-aborting decisions at klog.V(2), and
// the moment just before an abort becomes a returned error at klog.Error
// (SPEC_FULL §11).
func (b *builder) report(err *dom.DOMError) *dom.Halt {
	halt := func() *dom.Halt {
		cont := err.Severity == dom.SeverityWarning
		if b.opts.ErrorHandler != nil {
			decided := b.opts.ErrorHandler(err)
			if err.Severity != dom.SeverityFatal {
				cont = decided
			}
		}
		if cont {
			return nil
		}
		return &dom.Halt{Err: err}
	}()
	if halt == nil {
		klog.V(2).Infof("xmldom/parser: continuing after %s: %s", err.Type, err.Message)
		return nil
	}
	klog.Errorf("xmldom/parser: aborting parse: %s", halt.Error())
	return halt
}

func (b *builder) handleToken(tok xml.Token, start, end int64) *dom.Halt {
	switch t := tok.(type) {
	case xml.StartElement:
		return b.startElement(t)
	case xml.EndElement:
		// Non-strict decoding closes mismatched tags silently; compare the raw
		// end tag (offsets only line up when no declared charset is transcoded).
		enc := b.doc.XMLEncoding()
		aligned := enc == "" || strings.EqualFold(enc, "utf-8") || strings.EqualFold(enc, "utf8") || b.opts.CharsetOverride != ""
		if aligned && start >= 0 && start < end && end <= int64(len(b.tee.buf)) {
			tag := string(b.tee.buf[start:end])
			if strings.HasPrefix(tag, "</") && strings.HasSuffix(tag, ">") {
				name := strings.TrimRight(tag[2:], " \t\r\n>")
				if i := strings.LastIndexByte(name, ':'); i >= 0 {
					name = name[i+1:]
				}
				if name != t.Name.Local {
					return b.fail("not-well-formed", fmt.Sprintf("element <%s> closed by %s", t.Name.Local, tag))
				}
			}
		}
		b.stack = b.stack[:len(b.stack)-1]
		if len(b.nsStack) > 0 {
			b.nsStack = b.nsStack[:len(b.nsStack)-1]
		}
		return nil
	case xml.CharData:
		if b.tee.wasCDATA(start, end) {
			return b.cdataSection(string(t))
		}
		return b.charData(string(t))
	case xml.Comment:
		return b.comment(string(t))
	case xml.ProcInst:
		return b.procInst(t)
	case xml.Directive:
		return b.directive(string(t))
	}
	return nil
}

func (b *builder) comment(text string) *dom.Halt {
	if !b.doc.Config().Comments {
		return nil
	}
	c := b.doc.CreateComment(text)
	return b.attach(c)
}

func (b *builder) procInst(t xml.ProcInst) *dom.Halt {
	if strings.EqualFold(t.Target, "xml") {
		b.applyXMLDecl(string(t.Inst))
		return nil
	}
	pi, err := b.doc.CreateProcessingInstruction(t.Target, strings.TrimSpace(string(t.Inst)))
	if err != nil {
		if halt := b.report(&dom.DOMError{Severity: dom.SeverityError, Type: "invalid-pi", Message: err.Error()}); halt != nil {
			return halt
		}
		return nil
	}
	return b.attach(pi)
}

func (b *builder) applyXMLDecl(inst string) {
	decl := "<?xml " + inst + "?>"
	if enc := declaredEncoding(decl); enc != "" {
		b.doc.SetXMLEncoding(enc)
	}
	if strings.Contains(inst, "standalone=\"yes\"") || strings.Contains(inst, "standalone='yes'") {
		b.doc.SetXMLStandalone(true)
	}
	if i := strings.Index(inst, "version="); i >= 0 {
		rest := inst[i+len("version="):]
		if len(rest) > 0 && (rest[0] == '"' || rest[0] == '\'') {
			q := rest[0]
			if j := strings.IndexByte(rest[1:], q); j >= 0 {
				_ = b.doc.SetXMLVersion(rest[1 : 1+j])
			}
		}
	}
}

// directive handles a "<!...>" markup declaration token outside element
// content: a DOCTYPE (with its optional internal subset), or anything else
// encoding/xml surfaces this way, ignored.
func (b *builder) directive(raw string) *dom.Halt {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "DOCTYPE") {
		return nil
	}
	name, publicID, systemID, subset := parseDoctypeDirective(trimmed)
	if name == "" {
		return nil
	}
	dt, err := dom.Implementation.CreateDocumentType(name, publicID, systemID)
	if err != nil {
		if halt := b.report(&dom.DOMError{Severity: dom.SeverityError, Type: "malformed-doctype", Message: err.Error()}); halt != nil {
			return halt
		}
		return nil
	}
	dt.SetInternalSubset(subset)
	if subset != "" {
		for _, derr := range parseInternalSubset(b.doc, dt, subset) {
			if halt := b.report(derr); halt != nil {
				return halt
			}
		}
	}
	b.dt = dt
	b.collectEntities(dt)
	if err := b.doc.AppendChild(dt); err != nil {
		if halt := b.report(&dom.DOMError{Severity: dom.SeverityError, Type: "doctype-insertion-failed", Message: err.Error()}); halt != nil {
			return halt
		}
	}
	return nil
}

func (b *builder) collectEntities(dt *dom.DocumentType) {
	ents := dt.Entities()
	for i := 0; i < ents.Length(); i++ {
		e := ents.Item(i).(*dom.Entity)
		if e.SystemID() == "" && e.PublicID() == "" {
			b.entCopy[e.NodeName()] = e.ReplacementText()
		}
	}
}

// pushScope computes the in-scope prefix->URI bindings at this element,
// inheriting the parent frame and overlaying any "xmlns"/"xmlns:prefix"
// declarations carried on t.Attr. encoding/xml's Decoder resolves an
// element/attribute's Name.Space to the already-looked-up namespace URI
// rather than preserving the source prefix text, so this is how the
// original prefix is recovered: by re-deriving it from the same
// declarations the decoder itself consulted, tracked independently here
// since dom.Element needs to keep a presentation prefix DOM3 cares about
// (spec §3, §6 namespace fixup) that the decoder's resolved model drops.
func (b *builder) pushScope(t xml.StartElement) map[string]string {
	parent := map[string]string{}
	if len(b.nsStack) > 0 {
		for k, v := range b.nsStack[len(b.nsStack)-1] {
			parent[k] = v
		}
	} else {
		parent[""] = ""
	}
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			parent[""] = a.Value
		case a.Name.Space == "xmlns":
			parent[a.Name.Local] = a.Value
		}
	}
	b.nsStack = append(b.nsStack, parent)
	return parent
}

// prefixFor returns a prefix in scope bound to uri, preferring the default
// ("") binding when it already matches so an element/attribute using the
// default namespace round-trips without a synthetic prefix.
func prefixFor(scope map[string]string, uri string) string {
	if uri == "" {
		return ""
	}
	if scope[""] == uri {
		return ""
	}
	for p, u := range scope {
		if p != "" && u == uri {
			return p
		}
	}
	return ""
}

func (b *builder) startElement(t xml.StartElement) *dom.Halt {
	if dup := firstDuplicateAttr(t.Attr); dup != "" {
		return b.fail("not-well-formed", fmt.Sprintf("duplicate attribute %q on element %q", dup, t.Name.Local))
	}
	scope := b.pushScope(t)
	namespaceURI := t.Name.Space
	prefix := prefixFor(scope, namespaceURI)
	local := t.Name.Local
	var el *dom.Element
	var err error
	if namespaceURI == "" {
		el, err = b.doc.CreateElement(local)
	} else {
		el, err = b.doc.CreateElementNS(namespaceURI, qualify(prefix, local))
	}
	if err != nil {
		el, _ = b.doc.CreateElement(local)
	}
	for _, a := range t.Attr {
		if a.Name.Space == "" && a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			aPrefix := ""
			if a.Name.Space == "xmlns" {
				aPrefix = a.Name.Local
			}
			qname := "xmlns"
			if aPrefix != "" {
				qname = "xmlns:" + aPrefix
			}
			_ = el.SetAttributeNS(dom.XMLNSNamespace, qname, a.Value)
			continue
		}
		aLocal := a.Name.Local
		aURI := a.Name.Space
		aPrefix := prefixFor(scope, aURI)
		qname := qualify(aPrefix, aLocal)
		if aURI == "" {
			_ = el.SetAttribute(qname, "")
		} else {
			_ = el.SetAttributeNS(aURI, qname, "")
		}
		at := el.GetAttributeNodeNS(aURI, aLocal)
		if at == nil {
			at = el.GetAttributeNode(qname)
		}
		if at != nil {
			b.fillAttributeValue(at, a.Value)
		}
	}
	if b.opts.Filter != nil && b.opts.Filter.WhatToShow().Accepts(dom.ElementNodeKind) {
		switch b.opts.Filter.StartElement(el) {
		case FilterReject:
			// Drop the node and its whole subtree: children parsed before
			// the matching EndElement are discarded too.
			b.stack = append(b.stack, &skippedElement{Node: el})
			return nil
		case FilterSkip:
			// Drop just this node; its children attach to its own parent.
			b.stack = append(b.stack, b.top())
			return nil
		case FilterInterrupt:
			return b.report(&dom.DOMError{Severity: dom.SeverityFatal, Type: "filter-interrupt", Message: "parser filter interrupted the parse"})
		}
	}
	if halt := b.attach(el); halt != nil {
		return halt
	}
	b.stack = append(b.stack, el)
	return nil
}

// firstDuplicateAttr returns the display name of the first attribute in
// attrs whose resolved (namespace, local) pair repeats an earlier one, or ""
// if there is none. Two attributes with the same prefix text but different
// bindings are different names; two differently-prefixed attributes
// resolving to the same namespace+local pair are the same name (spec §4.4:
// "duplicate attribute names on the same element fail" is a namespace-aware
// check, same as the rest of this parser's attribute handling).
func firstDuplicateAttr(attrs []xml.Attr) string {
	seen := make(map[xml.Name]bool, len(attrs))
	for _, a := range attrs {
		if seen[a.Name] {
			return qualify(a.Name.Space, a.Name.Local)
		}
		seen[a.Name] = true
	}
	return ""
}

// skippedElement marks a subtree FilterReject rejected: handleToken's
// EndElement case still pops the stack in lockstep with startElement's
// push, but charData/comment/attach below special-case this wrapper to
// discard content instead of inserting it.
type skippedElement struct{ dom.Node }

func (b *builder) attach(n dom.Node) *dom.Halt {
	parent := b.top()
	if _, skipped := parent.(*skippedElement); skipped {
		return nil
	}
	if err := parent.AppendChild(n); err != nil {
		return b.report(&dom.DOMError{Severity: dom.SeverityError, Type: "insertion-failed", Message: err.Error(), Related: n})
	}
	return nil
}

func (b *builder) charData(raw string) *dom.Halt {
	parent := b.top()
	if _, skipped := parent.(*skippedElement); skipped {
		return nil
	}
	if _, atDoc := parent.(*dom.Document); atDoc && strings.Trim(raw, " \t\r\n") == "" {
		// Whitespace outside the document element is not part of the tree.
		return nil
	}
	return appendTextWithEntities(b.doc, parent, raw, b.entCopy, b.opts.ErrorHandler, entityExpansion{
		inline: !b.doc.Config().Entities,
	})
}

// cdataSection attaches raw (the literal content between "<![CDATA[" and
// "]]>", markers already stripped by the decoder) as a CDATASection node,
// unless the "cdata-sections" configuration parameter is off, in which case
// it collapses to Text the same way normalizeDocument's demoteCDATASections
// pass would (spec §4.2's cdata-sections parameter applies at parse time
// too, not only to already-built trees). CDATA content is never scanned for
// entity references: that is what distinguishes it from ordinary text.
func (b *builder) cdataSection(raw string) *dom.Halt {
	parent := b.top()
	if _, skipped := parent.(*skippedElement); skipped {
		return nil
	}
	if !b.doc.Config().CDATASections {
		return b.attach(b.doc.CreateTextNode(raw))
	}
	cd, err := b.doc.CreateCDATASection(raw)
	if err != nil {
		return b.report(&dom.DOMError{Severity: dom.SeverityError, Type: "invalid-cdata", Message: err.Error()})
	}
	return b.attach(cd)
}

func (b *builder) fillAttributeValue(at *dom.Attr, raw string) {
	appendTextWithEntities(b.doc, at, raw, b.entCopy, b.opts.ErrorHandler, entityExpansion{
		inline: !b.doc.Config().Entities,
		fold:   !b.doc.Config().Entities,
	})
}


func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// parseDoctypeDirective splits a raw "DOCTYPE name [ SYSTEM|PUBLIC ids ] [internal subset]"
// directive body into its parts.
func parseDoctypeDirective(body string) (name, publicID, systemID, subset string) {
	header := strings.TrimPrefix(body, "DOCTYPE")
	if open := strings.IndexByte(header, '['); open >= 0 {
		if end := strings.LastIndexByte(header, ']'); end > open {
			subset = header[open+1 : end]
		}
		header = header[:open]
	}
	fields := splitDeclFields(header)
	// strip a leading empty field produced by the prefix trim's leading space
	for len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return "", "", "", ""
	}
	name = fields[0]
	rest := fields[1:]
	if len(rest) > 0 && (strings.EqualFold(rest[0], "SYSTEM") || strings.EqualFold(rest[0], "PUBLIC")) {
		publicID, systemID, _ = parseExternalID(rest)
	}
	return
}
