// Package serializer implements the XML writer half of spec §4.5: a tree
// walker that emits a dom.Document (or any detached subtree) as XML text
// into an encoding-aware output sink, honoring the same DOMConfiguration
// parameter set dom/parser consumes plus a handful of serializer-only
// switches (pretty-printing, the XML declaration, discarding DTD-default
// attribute content) that the LSSerializer recommendation keeps separate
// from the shared DOMConfiguration.
//
// Grounded on the teacher's streaming_encoder.go (writer-based encoding,
// indent tracking, per-character escaping via xml.EscapeText) and c14n.go
// (canonical attribute ordering and the CR/TAB/LF/'>' escaping tables),
// generalized from a map[string]any walk to the dom package's typed node
// tree.
package serializer

import (
	"bytes"
	"io"
	"strings"

	"github.com/arturoeanton/xmldom/dom"
)

// Options configures a Serializer. Unlike dom.DOMConfiguration (shared with
// dom/parser and tree algorithms like normalizeDocument), these fields are
// serializer-specific: the real LSSerializer recommendation folds them into
// the same configuration object, but since this implementation's
// DOMConfiguration only carries the parameters dom/parser and
// normalizeDocument need, the serializer keeps its own extra knobs here.
type Options struct {
	// Config supplies the shared parameter set (canonical-form,
	// cdata-sections, comments, element-content-whitespace, entities,
	// namespaces, namespace-declarations, split-cdata-sections). If nil,
	// the document's own Config() is used.
	Config *dom.DOMConfiguration
	// ErrorHandler overrides Config.ErrorHandler for this write, if set.
	ErrorHandler dom.ErrorHandler
	// Filter implements the serializer-side LSSerializer filter contract
	// (spec §4.5.1).
	Filter Filter
	// Encoding is an explicit output-encoding override (spec §4.5's
	// "explicit LSOutput encoding"). Empty defers to the document's
	// declared XML encoding, then UTF-8; the encoding the input was read
	// in is not recorded on the Document and is not consulted.
	Encoding string

	XMLDeclaration        bool
	PrettyPrint           bool
	DiscardDefaultContent bool
	AssumeElementContent  bool
}

// DefaultOptions returns the spec-table defaults for every field this
// package doesn't already get from dom.DOMConfiguration: xml-declaration
// and discard-default-content on, format-pretty-print and
// pxdom-assume-element-content off (spec §6's parameter table).
func DefaultOptions() Options {
	return Options{
		XMLDeclaration:        true,
		DiscardDefaultContent: true,
	}
}

// Serializer writes dom.Document trees as XML, per a fixed Options value.
type Serializer struct {
	opts Options
}

// New builds a Serializer from opts. Callers who want the spec defaults
// start from DefaultOptions() and override individual fields.
func New(opts Options) *Serializer { return &Serializer{opts: opts} }

// WriteToString serializes doc and returns the result (spec §4.5's
// "convenience writeToString").
func (s *Serializer) WriteToString(doc *dom.Document) (string, error) {
	var buf bytes.Buffer
	if err := s.WriteTo(&buf, doc); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}

// WriteTo serializes doc to w. On error (including a *dom.Halt from a
// filter INTERRUPT or an aborting DOMError), whatever had already reached w
// stays there: spec §5's "partial tree produced so far is returned"
// applies to serialized bytes just as it does to a partially built tree.
func (s *Serializer) WriteTo(w io.Writer, doc *dom.Document) error {
	cfg := s.opts.Config
	if cfg == nil {
		cfg = doc.Config()
	}
	handler := s.opts.ErrorHandler
	if handler == nil {
		handler = cfg.ErrorHandler
	}

	target := doc
	if cfg.Namespaces {
		cloned := doc.CloneNode(true).(*dom.Document)
		*cloned.Config() = *cfg
		dom.FixupNamespaces(cloned)
		target = cloned
	}

	encName := resolveOutputEncoding(s.opts.Encoding, "", target.XMLEncoding())
	ew, err := wrapEncodingWriter(encName, w)
	if err != nil {
		return err
	}

	c := &ctx{
		buf:        newBuffer(ew),
		cfg:        cfg,
		handler:    handler,
		filter:     s.opts.Filter,
		canonical:  cfg.CanonicalForm,
		pretty:     s.opts.PrettyPrint,
		discard:    s.opts.DiscardDefaultContent,
		assumeElem: s.opts.AssumeElementContent,
		ascii:      isASCIITarget(encName),
	}

	if halt := s.writeDocument(c, target, encName); halt != nil {
		return halt
	}
	return c.buf.err
}

func (s *Serializer) writeDocument(c *ctx, doc *dom.Document, encName string) *dom.Halt {
	declNeeded := doc.XMLVersion() != "1.0" || doc.XMLStandalone()
	if s.opts.XMLDeclaration {
		var b strings.Builder
		b.WriteString("<?xml version=\"")
		v := doc.XMLVersion()
		if v == "" {
			v = "1.0"
		}
		b.WriteString(v)
		b.WriteString("\" encoding=\"")
		if encName == "" {
			b.WriteString("UTF-8")
		} else {
			b.WriteString(strings.ToUpper(encName))
		}
		b.WriteString("\"")
		if doc.XMLStandalone() {
			b.WriteString(" standalone=\"yes\"")
		}
		b.WriteString("?>")
		c.buf.writeRaw(b.String())
		if c.canonical {
			c.buf.setSeparator("\n")
		}
	} else if declNeeded {
		if halt := c.report(&dom.DOMError{Severity: dom.SeverityWarning, Type: "xml-declaration-needed",
			Message: "document needs an XML declaration but none is being emitted"}); halt != nil {
			return halt
		}
	}

	root := &outScope{binding: map[string]string{"xml": dom.XMLNamespace, "xmlns": dom.XMLNSNamespace}}
	children := doc.ChildNodes()
	first := true
	for _, child := range children {
		if c.canonical {
			if _, isText := child.(*dom.Text); isText {
				continue
			}
			if child.Kind() == dom.DocumentTypeNodeKind {
				continue
			}
			if !first {
				c.buf.setSeparator("\n")
			}
		}
		if halt := c.emit(child, 0, root); halt != nil {
			return halt
		}
		first = false
	}
	return nil
}
