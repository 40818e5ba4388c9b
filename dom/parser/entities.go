package parser

import (
	"strings"

	"github.com/arturoeanton/xmldom/dom"
)

// entities.go expands general entity references surviving into a CharData
// or attribute-value token as literal "&name;" text (a consequence of
// parsing in non-strict mode, see parser.go's ParseContext comment) into
// Text and EntityReference node runs, matching spec §3's EntityReference
// data model: an EntityReference child carries, as its own children, the
// parser's best expansion of the entity at parse time.

// entityExpansion selects how appendTextWithEntities materializes a
// recognized "&name;" reference, matching the "entities" DOMConfiguration
// parameter (spec §4.4 "Reference expansion during content parsing"):
// inline=false (entities=true, the default) keeps the EntityReference node
// spec §3's data model describes; inline=true (entities=false) expands the
// reference to literal text in place instead, as if the replacement text had
// appeared in the source directly. fold additionally folds tabs/newlines
// arising from that literal expansion to spaces, the attribute-value-only
// normalization spec §4.4 calls for; it has no effect unless inline is set.
type entityExpansion struct {
	inline bool
	fold   bool
}

// predefinedEntities are the five built-in XML general entities (plus the
// ones encoding/xml's own tokenizer already resolves inside ordinary content
// before this package ever sees it -- this table exists for the one place
// that text doesn't pass through the tokenizer: a DTD entity declaration's
// literal value, scanned by dtd.go straight out of the internal subset's raw
// bytes). They denote characters, never EntityReference nodes, regardless of
// the "entities" configuration parameter or of whether the surrounding
// reference is itself a custom entity being expanded (spec.md §8 Scenario 2:
// `<!ENTITY e "X&amp;Y">` referenced as `&e;` has replacement children
// `[Text("X&Y")]`, not an EntityReference("amp") wrapping a Text("&")).
var predefinedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"apos": "'",
	"quot": "\"",
}

// appendTextWithEntities splits raw into maximal Text runs and, for every
// recognized "&name;" it contains, either an EntityReference node or (when
// mode.inline) literal expanded text folded into the surrounding run; the
// result is appended to parent. Unrecognized entity names become a DOMError
// (non-fatal by default: the reference is kept as literal text, a
// conservative choice over silently dropping or guessing). Equivalent to
// appendTextWithEntitiesDepth(..., 0).
func appendTextWithEntities(doc *dom.Document, parent dom.Node, raw string, known map[string]string, handler dom.ErrorHandler, mode entityExpansion) *dom.Halt {
	return appendTextWithEntitiesDepth(doc, parent, raw, known, handler, mode, 0)
}

// appendTextWithEntitiesDepth is appendTextWithEntities with an explicit
// nesting depth, so a self-referencing or mutually-recursive entity
// declaration (direct or indirect) cannot recurse unboundedly through
// expandReplacementText: past maxEntityExpansionDepth a reference is kept as
// literal "&name;" text instead of being expanded further, the same bound
// flattenEntitiesDepth applies on the entities=false path.
func appendTextWithEntitiesDepth(doc *dom.Document, parent dom.Node, raw string, known map[string]string, handler dom.ErrorHandler, mode entityExpansion, depth int) *dom.Halt {
	var textRun strings.Builder
	flush := func() *dom.Halt {
		if textRun.Len() == 0 {
			return nil
		}
		t := doc.CreateTextNode(textRun.String())
		textRun.Reset()
		if err := parent.AppendChild(t); err != nil {
			return reportAttach(handler, err, t)
		}
		return nil
	}

	i := 0
	for i < len(raw) {
		amp := strings.IndexByte(raw[i:], '&')
		if amp < 0 {
			textRun.WriteString(raw[i:])
			break
		}
		textRun.WriteString(raw[i : i+amp])
		i += amp
		semi := strings.IndexByte(raw[i:], ';')
		if semi < 0 {
			textRun.WriteString(raw[i:])
			break
		}
		name := raw[i+1 : i+semi]
		full := raw[i : i+semi+1]
		i += semi + 1

		if name == "" || strings.ContainsAny(name, " \t\r\n<&") {
			textRun.WriteString(full)
			continue
		}
		if lit, ok := predefinedEntities[name]; ok {
			textRun.WriteString(lit)
			continue
		}
		replacement, ok := known[name]
		if !ok {
			if halt := reportUnknownEntity(handler, name); halt != nil {
				return halt
			}
			textRun.WriteString(full)
			continue
		}
		if depth > maxEntityExpansionDepth {
			textRun.WriteString(full)
			continue
		}
		if mode.inline {
			expanded, halt := flattenEntities(replacement, known, mode.fold, handler)
			if halt != nil {
				return halt
			}
			textRun.WriteString(expanded)
			continue
		}
		if halt := flush(); halt != nil {
			return halt
		}
		ref := mustCreateEntityReference(doc, name)
		if err := expandReplacementText(doc, ref, replacement, known, handler, mode, depth+1); err != nil {
			return err
		}
		if err := parent.AppendChild(ref); err != nil {
			return reportAttach(handler, err, ref)
		}
	}
	return flush()
}

// expandReplacementText recursively builds ref's child sequence from its
// declaration's replacement text, itself expanding any nested entity
// references up to maxEntityExpansionDepth (a self-reference, direct or
// indirect, is caught by depth rather than cycle detection: this package bounds
// entity nesting rather than walking the reference graph, matching how a
// non-validating processor that never builds a full DTD grammar graph would
// detect runaway expansion).
func expandReplacementText(doc *dom.Document, ref *dom.EntityReference, replacement string, known map[string]string, handler dom.ErrorHandler, mode entityExpansion, depth int) *dom.Halt {
	return appendTextWithEntitiesDepth(doc, ref, replacement, known, handler, mode, depth)
}

// flattenEntities is appendTextWithEntities's inline-mode counterpart: it
// has no Node tree to attach to, so it recursively resolves raw's entity
// references (and theirs, in turn) straight down to a flat replacement
// string, bounded by depth rather than cycle detection for the same reason
// expandReplacementText is. When fold is set, tabs and newlines anywhere in
// the result are folded to spaces (spec §4.4: this folding applies to
// entity-driven attribute-value expansion specifically, not to the literal
// attribute text already normalized around it).
func flattenEntities(raw string, known map[string]string, fold bool, handler dom.ErrorHandler) (string, *dom.Halt) {
	out, halt := flattenEntitiesDepth(raw, known, handler, 0)
	if fold {
		out = foldAttributeWhitespace(out)
	}
	return out, halt
}

const maxEntityExpansionDepth = 20

func flattenEntitiesDepth(raw string, known map[string]string, handler dom.ErrorHandler, depth int) (string, *dom.Halt) {
	if depth > maxEntityExpansionDepth {
		return raw, nil
	}
	var out strings.Builder
	i := 0
	for i < len(raw) {
		amp := strings.IndexByte(raw[i:], '&')
		if amp < 0 {
			out.WriteString(raw[i:])
			break
		}
		out.WriteString(raw[i : i+amp])
		i += amp
		semi := strings.IndexByte(raw[i:], ';')
		if semi < 0 {
			out.WriteString(raw[i:])
			break
		}
		name := raw[i+1 : i+semi]
		full := raw[i : i+semi+1]
		i += semi + 1

		if name == "" || strings.ContainsAny(name, " \t\r\n<&") {
			out.WriteString(full)
			continue
		}
		if lit, ok := predefinedEntities[name]; ok {
			out.WriteString(lit)
			continue
		}
		replacement, ok := known[name]
		if !ok {
			if halt := reportUnknownEntity(handler, name); halt != nil {
				return out.String(), halt
			}
			out.WriteString(full)
			continue
		}
		expanded, halt := flattenEntitiesDepth(replacement, known, handler, depth+1)
		if halt != nil {
			return out.String(), halt
		}
		out.WriteString(expanded)
	}
	return out.String(), nil
}

func foldAttributeWhitespace(s string) string {
	if !strings.ContainsAny(s, "\t\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

func mustCreateEntityReference(doc *dom.Document, name string) *dom.EntityReference {
	ref, err := doc.CreateEntityReference(name)
	if err != nil {
		// name came from a successfully-lexed "&name;" token, so it is
		// always a valid Name; this branch is unreachable in practice.
		ref, _ = doc.CreateEntityReference("_")
	}
	return ref
}

func reportAttach(handler dom.ErrorHandler, err error, related dom.Node) *dom.Halt {
	de := &dom.DOMError{Severity: dom.SeverityError, Type: "insertion-failed", Message: err.Error(), Related: related}
	cont := false
	if handler != nil {
		cont = handler(de)
	}
	if cont {
		return nil
	}
	return &dom.Halt{Err: de}
}

func reportUnknownEntity(handler dom.ErrorHandler, name string) *dom.Halt {
	de := &dom.DOMError{Severity: dom.SeverityWarning, Type: "undeclared-entity", Message: "reference to undeclared entity " + name}
	cont := true
	if handler != nil {
		cont = handler(de)
	}
	if cont {
		return nil
	}
	return &dom.Halt{Err: de}
}
