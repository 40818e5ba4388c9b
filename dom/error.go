package dom

import "fmt"

// ExceptionCode enumerates the synchronous structural-violation taxonomy
// (spec §7) raised by public mutating operations. These are analogous to
// W3C DOMException codes.
type ExceptionCode int

const (
	IndexSizeErr ExceptionCode = iota + 1
	HierarchyRequestErr
	WrongDocumentErr
	InvalidCharacterErr
	NoModificationAllowedErr
	NamespaceErr
	NotFoundErr
	NotSupportedErr
	InuseAttributeErr
)

func (c ExceptionCode) String() string {
	switch c {
	case IndexSizeErr:
		return "INDEX_SIZE_ERR"
	case HierarchyRequestErr:
		return "HIERARCHY_REQUEST_ERR"
	case WrongDocumentErr:
		return "WRONG_DOCUMENT_ERR"
	case InvalidCharacterErr:
		return "INVALID_CHARACTER_ERR"
	case NoModificationAllowedErr:
		return "NO_MODIFICATION_ALLOWED_ERR"
	case NamespaceErr:
		return "NAMESPACE_ERR"
	case NotFoundErr:
		return "NOT_FOUND_ERR"
	case NotSupportedErr:
		return "NOT_SUPPORTED_ERR"
	case InuseAttributeErr:
		return "INUSE_ATTRIBUTE_ERR"
	default:
		return "UNKNOWN_ERR"
	}
}

// DOMException wraps a structural-violation code with contextual message,
// surfaced directly to callers of mutating Node operations (see
// wrapError/SyntaxError in the teacher's error.go for the shape this mirrors
// for the XML-syntax case).
type DOMException struct {
	Code ExceptionCode
	Msg  string
}

func (e *DOMException) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("dom: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("dom: %s", e.Code)
}

func newDOMException(code ExceptionCode, msg string) *DOMException {
	return &DOMException{Code: code, Msg: msg}
}

// IsDOMException reports whether err is a *DOMException with the given code.
func IsDOMException(err error, code ExceptionCode) bool {
	de, ok := err.(*DOMException)
	return ok && de.Code == code
}

// Severity classifies a DOMError (spec §7).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// DOMError is a processing-time issue routed through the configured error
// handler (spec §4.2, §7). Unlike DOMException, a DOMError does not by
// itself unwind the call stack; the handler's return value (or a severity's
// default) decides whether processing continues.
type DOMError struct {
	Severity Severity
	Type     string // e.g. "wf-invalid-character", "cdata-section-splitted"
	Message  string
	Related  Node
	Location Location
}

func (e *DOMError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("dom: %s error at %d:%d [%s]: %s", e.Severity, e.Location.Line, e.Location.Column, e.Type, e.Message)
	}
	return fmt.Sprintf("dom: %s [%s]: %s", e.Severity, e.Type, e.Message)
}

// defaultContinues reports the default continuation decision for a
// DOMError's severity when no handler is installed (spec §7: fatal always
// aborts, error defaults to abort, warning defaults to continue). An
// installed handler's boolean result replaces it for non-fatal severities.
func (e *DOMError) defaultContinues() bool {
	switch e.Severity {
	case SeverityWarning:
		return true
	case SeverityFatal:
		return false
	default: // SeverityError
		return false
	}
}

// ErrorHandler is the error-handler contract (spec §4.2). Returning true
// requests continuation, false requests abort; for fatal severities the
// abort is unconditional regardless of the return value.
type ErrorHandler func(*DOMError) bool

// Halt is returned (wrapped) by processing components when an error
// handler's decision (or the default) aborts processing, or when a parser
// or serializer filter returns FilterInterrupt. It carries whatever partial
// result had been produced, per §5 "Cancellation": "the partial tree
// produced so far is returned." Processing components check for it after
// each content-loop iteration rather than using exceptions for control flow
// (design note §9).
type Halt struct {
	Err *DOMError
}

func (h *Halt) Error() string {
	if h.Err != nil {
		return "dom: processing halted: " + h.Err.Error()
	}
	return "dom: processing halted"
}

func (h *Halt) Unwrap() error { return h.Err }

// reportError runs the configured handler for err, falling back to the
// severity default when no handler is installed. It returns a *Halt when
// processing must stop.
func reportError(handler ErrorHandler, err *DOMError) *Halt {
	cont := err.defaultContinues()
	if handler != nil {
		decided := handler(err)
		if err.Severity != SeverityFatal {
			cont = decided
		}
	}
	if !cont {
		return &Halt{Err: err}
	}
	return nil
}

// Location records the row/column a node (or a diagnostic) originated from
// in its source text (spec §3: "source location (row, column)").
type Location struct {
	Line   int
	Column int
}
