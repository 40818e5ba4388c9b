package serializer

import (
	"io"
)

// buffer is the output accumulator spec §4.5 describes: "Maintains a
// deferred separator string that is emitted before the next non-empty
// write." A pretty-printing or canonical-form pass sets a separator (a
// newline, an indent) without yet knowing whether the next node will
// produce any output at all (a filtered-out node, an empty text run);
// deferring the write until something real follows avoids dangling
// whitespace when it doesn't.
type buffer struct {
	w   io.Writer
	sep string
	err error
}

func newBuffer(w io.Writer) *buffer { return &buffer{w: w} }

// setSeparator queues s to be emitted immediately before the next non-empty
// write, replacing (not appending to) any separator already queued.
func (b *buffer) setSeparator(s string) { b.sep = s }

func (b *buffer) flushSeparator() {
	if b.sep == "" || b.err != nil {
		return
	}
	s := b.sep
	b.sep = ""
	b.raw(s)
}

func (b *buffer) raw(s string) {
	if b.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(b.w, s); err != nil {
		b.err = err
	}
}

// writeRaw emits s verbatim (after flushing any pending separator), with no
// escaping: markup punctuation (tag delimiters, "<![CDATA[", and the like).
func (b *buffer) writeRaw(s string) {
	if s == "" {
		return
	}
	b.flushSeparator()
	b.raw(s)
}

// write emits already-escaped text, flushing any pending separator first
// but only if text is non-empty, matching the deferred-separator contract.
func (b *buffer) write(text string) {
	if text == "" {
		return
	}
	b.flushSeparator()
	b.raw(text)
}
