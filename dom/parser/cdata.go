package parser

import (
	"bytes"
	"io"
)

// cdataTee records every byte the decoder consumes from the underlying
// reader as it consumes it, so the content loop can look back at the raw
// source span a CharData token came from (spec §4.4's CDATA responsibility:
// encoding/xml's Decoder.Token collapses "<![CDATA[...]]>" into an ordinary
// CharData token indistinguishable from surrounding text, so the only way to
// recover the boundary without a full replacement lexer is to inspect the
// bytes the decoder actually read for that one token).
//
// The recorded span is only trustworthy when the decoder never switches
// readers mid-stream (xml.Decoder.CharsetReader swaps d.r to a transcoding
// reader for any declared non-UTF-8/US-ASCII encoding): Decoder.InputOffset
// counts bytes read from whatever reader is current, but a transcoding
// reader can read a different number of source bytes than it emits. wasCDATA
// bounds-checks every offset against the tee's buffer and simply declines to
// recognize CDATA when the offsets don't fit, falling back to the prior
// CDATA-as-Text behavior for that token.
type cdataTee struct {
	r   io.Reader
	buf []byte
}

func (t *cdataTee) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.buf = append(t.buf, p[:n]...)
	}
	return n, err
}

var cdataOpen = []byte("<![CDATA[")
var cdataClose = []byte("]]>")

// wasCDATA reports whether the raw source bytes between start and end (an
// xml.Decoder.InputOffset span bracketing one returned CharData token)
// are themselves exactly one "<![CDATA[...]]>" section. encoding/xml
// returns a CDATA section as its own CharData token, separate from any
// text next to it, so a section is recognized whether or not text
// borders it.
func (t *cdataTee) wasCDATA(start, end int64) bool {
	if t == nil || start < 0 || end < start || end > int64(len(t.buf)) {
		return false
	}
	span := t.buf[start:end]
	if len(span) < len(cdataOpen)+len(cdataClose) {
		return false
	}
	return bytes.HasPrefix(span, cdataOpen) && bytes.HasSuffix(span, cdataClose)
}
