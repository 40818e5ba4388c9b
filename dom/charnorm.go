package dom

import "golang.org/x/text/unicode/norm"

// CharacterNormalizer backs the "normalize-characters" and
// "check-character-normalization" DOMConfiguration parameters (spec §4.2).
// Given a chunk of character data, Normalize returns its normalized form;
// normalizeDocument (normalize.go) compares the result against the
// original to decide whether a check-character-normalization-failure
// DOMError is due, and replaces the data outright when normalize-characters is on.
type CharacterNormalizer interface {
	Normalize(s string) string
}

// nfcCharacterNormalizer is the default CharacterNormalizer, backed by
// golang.org/x/text/unicode/norm's Unicode Normalization Form C.
type nfcCharacterNormalizer struct{}

func (nfcCharacterNormalizer) Normalize(s string) string {
	return norm.NFC.String(s)
}
