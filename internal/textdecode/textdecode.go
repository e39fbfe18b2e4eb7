package textdecode

import (
	"strings"
)

// decoder is an interface for text decoding.
type decoder interface {
	Bytes(b []byte) ([]byte, error)
}

// Bytes decodes the output of an OS command to a string.
//
// The encoding is guessed from the BOM if the text has one, otherwise the
// locale charset of the OS is used. Newlines are normalized to LF.
func Bytes(b []byte) (string, error) {
	dec := localeDecoder()
	b, dec = bomOverride(b, dec)
	s, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return normalizeNewline(string(s)), nil
}

func normalizeNewline(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
