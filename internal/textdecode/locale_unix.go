//go:build !windows
// +build !windows

package textdecode

import (
	"golang.org/x/text/encoding/unicode"
)

// localeDecoder in Unix OS is an UTF8 decoder.
func localeDecoder() decoder {
	return unicode.UTF8.NewDecoder()
}
