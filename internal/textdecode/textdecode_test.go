package textdecode_test

import (
	"testing"

	"github.com/ghostinator/netdog/internal/textdecode"
)

func TestBytes_newline(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
	}{
		{"CRLF", "hello\r\n\r\nworld\r\n", "hello\n\nworld\n"},
		{"CR", "hello\r\rworld\r", "hello\n\nworld\n"},
		{"LF", "hello\n\nworld\n", "hello\n\nworld\n"},
		{"mixed", "hello\n\r\r\nworld\r\n", "hello\n\n\nworld\n"},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			output, err := textdecode.Bytes([]byte(tt.Input))
			if err != nil {
				t.Errorf("failed to decode %#v: %s", tt.Input, err)
			} else if output != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, output)
			}
		})
	}
}

func TestBytes_bom(t *testing.T) {
	tests := []struct {
		Name   string
		Input  []byte
		Output string
	}{
		{"utf8bom", []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}, "ok"},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 'o', 0x00, 'k'}, "ok"},
		{"utf16le", []byte{0xFF, 0xFE, 'o', 0x00, 'k', 0x00}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			output, err := textdecode.Bytes(tt.Input)
			if err != nil {
				t.Errorf("failed to decode: %s", err)
			} else if output != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, output)
			}
		})
	}
}
