package util

import (
	"bytes"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestValidateMimeType(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		allowed []string
		wantErr bool
	}{
		{"png accepted as image", pngHeader, []string{MimeImage}, false},
		{"plain text rejected as image", []byte("just some text"), []string{MimeImage}, true},
		{"exact type match", []byte("just some text"), []string{"text/plain; charset=utf-8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := ValidateMimeType(bytes.NewReader(tt.content), tt.allowed)
			if tt.wantErr {
				if err == nil {
					t.Errorf("got mime %q, expected error", mime)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/png") {
		t.Error("image/png should be an image")
	}
	if IsImage("application/pdf") {
		t.Error("application/pdf should not be an image")
	}
}
