package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Clean Water", "Clean Water"},
		{"ampersand survives", "Tom & Jerry", "Tom & Jerry"},
		{"less-than survives", "a < b", "a < b"},
		{"tags stripped", "<b>Bold</b> &amp; plain", "Bold & plain"},
		{"script dropped", "<script>bad()</script>Hello", "Hello"},
		{"encoded script", "&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"double encoded script", "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;", ""},
		{"encoded handler", "&lt;img src=x onerror=alert(1)&gt;Hi", "Hi"},
		{"numeric entities", "&#60;script&#62;alert(1)&#60;/script&#62;ok", "ok"},
		{"trimmed", "  Org A  ", "Org A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<script")
			assert.NotContains(t, got, "<img")
		})
	}
}
