package utils_test

import (
	"testing"

	"github.com/deppfellow/job-board/internal/lib/utils"
)

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"a@acme.com":      "a@acme.com",
		"  A@Acme.COM \n": "a@acme.com",
		"":                "",
	}
	for in, want := range tests {
		if got := utils.NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNilIfBlank(t *testing.T) {
	str := func(s string) *string { return &s }

	if utils.NilIfBlank(nil) != nil {
		t.Error("nil input should stay nil")
	}
	if utils.NilIfBlank(str("   ")) != nil {
		t.Error("blank input should become nil")
	}
	if got := utils.NilIfBlank(str("  $100k ")); got == nil || *got != "$100k" {
		t.Errorf("NilIfBlank = %v, want $100k", got)
	}
}
