package search

import "testing"

func TestSanitizeStripsMetaCharsAndCollapsesWhitespace(t *testing.T) {
	cases := []struct{ in, want string }{
		{`test*query`, "testquery"},
		{`"quoted"`, "quoted"},
		{"a    b   c", "a b c"},
		{"  leading and trailing  ", "leading and trailing"},
		{"a(b)c^d@e~f-g:h", "abcdefgh"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeIdempotentP7(t *testing.T) {
	inputs := []string{`test*query "with" (meta) ^chars@~-`, "plain text", ""}
	for _, q := range inputs {
		once := Sanitize(q)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", q, once, twice)
		}
	}
}

func TestAutoPrefixAppliesOnTrailingUnderscoreOrHyphen(t *testing.T) {
	cases := []struct {
		original string
		want     string
	}{
		{"test_", "test*"},
		{"test-", "test*"},
		{"test", "test"},
		{"multi word_", "multi word*"},
	}
	for _, c := range cases {
		sanitized := Sanitize(c.original)
		got := AutoPrefix(c.original, sanitized)
		if got != c.want {
			t.Errorf("AutoPrefix(%q) = %q, want %q", c.original, got, c.want)
		}
	}
}

func TestAutoPrefixNoOpOnEmptySanitized(t *testing.T) {
	if got := AutoPrefix("***_", ""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct{ in, want string }{
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, c := range cases {
		if got := EscapeLike(c.in); got != c.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
