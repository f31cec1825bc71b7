package typography

import "testing"

func TestApplyQuotes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`She said "hello" to me`, "She said \u201chello\u201d to me"},
		{`"Start of line"`, "\u201cStart of line\u201d"},
		{`("quoted")`, "(\u201cquoted\u201d)"},
		{`It's Aaqil's note`, "It\u2019s Aaqil\u2019s note"},
		{`'single quoted'`, "\u2018single quoted\u2019"},
	}
	for _, tc := range cases {
		if got := Apply(tc.in); got != tc.want {
			t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyDashesAndEllipses(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"wait -- what", "wait \u2014 what"},
		{"to be continued...", "to be continued\u2026"},
		{"to be continued. . .", "to be continued\u2026"},
		{"--- stays a rule ---", "--- stays a rule ---"},
		{"a-b stays hyphenated", "a-b stays hyphenated"},
		{"v1.2.3 keeps its dots", "v1.2.3 keeps its dots"},
	}
	for _, tc := range cases {
		if got := Apply(tc.in); got != tc.want {
			t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplySkipsCodeSpans(t *testing.T) {
	in := "run `cmd --flag \"x\"` then \"quote\""
	want := "run `cmd --flag \"x\"` then \u201cquote\u201d"
	if got := Apply(in); got != want {
		t.Fatalf("Apply(%q) = %q, want %q", in, got, want)
	}
}

func TestApplySkipsFencedBlocks(t *testing.T) {
	in := "before \"q\"\n```\nif a -- b { \"raw\" }\n```\nafter \"q\""
	got := Apply(in)
	want := "before \u201cq\u201d\n```\nif a -- b { \"raw\" }\n```\nafter \u201cq\u201d"
	if got != want {
		t.Fatalf("fenced block transformed:\n got %q\nwant %q", got, want)
	}
}

func TestApplyIdempotent(t *testing.T) {
	inputs := []string{
		`She said "hello" -- then left... It's done.`,
		"plain text",
		"```\ncode \"stays\"\n```",
		"mixed `code \"x\"` and \"quotes\" and 'singles'",
		"already \u201ccurly\u201d \u2014 and \u2026",
		"",
	}
	for _, in := range inputs {
		once := Apply(in)
		twice := Apply(once)
		if once != twice {
			t.Fatalf("not idempotent for %q:\n once %q\ntwice %q", in, once, twice)
		}
	}
}
