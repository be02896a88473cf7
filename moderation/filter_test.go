package moderation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMaskReplacesEveryOccurrenceAnyCasing(t *testing.T) {
	got := Mask("FuCk you fUcK")
	want := "**** you ****"
	if got != want {
		t.Fatalf("Mask = %q, want %q", got, want)
	}
}

func TestMaskPreservesLength(t *testing.T) {
	inputs := []string{
		"shit happens",
		"no profanity here",
		"BITCH bitch BiTcH",
		"héllo fuck wörld",
	}
	for _, in := range inputs {
		got := Mask(in)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
			t.Fatalf("Mask(%q) changed length: %q", in, got)
		}
	}
}

func TestMaskAsteriskRunMatchesWordLength(t *testing.T) {
	got := Mask("asshole")
	if got != "*******" {
		t.Fatalf("Mask = %q, want 7 asterisks", got)
	}
}

func TestMaskHandlesEmbeddedWords(t *testing.T) {
	// "fuck" sits inside "motherfucker" and must be masked where it occurs.
	got := Mask("motherfucker")
	if strings.Contains(strings.ToLower(got), "fuck") {
		t.Fatalf("embedded word survived masking: %q", got)
	}
	if len(got) != len("motherfucker") {
		t.Fatalf("masking shifted length: %q", got)
	}
}

func TestMaskLeavesNoListedWordBehind(t *testing.T) {
	in := "fuck shit bitch asshole puta mierda pendejo cabron motherfucker"
	got := strings.ToLower(Mask(in))
	for _, word := range badWords {
		if strings.Contains(got, word) {
			t.Fatalf("%q survived masking: %q", word, got)
		}
	}
}

func TestMaskTruncatesLongMessages(t *testing.T) {
	in := strings.Repeat("a", 300)
	got := Mask(in)
	if utf8.RuneCountInString(got) != MaxMessageLen {
		t.Fatalf("Mask length = %d, want %d", utf8.RuneCountInString(got), MaxMessageLen)
	}
}

func TestMaskEmptyInput(t *testing.T) {
	if got := Mask(""); got != "" {
		t.Fatalf("Mask(\"\") = %q", got)
	}
}

func TestContainsViolationCaseInsensitive(t *testing.T) {
	if !ContainsViolation("well ShIt") {
		t.Fatal("expected violation for mixed casing")
	}
	if ContainsViolation("perfectly polite") {
		t.Fatal("unexpected violation for clean text")
	}
}

func TestContainsViolationScansBeyondTruncation(t *testing.T) {
	// The warning decision looks at the original text, not the 160-char cut.
	in := strings.Repeat("a", MaxMessageLen) + " fuck"
	if !ContainsViolation(in) {
		t.Fatal("expected violation past the truncation bound")
	}
	if strings.Contains(strings.ToLower(Mask(in)), "fuck") {
		t.Fatal("masked output should not carry the trailing word")
	}
}

func TestContainsViolationEmpty(t *testing.T) {
	if ContainsViolation("") {
		t.Fatal("empty text must not violate")
	}
}
