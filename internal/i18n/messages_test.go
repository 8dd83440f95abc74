package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch_DefaultsToPolish(t *testing.T) {
	for _, h := range []string{"", "zz;;;", "de-DE"} {
		if got := Match(h); got != language.Polish {
			t.Fatalf("Match(%q) = %v, want Polish", h, got)
		}
	}
}

func TestMatch_English(t *testing.T) {
	for _, h := range []string{"en", "en-US,en;q=0.9", "en-GB;q=0.8,pl;q=0.5"} {
		got := Match(h)
		if got != language.English {
			t.Fatalf("Match(%q) = %v, want English", h, got)
		}
	}
}

func TestMatch_PolishPreferred(t *testing.T) {
	if got := Match("pl-PL,pl;q=0.9,en;q=0.5"); got != language.Polish {
		t.Fatalf("Match = %v, want Polish", got)
	}
}

func TestT_KnownMessages(t *testing.T) {
	if got := T(language.Polish, MsgAlreadySubmitted); got != "Formularz został już wysłany z tego adresu IP" {
		t.Fatalf("unexpected Polish message: %q", got)
	}
	if got := T(language.English, MsgAlreadySubmitted); got != "The form has already been submitted from this IP address" {
		t.Fatalf("unexpected English message: %q", got)
	}
}

func TestT_Fallbacks(t *testing.T) {
	// Unknown language falls back to the default catalog.
	if got := T(language.German, MsgSubmitted); got != T(language.Polish, MsgSubmitted) {
		t.Fatalf("unknown language must fall back to default, got %q", got)
	}
	// Unknown key falls back to the key itself.
	if got := T(language.Polish, Key("nope")); got != "nope" {
		t.Fatalf("unknown key must fall back to itself, got %q", got)
	}
}

func TestCatalogs_Complete(t *testing.T) {
	keys := []Key{
		MsgEmailInvalid, MsgFileMissing, MsgFileNotPDF, MsgFileTooLarge,
		MsgCaptchaRequired, MsgCaptchaFailed, MsgAlreadySubmitted,
		MsgUploadFailed, MsgSaveFailed, MsgUnexpected, MsgSubmitted,
	}
	for _, tag := range supported {
		cat := catalogs[tag]
		for _, k := range keys {
			if cat[k] == "" {
				t.Fatalf("catalog %v missing message for %q", tag, k)
			}
		}
	}
}
