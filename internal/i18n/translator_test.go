package i18n

import "testing"

func TestCatalogMatchAndTranslate(t *testing.T) {
	c, err := Load("en_IN")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := c.Match("hi-IN,hi;q=0.9,en;q=0.8"); got != "hi_IN" {
		t.Fatalf("Match hindi = %q", got)
	}
	if got := c.Match(""); got != "en_IN" {
		t.Fatalf("Match empty = %q", got)
	}
	if got := c.Match("fr-FR"); got != "en_IN" {
		t.Fatalf("Match unsupported = %q", got)
	}

	en := c.For("en_IN")
	if en.T("CS_NA") != "NA" {
		t.Fatalf("CS_NA = %q", en.T("CS_NA"))
	}
	if en.T("UNKNOWN_KEY") != "UNKNOWN_KEY" {
		t.Fatalf("unknown key should echo")
	}

	hi := c.For("hi_IN")
	if hi.T("MT_RECEIPT_TITLE") != en.T("MT_RECEIPT_TITLE") {
		t.Fatalf("missing hindi key should fall back to english")
	}
}

func TestParseRejectsMissingFallback(t *testing.T) {
	if _, err := Parse([]byte("hi_IN:\n  CS_NA: x\n"), "en_IN"); err == nil {
		t.Fatalf("expected error for missing fallback locale")
	}
}
