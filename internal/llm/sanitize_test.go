package llm

import "testing"

func TestSanitizeStripsHTMLAndMarkdown(t *testing.T) {
	in := "<h2>ניתוח היתכנות</h2>\n\n**חוזקות:**\n* <b>צוות מנוסה</b>\n* שוק `גדול`\n\n\n\n[מקור](https://example.com)"
	got := Sanitize(in)
	want := "ניתוח היתכנות\n\nחוזקות:\n- צוות מנוסה\n- שוק גדול\n\nמקור"
	if got != want {
		t.Fatalf("Sanitize mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	in := "## כותרת\n1. פריט **מודגש**\n<li>שורה</li>"
	once := Sanitize(in)
	twice := Sanitize(once)
	if once != twice {
		t.Fatalf("Sanitize not idempotent:\nonce  %q\ntwice %q", once, twice)
	}
}

func TestSanitizeKeepsPlainText(t *testing.T) {
	in := "ציון סופי: 85/105"
	if got := Sanitize(in); got != in {
		t.Fatalf("plain text should pass untouched, got %q", got)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
