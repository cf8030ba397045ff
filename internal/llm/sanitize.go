package llm

import (
	"regexp"
	"strings"
)

// Providers are instructed to emit plain text but inconsistently add
// HTML and Markdown formatting anyway. Sanitize strips it all. The
// function is idempotent: running it twice yields the same output.

type replacement struct {
	re   *regexp.Regexp
	with string
}

var sanitizeRules = []replacement{
	{regexp.MustCompile(`(?s)<strong>(.*?)</strong>`), "$1"},
	{regexp.MustCompile(`(?s)<b>(.*?)</b>`), "$1"},
	{regexp.MustCompile(`(?s)<em>(.*?)</em>`), "$1"},
	{regexp.MustCompile(`(?s)<i>(.*?)</i>`), "$1"},
	{regexp.MustCompile(`(?s)<u>(.*?)</u>`), "$1"},
	{regexp.MustCompile(`(?s)<code>(.*?)</code>`), "$1"},
	{regexp.MustCompile(`(?s)<pre>(.*?)</pre>`), "$1"},
	{regexp.MustCompile(`(?s)<h[1-6]>(.*?)</h[1-6]>`), "$1"},
	{regexp.MustCompile(`</?[uo]l>`), ""},
	{regexp.MustCompile(`(?s)<li>(.*?)</li>`), "- $1"},
	{regexp.MustCompile(`(?s)<a href="(.*?)">(.*?)</a>`), "$2"},
	{regexp.MustCompile(`<[^>]*>`), ""},
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile(`(?s)\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile(`__(.*?)__`), "$1"},
	{regexp.MustCompile(`_(.*?)_`), "$1"},
	{regexp.MustCompile("~~(.*?)~~"), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^\)]+\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}[ \t]+`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`), "- "},
	{regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`), ""},
}

var (
	lineEdgeWS = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// Sanitize strips HTML tags and Markdown syntax from provider output,
// trims line-edge whitespace, and collapses runs of three or more
// newlines to a single blank line.
func Sanitize(text string) string {
	if text == "" {
		return text
	}
	out := text
	for _, rule := range sanitizeRules {
		out = rule.re.ReplaceAllString(out, rule.with)
	}
	out = lineEdgeWS.ReplaceAllString(out, "")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
