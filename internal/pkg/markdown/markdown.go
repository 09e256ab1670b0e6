// Package markdown renders service agreements and other formatted
// content for the client-facing views.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var policy = bluemonday.UGCPolicy()

// ToHTML converts markdown to sanitized HTML. The output is safe to embed
// in rendered pages.
func ToHTML(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to html: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

var (
	reHeader    = regexp.MustCompile(`#+\s+(.*)`)
	reBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic    = regexp.MustCompile(`\*(.*?)\*`)
	reImage     = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	reLink      = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	reCodeBlock = regexp.MustCompile("(?s)```.*?```")
	reCode      = regexp.MustCompile("`(.*?)`")
	reSpaces    = regexp.MustCompile(`\s+`)
)

// PlainText strips markdown formatting for summaries and meta
// descriptions, truncating to max runes with an ellipsis.
func PlainText(source string, max int) string {
	if source == "" {
		return ""
	}

	text := reCodeBlock.ReplaceAllString(source, "")
	text = reHeader.ReplaceAllString(text, "$1")
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reImage.ReplaceAllString(text, "$1")
	text = reLink.ReplaceAllString(text, "$1")
	text = reCode.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))

	if max > 0 {
		runes := []rune(text)
		if len(runes) > max {
			text = strings.TrimSpace(string(runes[:max])) + "..."
		}
	}
	return text
}
