package analyzer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var shortcodePattern = regexp.MustCompile(`\[.*?\]`)

// normalizeText turns raw post content into plain, single-spaced text.
// Passes repeat until the output is stable so that normalizing twice is a no-op.
func normalizeText(raw string) string {
	current := raw
	for {
		next := normalizeOnce(current)
		if next == current {
			return current
		}
		current = next
	}
}

func normalizeOnce(raw string) string {
	if raw == "" {
		return ""
	}
	text := stripMarkup(raw)
	text = decodeEntities(text)
	text = collapseWhitespace(text)
	text = shortcodePattern.ReplaceAllString(text, "")
	text = filterRunes(text)
	return collapseWhitespace(text)
}

// stripMarkup keeps the text nodes of an HTML fragment
func stripMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return doc.Text()
}

// decodeEntities handles double-encoded input such as "&amp;uuml;"
func decodeEntities(text string) string {
	for strings.Contains(text, "&") {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}
	return text
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func isAllowedRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) || unicode.IsPunct(r)
}

// filterRunes composes decomposed umlauts and drops symbols, marks and controls
func filterRunes(text string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(func(r rune) bool {
		return !isAllowedRune(r)
	})))
	out, _, err := transform.String(t, text)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isAllowedRune(r) {
				return r
			}
			return -1
		}, norm.NFC.String(text))
	}
	return out
}
