package analyzer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minWordRunes     = 2
	minSentenceRunes = 10
	complexSyllables = 3
)

var sentenceBoundary = regexp.MustCompile(`[.!?…]+`)

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// countRunes counts the runes of s that satisfy keep
func countRunes(s string, keep func(rune) bool) int {
	n := 0
	for _, r := range s {
		if keep(r) {
			n++
		}
	}
	return n
}

func keepRunes(s string, keep func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func countWords(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		if countRunes(token, isLetterOrDigit) >= minWordRunes {
			count++
		}
	}
	return count
}

// countSentences never returns less than 1 for text with content, fragments
// too short to be a sentence are ignored.
func countSentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	valid := 0
	for _, fragment := range sentenceBoundary.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(fragment)) > minSentenceRunes {
			valid++
		}
	}
	return max(1, valid)
}

// countParagraphs works on the raw content, line breaks are gone after normalization
func countParagraphs(raw string) int {
	count := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// charCount is the number of non-whitespace runes
func charCount(text string) int {
	return countRunes(text, func(r rune) bool { return !unicode.IsSpace(r) })
}

func countPunctuation(text string) int {
	return countRunes(text, unicode.IsPunct)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'ä', 'ö', 'ü', 'y':
		return true
	}
	return false
}

// countSyllables estimates German syllables from vowel groups
func countSyllables(word string) int {
	lower := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range lower {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(lower, "e") && count > 1 {
		count--
	}
	return max(1, count)
}

func countComplexWords(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		word := keepRunes(token, unicode.IsLetter)
		if word == "" {
			continue
		}
		if countSyllables(word) > complexSyllables {
			count++
		}
	}
	return count
}
