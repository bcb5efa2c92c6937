package analyzer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultKeywordLimit = 10
	minKeywordRunes     = 3
)

const (
	cantonWeight    = 5
	cityWeight      = 3
	swissTermWeight = 2
	swissFocusScore = 10
)

// extractKeywords returns the most frequent non-stopwords. Words with equal
// frequency keep the order in which they first appear.
func extractKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	freq := make(map[string]int)
	var order []string
	for _, token := range strings.Fields(strings.ToLower(text)) {
		word := keepRunes(token, unicode.IsLetter)
		if utf8.RuneCountInString(word) < minKeywordRunes {
			continue
		}
		if _, stop := germanStopwords[word]; stop {
			continue
		}
		if freq[word] == 0 {
			order = append(order, word)
		}
		freq[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	keywords := make([]string, len(order))
	copy(keywords, order)
	return keywords
}

func identifyBusinessThemes(text string) []ThemeCount {
	lower := strings.ToLower(text)
	themes := make([]ThemeCount, 0, len(businessThemes))
	for _, t := range businessThemes {
		total := 0
		for _, marker := range t.markers {
			total += strings.Count(lower, marker)
		}
		if total > 0 {
			themes = append(themes, ThemeCount{Theme: t.name, Count: total})
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Count > themes[j].Count
	})
	return themes
}

func detectSwissRegionalContent(text string) RegionalInfo {
	lower := strings.ToLower(text)
	info := emptyRegionalInfo()

	info.Cantons = appendFound(info.Cantons, lower, swissCantons)
	info.Cities = appendFound(info.Cities, lower, swissCities)
	info.SwissTerms = appendFound(info.SwissTerms, lower, swissTerms)

	info.RegionalScore = cantonWeight*len(info.Cantons) +
		cityWeight*len(info.Cities) +
		swissTermWeight*len(info.SwissTerms)
	info.IsSwissFocused = info.RegionalScore >= swissFocusScore
	return info
}

func appendFound(found []string, lower string, names []string) []string {
	for _, name := range names {
		if strings.Contains(lower, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}
