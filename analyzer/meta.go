package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minMetaTitle       = 30
	maxMetaTitle       = 60
	minMetaDescription = 120
	maxMetaDescription = 160
	maxKeywordDensity  = 3.0
)

// EvaluateMeta checks a meta title, description and focus keyword against
// the analyzed content they were generated for.
func EvaluateMeta(meta MetaSuggestion, analysis ContentAnalysis) MetaReport {
	title := strings.TrimSpace(meta.Title)
	description := strings.TrimSpace(meta.Description)
	keyword := strings.ToLower(strings.TrimSpace(meta.FocusKeyword))

	report := MetaReport{
		TitleLength:       utf8.RuneCountInString(title),
		DescriptionLength: utf8.RuneCountInString(description),
		Recommendations:   []string{},
	}

	switch {
	case report.TitleLength == 0:
		report.Recommendations = append(report.Recommendations, "Fügen Sie einen Meta-Titel hinzu.")
	case report.TitleLength < minMetaTitle:
		report.Score += 15
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Der Meta-Titel ist zu kurz (%d Zeichen, empfohlen %d-%d).", report.TitleLength, minMetaTitle, maxMetaTitle))
	case report.TitleLength > maxMetaTitle:
		report.Score += 25
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Der Meta-Titel ist zu lang (%d Zeichen, empfohlen %d-%d).", report.TitleLength, minMetaTitle, maxMetaTitle))
	default:
		report.Score += 35
	}

	switch {
	case report.DescriptionLength == 0:
		report.Recommendations = append(report.Recommendations, "Fügen Sie eine Meta-Beschreibung hinzu.")
	case report.DescriptionLength < minMetaDescription || report.DescriptionLength > maxMetaDescription:
		report.Score += 15
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Die Meta-Beschreibung sollte %d-%d Zeichen lang sein (aktuell: %d).",
				minMetaDescription, maxMetaDescription, report.DescriptionLength))
	default:
		report.Score += 35
	}

	if keyword == "" {
		report.Recommendations = append(report.Recommendations, "Definieren Sie ein Fokus-Keyword.")
		return report
	}

	report.KeywordInTitle = strings.Contains(strings.ToLower(title), keyword)
	report.KeywordInDescription = strings.Contains(strings.ToLower(description), keyword)
	occurrences := strings.Count(strings.ToLower(analysis.Content), keyword)
	report.KeywordInContent = occurrences > 0
	if analysis.WordCount > 0 {
		report.KeywordDensity = float64(occurrences) / float64(analysis.WordCount) * 100
	}

	if report.KeywordInTitle {
		report.Score += 10
	} else {
		report.Recommendations = append(report.Recommendations, "Verwenden Sie das Fokus-Keyword im Meta-Titel.")
	}
	if report.KeywordInDescription {
		report.Score += 10
	} else {
		report.Recommendations = append(report.Recommendations, "Verwenden Sie das Fokus-Keyword in der Meta-Beschreibung.")
	}
	if report.KeywordInContent {
		report.Score += 10
	} else {
		report.Recommendations = append(report.Recommendations, "Das Fokus-Keyword kommt im Inhalt nicht vor.")
	}
	if report.KeywordDensity > maxKeywordDensity {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Die Keyword-Dichte ist mit %.1f%% zu hoch (maximal %.0f%%).", report.KeywordDensity, maxKeywordDensity))
	}

	return report
}
