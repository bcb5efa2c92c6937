package analyzer

import (
	"fmt"
	"math"
)

const (
	MaxSEOScore = 100

	markGood = "✅"
	markWarn = "⚠️"
	markBad  = "❌"
)

// band awards points to values at or above min. Bands are ordered from the
// highest threshold down and only the first match applies.
type band struct {
	min    int
	points int
	mark   string
}

var (
	lengthBands = []band{
		{min: 400, points: 30, mark: markGood},
		{min: 250, points: 20, mark: markWarn},
		{min: 100, points: 10, mark: markWarn},
	}
	readabilityBands = []band{
		{min: 80, points: 25, mark: markGood},
		{min: 60, points: 20, mark: markGood},
		{min: 40, points: 10, mark: markWarn},
	}
	businessBands = []band{
		{min: 4, points: 25, mark: markGood},
		{min: 2, points: 20, mark: markGood},
		{min: 1, points: 10, mark: markWarn},
	}
	regionalBands = []band{
		{min: 10, points: 20, mark: markGood},
		{min: 5, points: 15, mark: markGood},
		{min: 2, points: 10, mark: markWarn},
	}
)

func pickBand(bands []band, value int) (int, string) {
	for _, b := range bands {
		if value >= b.min {
			return b.points, b.mark
		}
	}
	return 0, markBad
}

// CalculateSEOScore combines length, readability, business and regional
// relevance of an analysis into a 0-100 score with grade and advice.
func CalculateSEOScore(analysis ContentAnalysis) SEOScoreReport {
	report := SEOScoreReport{
		MaxScore:        MaxSEOScore,
		Details:         make([]string, 0, 4),
		Recommendations: []string{},
	}

	themeCount := len(analysis.BusinessThemes)
	regional := analysis.RegionalInfo.RegionalScore

	points, mark := pickBand(lengthBands, analysis.WordCount)
	report.Score += points
	report.Details = append(report.Details,
		fmt.Sprintf("%s Content-Länge: %d Wörter (%d/30)", mark, analysis.WordCount, points))

	points, mark = pickBand(readabilityBands, analysis.ReadabilityScore)
	report.Score += points
	report.Details = append(report.Details,
		fmt.Sprintf("%s Lesbarkeit: %d/100 (%d/25)", mark, analysis.ReadabilityScore, points))

	points, mark = pickBand(businessBands, themeCount)
	report.Score += points
	report.Details = append(report.Details,
		fmt.Sprintf("%s Business-Relevanz: %d Themen (%d/25)", mark, themeCount, points))

	points, mark = pickBand(regionalBands, regional)
	report.Score += points
	report.Details = append(report.Details,
		fmt.Sprintf("%s Regionale Relevanz: Score %d (%d/20)", mark, regional, points))

	report.Score = clampScore(report.Score)
	report.Percentage = int(math.Round(float64(report.Score) / float64(report.MaxScore) * 100))
	report.Grade = gradeFor(report.Score)

	if analysis.WordCount < 300 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Erweitern Sie den Inhalt auf mindestens 300 Wörter (aktuell: %d).", analysis.WordCount))
	}
	if analysis.ReadabilityScore < 60 {
		report.Recommendations = append(report.Recommendations,
			"Vereinfachen Sie die Sprache: kürzere Wörter und klarere Sätze verbessern die Lesbarkeit.")
	}
	if themeCount < 2 {
		report.Recommendations = append(report.Recommendations,
			"Ergänzen Sie relevante Business-Begriffe wie Service, Qualität oder Lösungen.")
	}
	if regional < 5 {
		report.Recommendations = append(report.Recommendations,
			"Fügen Sie regionale Bezüge hinzu, zum Beispiel Kantone, Städte oder einen Schweiz-Bezug.")
	}
	if analysis.AvgSentenceLength > 25 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Kürzen Sie lange Sätze (Durchschnitt: %.1f Wörter pro Satz).", analysis.AvgSentenceLength))
	}

	return report
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	}
	return "F"
}
