package analyzer

import (
	"strings"
	"testing"
)

func themesOf(n int) []ThemeCount {
	themes := make([]ThemeCount, n)
	for i := range themes {
		themes[i] = ThemeCount{Theme: businessThemes[i].name, Count: 1}
	}
	return themes
}

func TestCalculateSEOScore(t *testing.T) {
	testCases := []struct {
		name      string
		analysis  ContentAnalysis
		wantScore int
		wantGrade string
		wantRecs  int
	}{
		{
			name:      "Empty analysis",
			analysis:  emptyAnalysis("", "", 0),
			wantScore: 0,
			wantGrade: "F",
			wantRecs:  4,
		},
		{
			name: "Perfect",
			analysis: ContentAnalysis{
				WordCount:         800,
				ReadabilityScore:  85,
				BusinessThemes:    themesOf(4),
				RegionalInfo:      RegionalInfo{RegionalScore: 18},
				AvgSentenceLength: 12,
			},
			wantScore: 100,
			wantGrade: "A+",
			wantRecs:  0,
		},
		{
			name: "Exactly ninety",
			analysis: ContentAnalysis{
				WordCount:         450,
				ReadabilityScore:  70,
				BusinessThemes:    themesOf(2),
				RegionalInfo:      RegionalInfo{RegionalScore: 10},
				AvgSentenceLength: 12,
			},
			wantScore: 90,
			wantGrade: "A+",
			wantRecs:  0,
		},
		{
			name: "Middle bands",
			analysis: ContentAnalysis{
				WordCount:         260,
				ReadabilityScore:  45,
				BusinessThemes:    themesOf(1),
				RegionalInfo:      RegionalInfo{RegionalScore: 5},
				AvgSentenceLength: 26,
			},
			wantScore: 20 + 10 + 10 + 15,
			wantGrade: "D",
			wantRecs:  4,
		},
		{
			name: "Lowest non-zero bands",
			analysis: ContentAnalysis{
				WordCount:        100,
				ReadabilityScore: 39,
				RegionalInfo:     RegionalInfo{RegionalScore: 2},
			},
			wantScore: 10 + 0 + 0 + 10,
			wantGrade: "F",
			wantRecs:  4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := CalculateSEOScore(tc.analysis)

			if report.Score != tc.wantScore {
				t.Errorf("Expected score %d, got %d (details: %v)", tc.wantScore, report.Score, report.Details)
			}
			if report.Percentage != tc.wantScore {
				t.Errorf("Expected percentage %d, got %d", tc.wantScore, report.Percentage)
			}
			if report.MaxScore != MaxSEOScore {
				t.Errorf("Expected max score %d, got %d", MaxSEOScore, report.MaxScore)
			}
			if report.Grade != tc.wantGrade {
				t.Errorf("Expected grade %s, got %s", tc.wantGrade, report.Grade)
			}
			if len(report.Recommendations) != tc.wantRecs {
				t.Errorf("Expected %d recommendations, got %d: %v", tc.wantRecs, len(report.Recommendations), report.Recommendations)
			}
			if len(report.Details) != 4 {
				t.Errorf("Expected 4 detail lines, got %d", len(report.Details))
			}
		})
	}
}

func TestCalculateSEOScoreDetailMarks(t *testing.T) {
	report := CalculateSEOScore(ContentAnalysis{
		WordCount:        450,
		ReadabilityScore: 45,
		RegionalInfo:     RegionalInfo{RegionalScore: 0},
	})

	wantPrefixes := []string{markGood, markWarn, markBad, markBad}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(report.Details[i], prefix) {
			t.Errorf("Detail %d should start with %s, got %q", i, prefix, report.Details[i])
		}
	}
	if !strings.Contains(report.Details[0], "450") {
		t.Errorf("Length detail should name the word count, got %q", report.Details[0])
	}
}

func TestCalculateSEOScoreLongSentences(t *testing.T) {
	report := CalculateSEOScore(ContentAnalysis{
		WordCount:         500,
		ReadabilityScore:  90,
		BusinessThemes:    themesOf(3),
		RegionalInfo:      RegionalInfo{RegionalScore: 12},
		AvgSentenceLength: 31.5,
	})

	if len(report.Recommendations) != 1 || !strings.Contains(report.Recommendations[0], "31.5") {
		t.Errorf("Expected a single sentence length recommendation, got %v", report.Recommendations)
	}
}

func TestGradeFor(t *testing.T) {
	testCases := []struct {
		score int
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"}, {80, "A"}, {79, "B"}, {70, "B"},
		{69, "C"}, {60, "C"}, {59, "D"}, {50, "D"}, {49, "F"}, {0, "F"},
	}

	for _, tc := range testCases {
		if got := gradeFor(tc.score); got != tc.want {
			t.Errorf("gradeFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
