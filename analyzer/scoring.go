package analyzer

const maxThemePoints = 5

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}

// calculateReadability starts at 100 and subtracts one penalty per band group
func calculateReadability(text string, wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	sentences := countSentences(text)
	if sentences == 0 {
		return 0
	}

	score := 100
	avgSentenceLength := float64(wordCount) / float64(sentences)
	switch {
	case avgSentenceLength > 30:
		score -= 40
	case avgSentenceLength > 25:
		score -= 30
	case avgSentenceLength > 20:
		score -= 20
	case avgSentenceLength > 15:
		score -= 10
	}

	avgWordLength := float64(charCount(text)) / float64(wordCount)
	switch {
	case avgWordLength > 9:
		score -= 25
	case avgWordLength > 7:
		score -= 15
	case avgWordLength > 6:
		score -= 10
	}

	complexRatio := float64(countComplexWords(text)) / float64(wordCount)
	switch {
	case complexRatio > 0.4:
		score -= 25
	case complexRatio > 0.3:
		score -= 20
	case complexRatio > 0.2:
		score -= 10
	}

	punctuationRatio := float64(countPunctuation(text)) / float64(wordCount)
	if punctuationRatio > 0.05 && punctuationRatio < 0.15 {
		score += 10
	}

	return clampScore(score)
}

// assessContentQuality scores length, sentence structure, paragraphs and
// business relevance. Paragraphs come from the raw content.
func assessContentQuality(raw, text string, wordCount int, themes []ThemeCount) int {
	if text == "" || wordCount == 0 {
		return 0
	}

	score := 0
	switch {
	case wordCount >= 500:
		score += 40
	case wordCount >= 300:
		score += 35
	case wordCount >= 200:
		score += 25
	case wordCount >= 100:
		score += 15
	case wordCount >= 50:
		score += 10
	}

	if sentences := countSentences(text); sentences > 0 {
		avg := float64(wordCount) / float64(sentences)
		switch {
		case avg >= 8 && avg <= 20:
			score += 25
		case avg >= 6 && avg <= 25:
			score += 20
		case avg >= 4:
			score += 10
		}
	}

	switch paragraphs := countParagraphs(raw); {
	case paragraphs >= 5:
		score += 20
	case paragraphs >= 3:
		score += 15
	case paragraphs >= 2:
		score += 10
	}

	business := 0
	for _, t := range themes {
		business += min(maxThemePoints, t.Count)
	}
	score += min(15, business)

	return clampScore(score)
}
