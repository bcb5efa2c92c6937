package analyzer

// ContentAnalysis represents the complete heuristic analysis of a text
type ContentAnalysis struct {
	Content           string       `json:"content"`
	Title             string       `json:"title"`
	WordCount         int          `json:"word_count"`
	CharCount         int          `json:"char_count"`
	SentenceCount     int          `json:"sentence_count"`
	ParagraphCount    int          `json:"paragraph_count"`
	AvgSentenceLength float64      `json:"avg_sentence_length"`
	AvgWordLength     float64      `json:"avg_word_length"`
	GermanKeywords    []string     `json:"german_keywords"`
	BusinessThemes    []ThemeCount `json:"business_themes"`
	ContentQuality    int          `json:"content_quality"`
	RegionalInfo      RegionalInfo `json:"regional_info"`
	ReadabilityScore  int          `json:"readability_score"`
	AnalysisTimestamp int64        `json:"analysis_timestamp"`
}

// ThemeCount is one entry of the ordered theme -> match count mapping
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

type RegionalInfo struct {
	Cantons        []string `json:"cantons"`
	Cities         []string `json:"cities"`
	SwissTerms     []string `json:"swiss_terms"`
	RegionalScore  int      `json:"regional_score"`
	IsSwissFocused bool     `json:"is_swiss_focused"`
}

// SEOScoreReport is the composite score derived from a ContentAnalysis
type SEOScoreReport struct {
	Score           int      `json:"score"`
	MaxScore        int      `json:"max_score"`
	Percentage      int      `json:"percentage"`
	Details         []string `json:"details"`
	Grade           string   `json:"grade"`
	Recommendations []string `json:"recommendations"`
}

// MetaSuggestion holds a generated meta title, description and focus keyword
type MetaSuggestion struct {
	Title        string `json:"meta_title"`
	Description  string `json:"meta_description"`
	FocusKeyword string `json:"focus_keyword"`
}

type MetaReport struct {
	TitleLength          int      `json:"title_length"`
	DescriptionLength    int      `json:"description_length"`
	KeywordInTitle       bool     `json:"keyword_in_title"`
	KeywordInDescription bool     `json:"keyword_in_description"`
	KeywordInContent     bool     `json:"keyword_in_content"`
	KeywordDensity       float64  `json:"keyword_density"`
	Score                int      `json:"score"`
	Recommendations      []string `json:"recommendations"`
}

// CacheStats provides statistics about the analyzer's memo cache
type CacheStats struct {
	Entries     int   `json:"entries"`
	MaxEntries  int   `json:"max_entries"`
	ApproxBytes int64 `json:"approx_bytes"`
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
}

func (t ThemeCount) size() int64 { return int64(len(t.Theme)) + 8 }

// clone returns a deep copy so cached results are never shared with callers
func (c ContentAnalysis) clone() ContentAnalysis {
	c.GermanKeywords = cloneStrings(c.GermanKeywords)
	c.BusinessThemes = cloneThemes(c.BusinessThemes)
	c.RegionalInfo = c.RegionalInfo.clone()
	return c
}

func (r RegionalInfo) clone() RegionalInfo {
	r.Cantons = cloneStrings(r.Cantons)
	r.Cities = cloneStrings(r.Cities)
	r.SwissTerms = cloneStrings(r.SwissTerms)
	return r
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneThemes(t []ThemeCount) []ThemeCount {
	out := make([]ThemeCount, len(t))
	copy(out, t)
	return out
}

func emptyRegionalInfo() RegionalInfo {
	return RegionalInfo{
		Cantons:    []string{},
		Cities:     []string{},
		SwissTerms: []string{},
	}
}
