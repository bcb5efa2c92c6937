package analyzer

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Recorder receives cache hit and miss counts, split between full analyses
// and the sub-results they are built from.
type Recorder interface {
	IncrementStats(analysisHits, analysisMisses, partHits, partMisses int)
}

// Analyzer performs German/Swiss content analysis. Every computation is
// memoized by a hash of its inputs; an Analyzer is safe for concurrent use.
type Analyzer struct {
	cache        *memoCache
	keywordLimit int
	logger       *zap.Logger
	recorder     Recorder
	now          func() time.Time
}

type Option func(*Analyzer)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxCacheEntries bounds the number of memoized results
func WithMaxCacheEntries(n int) Option {
	return func(a *Analyzer) { a.cache.maxEntries = n }
}

func WithKeywordLimit(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.keywordLimit = n
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// WithClock replaces the source of AnalysisTimestamp
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates a new Analyzer instance
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		cache:        &memoCache{maxEntries: DefaultMaxCacheEntries},
		keywordLimit: DefaultKeywordLimit,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	cache, err := newMemoCache(a.cache.maxEntries)
	if err != nil {
		return nil, err
	}
	a.cache = cache
	return a, nil
}

// memo returns the cached result of op for the given inputs or computes and
// stores it.
func memo[T any](a *Analyzer, op string, compute func() T, inputs ...string) T {
	key := generateCacheKey(op, inputs...)
	if v, ok := a.cache.get(key); ok {
		if result, ok := v.(T); ok {
			a.record(op, true)
			return result
		}
	}
	a.record(op, false)
	a.logger.Debug("cache miss", zap.String("op", op), zap.String("key", key))

	result := compute()
	a.cache.add(key, result)
	return result
}

func (a *Analyzer) record(op string, hit bool) {
	if a.recorder == nil {
		return
	}
	switch {
	case op == opAnalysis && hit:
		a.recorder.IncrementStats(1, 0, 0, 0)
	case op == opAnalysis:
		a.recorder.IncrementStats(0, 1, 0, 0)
	case hit:
		a.recorder.IncrementStats(0, 0, 1, 0)
	default:
		a.recorder.IncrementStats(0, 0, 0, 1)
	}
}

// AnalyzeContent analyzes post content and an optional title. The title is
// only used for keyword, theme and regional detection.
func (a *Analyzer) AnalyzeContent(content, title string) ContentAnalysis {
	analysis := memo(a, opAnalysis, func() ContentAnalysis {
		return a.analyze(content, title)
	}, content, title)
	return analysis.clone()
}

func (a *Analyzer) analyze(content, title string) ContentAnalysis {
	body := a.Normalize(content)
	normalizedTitle := a.Normalize(title)
	wordCount := a.CountWords(body)
	if wordCount == 0 {
		return emptyAnalysis(body, normalizedTitle, a.now().Unix())
	}

	seoText := body
	if normalizedTitle != "" {
		seoText = normalizedTitle + " " + body
	}

	sentences := a.CountSentences(body)
	chars := charCount(body)
	analysis := ContentAnalysis{
		Content:           body,
		Title:             normalizedTitle,
		WordCount:         wordCount,
		CharCount:         chars,
		SentenceCount:     sentences,
		ParagraphCount:    countParagraphs(content),
		AvgWordLength:     float64(chars) / float64(wordCount),
		GermanKeywords:    a.extractKeywords(seoText, a.keywordLimit),
		BusinessThemes:    a.identifyBusinessThemes(seoText),
		ContentQuality:    a.assessContentQuality(content, body, wordCount),
		RegionalInfo:      a.detectSwissRegionalContent(seoText),
		ReadabilityScore:  a.calculateReadability(body, wordCount),
		AnalysisTimestamp: a.now().Unix(),
	}
	if sentences > 0 {
		analysis.AvgSentenceLength = float64(wordCount) / float64(sentences)
	}
	return analysis
}

func emptyAnalysis(body, title string, timestamp int64) ContentAnalysis {
	return ContentAnalysis{
		Content:           body,
		Title:             title,
		GermanKeywords:    []string{},
		BusinessThemes:    []ThemeCount{},
		RegionalInfo:      emptyRegionalInfo(),
		AnalysisTimestamp: timestamp,
	}
}

// CalculateSEOScore is a convenience wrapper around the package function
func (a *Analyzer) CalculateSEOScore(analysis ContentAnalysis) SEOScoreReport {
	return CalculateSEOScore(analysis)
}

func (a *Analyzer) Normalize(raw string) string {
	return memo(a, opNormalize, func() string { return normalizeText(raw) }, raw)
}

func (a *Analyzer) CountWords(text string) int {
	return memo(a, opWords, func() int { return countWords(text) }, text)
}

func (a *Analyzer) CountSentences(text string) int {
	return memo(a, opSentences, func() int { return countSentences(text) }, text)
}

// ExtractKeywords returns up to limit keywords, or the configured default
// when limit is not positive.
func (a *Analyzer) ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = a.keywordLimit
	}
	return cloneStrings(a.extractKeywords(text, limit))
}

func (a *Analyzer) extractKeywords(text string, limit int) []string {
	return memo(a, opKeywords, func() []string { return extractKeywords(text, limit) }, text, strconv.Itoa(limit))
}

func (a *Analyzer) IdentifyBusinessThemes(text string) []ThemeCount {
	return cloneThemes(a.identifyBusinessThemes(text))
}

func (a *Analyzer) identifyBusinessThemes(text string) []ThemeCount {
	return memo(a, opThemes, func() []ThemeCount { return identifyBusinessThemes(text) }, text)
}

func (a *Analyzer) DetectSwissRegionalContent(text string) RegionalInfo {
	return a.detectSwissRegionalContent(text).clone()
}

func (a *Analyzer) detectSwissRegionalContent(text string) RegionalInfo {
	return memo(a, opRegional, func() RegionalInfo { return detectSwissRegionalContent(text) }, text)
}

func (a *Analyzer) assessContentQuality(raw, text string, wordCount int) int {
	return memo(a, opQuality, func() int {
		return assessContentQuality(raw, text, wordCount, a.identifyBusinessThemes(text))
	}, raw, text, strconv.Itoa(wordCount))
}

func (a *Analyzer) calculateReadability(text string, wordCount int) int {
	return memo(a, opReadability, func() int {
		return calculateReadability(text, wordCount)
	}, text, strconv.Itoa(wordCount))
}

// IsCached reports whether the analysis of content and title is memoized
func (a *Analyzer) IsCached(content, title string) bool {
	return a.cache.contains(generateCacheKey(opAnalysis, content, title))
}

// ClearCache drops every memoized result
func (a *Analyzer) ClearCache() {
	entries := a.cache.entries.Len()
	a.cache.purge()
	a.logger.Info("analysis cache cleared", zap.Int("entries", entries))
}

// GetCacheStats returns statistics about the cache
func (a *Analyzer) GetCacheStats() CacheStats {
	return a.cache.stats()
}
