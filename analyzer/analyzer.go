package analyzer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/aeo-auditor/backend/readability"
	"github.com/aeo-auditor/backend/stats"
)

// userAgent is a browser-like identification header; some sites refuse
// requests without one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Cache entry with expiration
type cacheEntry struct {
	audit     *Audit
	timestamp time.Time
}

// CacheStats provides statistics about the analyzer's audit cache.
type CacheStats struct {
	Entries     int           `json:"entries"`
	CacheHits   int           `json:"cacheHits"`
	CacheMisses int           `json:"cacheMisses"`
	CacheTTL    time.Duration `json:"cacheTTL"`
}

// Analyzer fetches pages and runs the full AEO audit pipeline. The engine
// profiles and the recommendation rule table are fixed at construction and
// never mutated, so concurrent audits only contend on the cache.
type Analyzer struct {
	client          *http.Client
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	engines         []EngineProfile
	readability     ReadabilityFunc
	stats           *stats.Storage
	log             *zap.Logger
}

// New creates an Analyzer persisting usage statistics under dataDir and
// scoring against the given engine profiles. A nil logger is replaced with a
// no-op one.
func New(dataDir string, engines []EngineProfile, log *zap.Logger) (*Analyzer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := ValidateEngineProfiles(engines); err != nil {
		return nil, fmt.Errorf("invalid engine profiles: %w", err)
	}

	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	a := &Analyzer{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		engines:         engines,
		readability:     readability.FleschReadingEase,
		stats:           statsStorage,
		log:             log,
	}

	go a.periodicCleanup()

	return a, nil
}

// SetFetchTimeout sets the bounded timeout for page fetches.
func (a *Analyzer) SetFetchTimeout(d time.Duration) {
	a.client.Timeout = d
}

// SetCacheTTL sets how long cached audits stay valid.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// SetMaxCacheSize sets the maximum number of cached audits.
func (a *Analyzer) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	a.maxCacheSize = size
	a.cacheMutex.Unlock()
	a.cleanup()
}

// SetReadability replaces the reading-ease provider.
func (a *Analyzer) SetReadability(fn ReadabilityFunc) {
	a.readability = fn
}

// ClearCache drops all cached audits.
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// IsCached reports whether a URL has a fresh cached audit.
func (a *Analyzer) IsCached(url string) bool {
	key := cacheKey(url)
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[key]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

// GetCacheStats returns cache occupancy and hit/miss counters.
func (a *Analyzer) GetCacheStats() CacheStats {
	current := a.stats.GetCurrentStats()

	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	return CacheStats{
		Entries:     len(a.cache),
		CacheHits:   current.CacheHits,
		CacheMisses: current.CacheMisses,
		CacheTTL:    a.cacheTTL,
	}
}

// GetStats returns the usage statistics storage.
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// cacheKey creates a unique key for the URL.
func cacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

func (a *Analyzer) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		a.cleanup()
	}
}

// cleanup removes expired entries and enforces the cache size limit.
func (a *Analyzer) cleanup() {
	now := time.Now()

	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if len(a.cache) > a.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// Analyze fetches a URL and runs the full audit pipeline, serving from the
// cache when a fresh result exists.
func (a *Analyzer) Analyze(url string) (*Audit, error) {
	return a.AnalyzeWithContext(context.Background(), url)
}

// AnalyzeWithContext is Analyze with caller-controlled cancellation.
func (a *Analyzer) AnalyzeWithContext(ctx context.Context, url string) (*Audit, error) {
	if time.Since(a.lastCleanup) > a.cleanupInterval {
		go a.cleanup()
	}

	key := cacheKey(url)
	a.cacheMutex.RLock()
	if entry, found := a.cache[key]; found && time.Since(entry.timestamp) < a.cacheTTL {
		a.cacheMutex.RUnlock()
		a.stats.RecordAudit(url, true)
		return entry.audit, nil
	}
	a.cacheMutex.RUnlock()

	start := time.Now()
	doc, err := a.fetchDocument(ctx, url)
	if err != nil {
		a.stats.RecordFetchFailure()
		a.log.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	audit := a.AnalyzeDocument(doc, url)

	a.cacheMutex.Lock()
	a.cache[key] = cacheEntry{audit: audit, timestamp: time.Now()}
	a.cacheMutex.Unlock()

	a.stats.RecordAudit(url, false)
	a.log.Info("audit complete",
		zap.String("url", url),
		zap.Int("score", audit.Breakdown.Total),
		zap.Duration("elapsed", time.Since(start)),
	)

	return audit, nil
}

// AnalyzeDocument runs the pure pipeline over an already-parsed document:
// six extractors, score breakdown, engine scores, recommendations. Never
// fails; degraded inputs resolve to conservative defaults.
func (a *Analyzer) AnalyzeDocument(doc *goquery.Document, url string) *Audit {
	signals := AnalysisResult{
		URL:       url,
		Schema:    ExtractSchema(doc),
		Questions: ExtractQuestions(doc),
		Snippet:   ExtractSnippet(doc),
		Structure: ExtractStructure(doc, a.readability),
		Entities:  ExtractEntities(doc),
		EEAT:      ExtractEEAT(doc, url),
	}

	breakdown := ScoreBreakdown(&signals)

	return &Audit{
		URL:             url,
		Signals:         signals,
		Breakdown:       breakdown,
		EngineScores:    ScoreEngines(breakdown, a.engines),
		Recommendations: GenerateRecommendations(&signals),
		QuickChecks:     BuildQuickChecks(&signals),
	}
}

// fetchDocument performs the single bounded GET and parses the response.
// Any transport error, timeout, or non-2xx status yields a *FetchError.
func (a *Analyzer) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return doc, nil
}

// Shutdown flushes statistics and drops the caches.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}

	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	a.cacheMutex.Lock()
	a.cache = nil
	a.cacheMutex.Unlock()

	return nil
}
