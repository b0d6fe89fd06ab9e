package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats represents usage counters for a specific month.
type MonthlyStats struct {
	Audits        int            `json:"audits"`
	CacheHits     int            `json:"cache_hits"`
	CacheMisses   int            `json:"cache_misses"`
	FetchFailures int            `json:"fetch_failures"`
	Comparisons   int            `json:"comparisons"`
	Visitors      map[string]int `json:"visitors,omitempty"`
	PopularURLs   map[string]int `json:"popular_urls,omitempty"`
	LastUpdated   time.Time      `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics. Writes go to a
// temporary file first and are renamed into place, so a crash mid-write
// never corrupts the stats file.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a statistics storage instance under dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter handles requested and periodic writes to disk.
func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed; a pending request is
// never queued twice.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

// month returns the stats bucket for the current month, creating it if
// needed. Caller must hold the write lock.
func (s *Storage) month() *MonthlyStats {
	key := currentMonth()
	m, exists := s.stats[key]
	if !exists {
		m = &MonthlyStats{
			Visitors:    make(map[string]int),
			PopularURLs: make(map[string]int),
		}
		s.stats[key] = m
	}
	if m.Visitors == nil {
		m.Visitors = make(map[string]int)
	}
	if m.PopularURLs == nil {
		m.PopularURLs = make(map[string]int)
	}
	return m
}

func (s *Storage) touch(m *MonthlyStats) {
	m.LastUpdated = time.Now()
	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// RecordAudit counts one completed audit and whether the cache served it.
func (s *Storage) RecordAudit(url string, cacheHit bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month()
	m.Audits++
	if cacheHit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
	if url != "" {
		m.PopularURLs[url]++
	}
	s.touch(m)
}

// RecordFetchFailure counts one failed page fetch.
func (s *Storage) RecordFetchFailure() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month()
	m.FetchFailures++
	s.touch(m)
}

// RecordComparison counts one completed comparison run.
func (s *Storage) RecordComparison() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month()
	m.Comparisons++
	s.touch(m)
}

// RecordVisit counts a request from the given client IP.
func (s *Storage) RecordVisit(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month()
	m.Visitors[ip]++
	s.touch(m)
}

// GetCurrentStats returns a copy of the current month's counters.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[currentMonth()]; exists {
		return *m
	}
	return MonthlyStats{}
}

// UniqueVisitors returns the number of distinct client IPs seen this month.
func (s *Storage) UniqueVisitors() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[currentMonth()]; exists {
		return len(m.Visitors)
	}
	return 0
}

// TopURLs returns the n most audited URLs this month, most popular first.
func (s *Storage) TopURLs(n int) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, exists := s.stats[currentMonth()]
	if !exists {
		return nil
	}

	urls := make([]string, 0, len(m.PopularURLs))
	for u := range m.PopularURLs {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool {
		if m.PopularURLs[urls[i]] != m.PopularURLs[urls[j]] {
			return m.PopularURLs[urls[i]] > m.PopularURLs[urls[j]]
		}
		return urls[i] < urls[j]
	})

	if len(urls) > n {
		urls = urls[:n]
	}
	return urls
}

// Cleanup keeps only the current and previous month's statistics.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}

	s.requestWrite()
}

// GetMonthlyStats returns statistics for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[yearMonth]; exists {
		return *m, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all recorded months, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown stops the background writer and flushes to disk.
func (s *Storage) Shutdown() error {
	close(s.done)
	return s.save()
}
