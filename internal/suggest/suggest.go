// Package suggest proposes spelling corrections for listing queries that
// matched nothing. Corrections come from the words of the catalog itself.
package suggest

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

const (
	// MinWordSizeFor1Typo is the shortest word that may be corrected by one edit.
	MinWordSizeFor1Typo = 4
	// MinWordSizeFor2Typos is the shortest word that may be corrected by two edits.
	MinWordSizeFor2Typos = 7

	maxCacheSize = 1000
)

// Suggester holds the vocabulary of one catalog.
// It is safe for concurrent use.
type Suggester struct {
	vocabulary []string // first-appearance order, used to break ties
	known      map[string]struct{}

	cache   map[string]string
	cacheMu sync.RWMutex
}

// New builds a suggester from free text.
func New(texts []string) *Suggester {
	s := &Suggester{
		known: make(map[string]struct{}),
		cache: make(map[string]string),
	}
	for _, text := range texts {
		for _, word := range Tokenize(text) {
			if _, ok := s.known[word]; ok {
				continue
			}
			s.known[word] = struct{}{}
			s.vocabulary = append(s.vocabulary, word)
		}
	}
	return s
}

// ForRecords builds a suggester from the searchable text, tags and categories of records.
func ForRecords[R catalog.Record](records []R) *Suggester {
	var texts []string
	for _, record := range records {
		f := record.CatalogFields()
		texts = append(texts, f.Text...)
		texts = append(texts, f.Tags...)
		if f.Category != "" {
			texts = append(texts, f.Category)
		}
	}
	return New(texts)
}

// Correct replaces every unknown word of query with the closest vocabulary
// word, if one is close enough. It reports false when nothing changed.
func (s *Suggester) Correct(query string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return "", false
	}

	s.cacheMu.RLock()
	cached, hit := s.cache[key]
	s.cacheMu.RUnlock()
	if hit {
		return cached, cached != ""
	}

	words := Tokenize(key)
	changed := false
	for i, word := range words {
		if best, ok := s.closest(word); ok {
			words[i] = best
			changed = true
		}
	}

	corrected := ""
	if changed {
		corrected = strings.Join(words, " ")
	}

	s.cacheMu.Lock()
	if len(s.cache) >= maxCacheSize {
		s.cache = make(map[string]string)
	}
	s.cache[key] = corrected
	s.cacheMu.Unlock()

	return corrected, changed
}

// closest returns the nearest vocabulary word for an unknown word.
func (s *Suggester) closest(word string) (string, bool) {
	if _, ok := s.known[word]; ok {
		return "", false
	}

	maxDistance := allowedTypos(word)
	if maxDistance == 0 {
		return "", false
	}

	best, bestDistance := "", maxDistance+1
	for _, candidate := range s.vocabulary {
		if d := Distance(word, candidate, maxDistance); d < bestDistance {
			best, bestDistance = candidate, d
			if d == 1 {
				break
			}
		}
	}
	return best, best != ""
}

func allowedTypos(word string) int {
	switch n := utf8.RuneCountInString(word); {
	case n >= MinWordSizeFor2Typos:
		return 2
	case n >= MinWordSizeFor1Typo:
		return 1
	default:
		return 0
	}
}
