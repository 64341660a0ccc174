// Package namematch resolves free-text queries ("S. Dakota", "so dak") to
// a region.Region by display name, for interactive drivers that take a
// region name rather than its code. Adapted from the teacher's booth-name
// matcher, retargeted from per-AC scoped polling booths to a whole-graph
// scan over region.Region (districting has no AC-style sub-scope to filter
// matches by).
package namematch

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/politic-in/districting/region"
)

// Error definitions
var (
	ErrNoRegionsLoaded = errors.New("no regions loaded in matcher")
	ErrInvalidInput    = errors.New("invalid input for matching")
	ErrNoMatchFound    = errors.New("no matching region found")
	ErrBelowConfidence = errors.New("match confidence below threshold")
)

// Confidence thresholds and limits.
const (
	MinConfidence = 0.7

	HighConfidence     = 0.9
	VeryHighConfidence = 0.95

	DefaultCandidateLimit = 5

	// MaxInputLength caps the query length accepted from a driver.
	MaxInputLength = 500
)

// MatchResult is the outcome of matching a query against one region.
type MatchResult struct {
	Code       string
	Name       string
	Confidence float64 // 0.0 to 1.0
	Distance   int     // Levenshtein distance against the normalized name
	MatchType  string  // "exact", "fuzzy", "phonetic"
}

// Matcher resolves free-text region-name queries against every region in a
// region.RegionGraph. It holds an RWMutex because, per spec §5, a single
// immutable region graph may be shared by multiple concurrently running
// solvers, and a driver resolving user input for each of them shares one
// Matcher rather than rebuilding indices per solver.
type Matcher struct {
	mu            sync.RWMutex
	entries       []entry
	exactIndex    map[string][]int
	phoneticIndex map[string][]int
	keywordIndex  map[string][]int
	config        MatcherConfig
}

type entry struct {
	code     string
	name     string
	norm     string
	phonetic string
	keywords []string
}

// MatcherConfig holds matcher tuning knobs.
type MatcherConfig struct {
	MinConfidence      float64
	MaxCandidates      int
	EnablePhonetic     bool
	EnableKeywordMatch bool
}

// DefaultMatcherConfig returns the default configuration.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		MinConfidence:      MinConfidence,
		MaxCandidates:      DefaultCandidateLimit,
		EnablePhonetic:     true,
		EnableKeywordMatch: true,
	}
}

// NewMatcher builds a Matcher over every region in graph, using the default
// configuration.
func NewMatcher(graph *region.RegionGraph) *Matcher {
	return NewMatcherWithConfig(graph, DefaultMatcherConfig())
}

// NewMatcherWithConfig builds a Matcher over every region in graph.
func NewMatcherWithConfig(graph *region.RegionGraph, config MatcherConfig) *Matcher {
	m := &Matcher{
		exactIndex:    make(map[string][]int),
		phoneticIndex: make(map[string][]int),
		keywordIndex:  make(map[string][]int),
		config:        config,
	}
	for _, r := range graph.All() {
		m.addLocked(r.Code, r.Name)
	}
	return m
}

func (m *Matcher) addLocked(code, name string) {
	e := entry{
		code: code,
		name: name,
		norm: Normalize(name),
	}
	if m.config.EnablePhonetic {
		e.phonetic = PhoneticEncode(name)
	}
	if m.config.EnableKeywordMatch {
		e.keywords = ExtractKeywords(name)
	}

	idx := len(m.entries)
	m.entries = append(m.entries, e)

	m.exactIndex[e.norm] = append(m.exactIndex[e.norm], idx)
	if e.phonetic != "" {
		m.phoneticIndex[e.phonetic] = append(m.phoneticIndex[e.phonetic], idx)
	}
	for _, kw := range e.keywords {
		m.keywordIndex[kw] = append(m.keywordIndex[kw], idx)
	}
}

// AddRegion registers one more region, for callers building the graph
// incrementally (e.g. h3grid.BuildGraph's caller naming cells after load).
func (m *Matcher) AddRegion(code, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addLocked(code, name)
}

// Match returns the single best match for query, or ErrBelowConfidence if
// the best candidate doesn't clear the matcher's MinConfidence.
func (m *Matcher) Match(query string) (*MatchResult, error) {
	candidates, err := m.MatchWithCandidates(query, 1)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoMatchFound
	}
	best := candidates[0]
	if best.Confidence < m.config.MinConfidence {
		return nil, ErrBelowConfidence
	}
	return &best, nil
}

// MatchWithCandidates returns up to limit ranked matches for query
// (confidence descending). limit<=0 uses the matcher's configured default.
func (m *Matcher) MatchWithCandidates(query string, limit int) ([]MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil, ErrNoRegionsLoaded
	}
	if query == "" {
		return nil, ErrInvalidInput
	}
	if len(query) > MaxInputLength {
		query = query[:MaxInputLength]
	}
	if limit <= 0 {
		limit = m.config.MaxCandidates
	}

	normalized := Normalize(query)

	if indices, ok := m.exactIndex[normalized]; ok && len(indices) > 0 {
		results := make([]MatchResult, 0, len(indices))
		for _, idx := range indices {
			e := m.entries[idx]
			results = append(results, MatchResult{Code: e.code, Name: e.name, Confidence: 1.0, MatchType: "exact"})
		}
		if len(results) > limit {
			results = results[:limit]
		}
		return results, nil
	}

	phonetic := ""
	if m.config.EnablePhonetic {
		phonetic = PhoneticEncode(query)
	}
	var keywords []string
	if m.config.EnableKeywordMatch {
		keywords = ExtractKeywords(query)
	}

	scored := make(map[int]float64)
	matchTypes := make(map[int]string)

	for idx, e := range m.entries {
		distance := fuzzy.LevenshteinDistance(normalized, e.norm)
		maxLen := max(len(normalized), len(e.norm))
		if maxLen == 0 {
			continue
		}
		confidence := 1.0 - float64(distance)/float64(maxLen)

		if m.config.EnablePhonetic && phonetic != "" && e.phonetic != "" && phonetic == e.phonetic {
			confidence = math.Max(confidence, 0.85)
			matchTypes[idx] = "phonetic"
		}

		if m.config.EnableKeywordMatch && len(keywords) > 0 {
			matched := 0
			for _, kw := range keywords {
				for _, ekw := range e.keywords {
					if kw == ekw || strings.Contains(ekw, kw) || strings.Contains(kw, ekw) {
						matched++
						break
					}
				}
			}
			if matched > 0 {
				confidence = math.Min(confidence+float64(matched)/float64(len(keywords))*0.1, 1.0)
			}
		}

		if confidence > 0 {
			scored[idx] = confidence
			if matchTypes[idx] == "" {
				matchTypes[idx] = "fuzzy"
			}
		}
	}

	results := make([]MatchResult, 0, len(scored))
	for idx, conf := range scored {
		e := m.entries[idx]
		results = append(results, MatchResult{
			Code:       e.code,
			Name:       e.name,
			Confidence: conf,
			Distance:   fuzzy.LevenshteinDistance(normalized, e.norm),
			MatchType:  matchTypes[idx],
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Len reports how many regions are indexed.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Normalize lowercases s, expands common abbreviations, and collapses
// punctuation/whitespace for comparison.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = ExpandAbbreviations(s)

	var result strings.Builder
	lastWasSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
			lastWasSpace = false
		} else if unicode.IsSpace(r) && !lastWasSpace {
			result.WriteRune(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSpace(result.String())
}

var abbreviations = map[string]string{
	"st":    "street",
	"rd":    "road",
	"mt":    "mount",
	"mtn":   "mountain",
	"ft":    "fort",
	"co":    "county",
	"cnty":  "county",
	"dist":  "district",
	"no.":   "number",
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"nw":    "northwest",
	"ne":    "northeast",
	"sw":    "southwest",
	"se":    "southeast",
	"twp":   "township",
	"par":   "parish",
}

// ExpandAbbreviations expands common geographic abbreviations in s.
func ExpandAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		lower := strings.ToLower(word)
		expanded, ok := abbreviations[lower]
		if !ok {
			expanded, ok = abbreviations[strings.TrimSuffix(lower, ".")]
		}
		if ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true,
	"at": true, "to": true, "for": true, "and": true, "or": true,
	"with": true, "by": true, "from": true, "is": true, "on": true,
}

// ExtractKeywords extracts meaningful keywords from a region name.
func ExtractKeywords(name string) []string {
	normalized := Normalize(name)
	words := strings.Fields(normalized)
	keywords := make([]string, 0, len(words))

	for _, word := range words {
		if len(word) < 3 || stopwords[word] {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// PhoneticEncode produces a simplified Soundex-like phonetic encoding for
// sound-alike matching ("Smith" vs "Smyth").
func PhoneticEncode(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var result strings.Builder
	result.WriteByte(s[0])

	replacements := map[rune]byte{
		'a': '0', 'e': '0', 'i': '0', 'o': '0', 'u': '0',
		'b': '1', 'f': '1', 'p': '1', 'v': '1',
		'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
		'd': '3', 't': '3',
		'l': '4',
		'm': '5', 'n': '5',
		'r': '6',
		'h': '0', 'w': '0', 'y': '0',
	}

	lastCode := byte('0')
	for i, r := range s {
		if i == 0 {
			if code, ok := replacements[r]; ok {
				lastCode = code
			}
			continue
		}
		if code, ok := replacements[r]; ok && code != '0' && code != lastCode {
			result.WriteByte(code)
			lastCode = code
		}
		if result.Len() >= 6 {
			break
		}
	}
	for result.Len() < 4 {
		result.WriteByte('0')
	}
	return result.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
