// Package tooltip classifies the menu tooltips into named categories and
// computes aggregate statistics over them. Classification is an ordered
// regex match: the first matching category wins, and tooltips no category
// claims land in the generic "simple label" bucket.
package tooltip

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SimpleLabel is the bucket for tooltips no pattern matches.
const SimpleLabel = "simple label"

// Category pairs a name with the pattern that claims tooltips for it.
type Category struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultCategories is the ordered classification table. Order matters:
// a tooltip mentioning both creation and navigation is an action.
func DefaultCategories() []Category {
	return []Category{
		{Name: "action", Pattern: regexp.MustCompile(`(?i)\b(create|add|new|delete|remove|save|edit)\b`)},
		{Name: "navigation", Pattern: regexp.MustCompile(`(?i)\b(open|go to|show|display|switch|view)\b`)},
		{Name: "question", Pattern: regexp.MustCompile(`\?`)},
		{Name: "instruction", Pattern: regexp.MustCompile(`(?i)\b(click|select|choose|enter|drag)\b`)},
	}
}

// Stats is the aggregate report over a tooltip set. Total counts every
// accepted occurrence; Distinct counts unique texts, and the remaining
// figures describe the distinct set.
type Stats struct {
	Total         int            `json:"total"`
	Distinct      int            `json:"distinct"`
	ByCategory    map[string]int `json:"by_category"`
	AverageLength float64        `json:"average_length"`
	Longest       string         `json:"longest"`
	Shortest      string         `json:"shortest"`
}

// Analyzer classifies tooltips with a fixed category table.
type Analyzer struct {
	mu         sync.RWMutex
	log        *zap.Logger
	categories []Category
	stats      Stats
}

// New creates an analyzer with the default category table.
func New(log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{log: log, categories: DefaultCategories()}
}

// Classify returns the category name for a single tooltip.
func (a *Analyzer) Classify(tooltip string) string {
	for _, c := range a.categories {
		if c.Pattern.MatchString(tooltip) {
			return c.Name
		}
	}
	return SimpleLabel
}

// Initialize analyzes the given tooltips, replacing any previous report.
// Empty strings and pure ##...## placeholders are not tooltips and are
// excluded before counting. Total counts every accepted occurrence;
// classification and the length figures run over the distinct set, so a
// tooltip repeated across menu items is analyzed once.
func (a *Analyzer) Initialize(tooltips []string) Stats {
	seen := make(map[string]bool)
	byCategory := make(map[string]int)
	var total, distinct, lengthSum int
	longest, shortest := "", ""

	for _, raw := range tooltips {
		tip := strings.TrimSpace(raw)
		if tip == "" || isPlaceholder(tip) {
			continue
		}
		total++
		if seen[tip] {
			continue
		}
		seen[tip] = true
		distinct++
		lengthSum += len([]rune(tip))
		byCategory[a.Classify(tip)]++
		if longest == "" || len([]rune(tip)) > len([]rune(longest)) {
			longest = tip
		}
		if shortest == "" || len([]rune(tip)) < len([]rune(shortest)) {
			shortest = tip
		}
	}

	stats := Stats{
		Total:      total,
		Distinct:   distinct,
		ByCategory: byCategory,
		Longest:    longest,
		Shortest:   shortest,
	}
	if distinct > 0 {
		stats.AverageLength = float64(lengthSum) / float64(distinct)
	}

	a.mu.Lock()
	a.stats = stats
	a.mu.Unlock()
	a.log.Info("tooltip analysis rebuilt",
		zap.Int("total", total), zap.Int("distinct", distinct))
	return stats
}

// Clear drops the report.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	a.stats = Stats{}
	a.mu.Unlock()
}

// Report returns the last computed stats.
func (a *Analyzer) Report() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats
}

var placeholderRe = regexp.MustCompile(`^##[A-Za-z0-9_.:]+##$`)

func isPlaceholder(tip string) bool {
	return placeholderRe.MatchString(tip)
}
