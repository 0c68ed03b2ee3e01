// Package text serves the localized caption dictionary with
// ##PLACEHOLDER## parameter substitution.
package text

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/types"
)

// Service is the name-to-caption lookup built from the flat UIText list.
// Constructed once, rebuilt wholesale by Initialize.
type Service struct {
	mu       sync.RWMutex
	log      *zap.Logger
	captions map[string]string
}

// New creates an empty text service.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log, captions: make(map[string]string)}
}

// Initialize replaces the dictionary with the given entries. Duplicate
// names are last-write-wins.
func (s *Service) Initialize(texts []types.UIText) {
	captions := make(map[string]string, len(texts))
	for _, t := range texts {
		if t.Name == "" {
			continue
		}
		captions[t.Name] = t.Caption
	}
	s.mu.Lock()
	s.captions = captions
	s.mu.Unlock()
	s.log.Info("text dictionary rebuilt", zap.Int("entries", len(captions)))
}

// Clear drops the dictionary.
func (s *Service) Clear() {
	s.mu.Lock()
	s.captions = make(map[string]string)
	s.mu.Unlock()
}

// Len returns the number of stored captions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.captions)
}

// Get resolves a caption with the priority mapped caption, then fallback,
// then the key itself; afterwards every ##NAME## placeholder named in
// params is substituted (parameter keys match case-insensitively via
// uppercasing). Placeholders with no matching parameter stay verbatim in
// the output.
func (s *Service) Get(key, fallback string, params map[string]string) string {
	s.mu.RLock()
	caption, ok := s.captions[key]
	s.mu.RUnlock()

	if !ok {
		if fallback != "" {
			caption = fallback
		} else {
			caption = key
		}
	}
	return Substitute(caption, params)
}

// Entries returns a copy of the dictionary, for snapshot persistence.
func (s *Service) Entries() []types.UIText {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.UIText, 0, len(s.captions))
	for name, caption := range s.captions {
		out = append(out, types.UIText{Name: name, Caption: caption})
	}
	return out
}

// Substitute replaces every ##NAME## placeholder for which params holds a
// value. Matching is case-insensitive on the parameter key; unresolved
// placeholders are left untouched.
func Substitute(caption string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(caption, "##") {
		return caption
	}
	for k, v := range params {
		placeholder := "##" + strings.ToUpper(k) + "##"
		caption = replaceFold(caption, placeholder, v)
	}
	return caption
}

// replaceFold is strings.ReplaceAll with ASCII case-insensitive matching
// of the needle, so a ##DisplayName## placeholder in a caption matches
// the DISPLAYNAME parameter. Folding is ASCII-only on purpose: German
// captions contain runes (ß) whose Unicode uppercasing changes byte
// length and would shift match offsets, and placeholder names are ASCII.
func replaceFold(s, needle, repl string) string {
	if needle == "" {
		return s
	}
	upper := asciiUpper(s)
	needle = asciiUpper(needle)
	var b strings.Builder
	for {
		i := strings.Index(upper, needle)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(repl)
		s = s[i+len(needle):]
		upper = upper[i+len(needle):]
	}
}

func asciiUpper(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c - 'a' + 'A'
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}
