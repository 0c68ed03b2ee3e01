// Package images resolves opaque image identifiers to renderable URLs.
// Resolution is a layered fallback: exact identifier, case and separator
// variants, then the caption / interaction-id / action synonym tables,
// and finally the static local-asset path convention. Outside of a true
// cold start the resolver therefore almost never comes up empty for a
// recognized caption.
package images

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/types"
)

// DefaultAssetBase is the path prefix of the static local-asset fallback.
const DefaultAssetBase = "/assets/icons"

// Synonym tables mapping UI-level names to catalog identifiers. The
// backend's catalog is keyed by identifier, but callers frequently only
// hold a menu caption, an interaction id, or an action name.
var (
	captionSynonyms = map[string]string{
		"SUPPLIERS":      "icon:supplier",
		"SUPPLIER":       "icon:supplier",
		"LIEFERANTEN":    "icon:supplier",
		"POINTS OF SALE": "icon:pos",
		"POS":            "icon:pos",
		"VERKAUFSSTELLEN": "icon:pos",
		"PERSONS":        "icon:person",
		"PERSONEN":       "icon:person",
		"PRODUCTS":       "icon:product",
		"PRODUKTE":       "icon:product",
		"DOCUMENTS":      "icon:document",
		"DOKUMENTE":      "icon:document",
		"TRANSACTIONS":   "icon:transaction",
		"TRANSAKTIONEN":  "icon:transaction",
	}
	interactionSynonyms = map[string]string{
		"GET_SUPPLIER_LIST": "icon:supplier",
		"GET_POS_LIST":      "icon:pos",
		"ORDER_CREATE":      "icon:order",
	}
	actionSynonyms = map[string]string{
		"NAVIGATE": "icon:navigate",
		"CREATE":   "icon:create",
		"DELETE":   "icon:delete",
	}
)

// Service caches the extracted image catalog and resolves identifiers
// against it. Constructed once; Initialize replaces the cache wholesale.
type Service struct {
	mu        sync.RWMutex
	log       *zap.Logger
	assetBase string
	byID      map[string]string // identifier -> data URL
}

// New creates an empty image service. An empty assetBase selects
// DefaultAssetBase.
func New(log *zap.Logger, assetBase string) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if assetBase == "" {
		assetBase = DefaultAssetBase
	}
	return &Service{log: log, assetBase: assetBase, byID: make(map[string]string)}
}

// Initialize replaces the catalog cache. Entries carrying the literal
// placeholder payload were already excluded by the extractor; the check
// here keeps the invariant even for snapshot-restored input.
func (s *Service) Initialize(items []types.UIImageItem) {
	byID := make(map[string]string, len(items))
	for _, it := range items {
		if it.Identifier == "" || it.ImageData == types.ImagePlaceholder {
			continue
		}
		byID[it.Identifier] = it.DataURL
	}
	s.mu.Lock()
	s.byID = byID
	s.mu.Unlock()
	s.log.Info("image catalog rebuilt", zap.Int("entries", len(byID)))
}

// Clear drops the catalog cache.
func (s *Service) Clear() {
	s.mu.Lock()
	s.byID = make(map[string]string)
	s.mu.Unlock()
}

// Len returns the number of cached images.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Get is the strict cache lookup: the data URL for the exact identifier,
// or "". The placeholder sentinel is never resolvable, whatever else the
// cache holds.
func (s *Service) Get(identifier string) string {
	if identifier == "" || identifier == types.ImagePlaceholder {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[identifier]
}

// Resolve maps an identifier to a URL through every fallback layer:
// exact hit, case/separator variants, then the static asset convention.
// It returns "" only when every layer is exhausted, which for a non-empty
// non-placeholder identifier never happens: the asset path is always
// constructible.
func (s *Service) Resolve(identifier string) string {
	if identifier == "" || identifier == types.ImagePlaceholder {
		return ""
	}
	if url := s.cacheLookup(identifier); url != "" {
		return url
	}
	return s.assetPath(identifier)
}

// ResolveMenuIcon resolves the icon for a menu item, bringing the synonym
// tables into the chain: identifier layers first, then caption,
// interaction id, and action synonyms, then the asset convention over the
// caption-derived identifier.
func (s *Service) ResolveMenuIcon(item types.MenuItem) string {
	candidates := []string{
		synonymOf(captionSynonyms, item.Caption),
		synonymOf(interactionSynonyms, item.InteractionID),
		synonymOf(actionSynonyms, item.Action),
	}
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if url := s.cacheLookup(id); url != "" {
			return url
		}
	}
	for _, id := range candidates {
		if id != "" {
			return s.assetPath(id)
		}
	}
	s.log.Debug("no icon for menu item", zap.String("caption", item.Caption))
	return ""
}

// cacheLookup tries the exact identifier and its case/separator variants
// against the cache.
func (s *Service) cacheLookup(identifier string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range variants(identifier) {
		if url, ok := s.byID[v]; ok {
			return url
		}
	}
	return ""
}

// variants enumerates the spellings under which a catalog may carry an
// identifier: as given, lowercased, uppercased, and with the separator
// flipped between colon and underscore.
func variants(identifier string) []string {
	out := []string{identifier}
	add := func(v string) {
		for _, existing := range out {
			if existing == v {
				return
			}
		}
		out = append(out, v)
	}
	add(strings.ToLower(identifier))
	add(strings.ToUpper(identifier))
	add(strings.ReplaceAll(identifier, ":", "_"))
	add(strings.ReplaceAll(strings.ToLower(identifier), ":", "_"))
	add(strings.ReplaceAll(strings.ToUpper(identifier), ":", "_"))
	add(strings.ReplaceAll(identifier, "_", ":"))
	add(strings.ReplaceAll(strings.ToLower(identifier), "_", ":"))
	return out
}

func synonymOf(table map[string]string, key string) string {
	if key == "" {
		return ""
	}
	return table[strings.ToUpper(strings.TrimSpace(key))]
}

// assetPath is the static fallback convention: colons become underscores
// and the file lives under the asset base as a PNG.
func (s *Service) assetPath(identifier string) string {
	name := strings.ReplaceAll(identifier, ":", "_")
	return s.assetBase + "/" + name + ".png"
}
