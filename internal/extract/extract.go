// Package extract projects typed domain values out of parsed response
// documents. The backend's naming is not perfectly consistent across
// operations and environments, so every extractor runs an ordered lookup
// chain: exact message-area/entity name first, then substring-synonym
// fallbacks, before giving up and returning an empty value. Extractors
// never fail on "not found"; only the envelope codec fails, and only on
// malformed markup.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

// Extractor holds the logger shared by all projection functions. A nil
// logger is replaced with a no-op logger so library use stays quiet.
type Extractor struct {
	log *zap.Logger
}

// New creates an Extractor.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// =============================================================================
// LOOKUP CHAINS
// =============================================================================

// lookup is one step of a fallback chain: a human-readable description for
// degradation logging plus a predicate over the uppercased NAME attribute.
// Making the chain data instead of nested conditionals keeps each step
// independently testable.
type lookup struct {
	desc  string
	match func(name string) bool
}

// exact matches the NAME attribute exactly (after uppercasing).
func exact(name string) lookup {
	want := strings.ToUpper(name)
	return lookup{
		desc:  "exact " + want,
		match: func(n string) bool { return n == want },
	}
}

// containsAll matches a NAME containing every given fragment in any order.
func containsAll(parts ...string) lookup {
	upper := make([]string, len(parts))
	for i, p := range parts {
		upper[i] = strings.ToUpper(p)
	}
	return lookup{
		desc: "contains " + strings.Join(upper, "+"),
		match: func(n string) bool {
			for _, p := range upper {
				if !strings.Contains(n, p) {
					return false
				}
			}
			return true
		},
	}
}

// findNamed scans candidates for the first node whose NAME attribute
// satisfies the chain, trying each chain step in order. Every step past
// the first that actually matches is a degradation and is logged.
func (e *Extractor) findNamed(what string, candidates []*envelope.Node, chain ...lookup) *envelope.Node {
	for i, step := range chain {
		for _, c := range candidates {
			name := strings.ToUpper(strings.TrimSpace(c.Attr("NAME", "")))
			if name == "" {
				continue
			}
			if step.match(name) {
				if i > 0 {
					e.log.Debug("lookup degraded to fallback",
						zap.String("what", what),
						zap.String("step", step.desc),
						zap.String("matched", name))
				}
				return c
			}
		}
	}
	e.log.Debug("lookup exhausted", zap.String("what", what))
	return nil
}

// findAllNamed collects every candidate satisfying the earliest chain
// step that matches at all. Responses may legally repeat an area name and
// every occurrence counts; later chain steps only apply when the earlier
// ones matched nothing.
func (e *Extractor) findAllNamed(what string, candidates []*envelope.Node, chain ...lookup) []*envelope.Node {
	for i, step := range chain {
		var out []*envelope.Node
		for _, c := range candidates {
			name := strings.ToUpper(strings.TrimSpace(c.Attr("NAME", "")))
			if name == "" {
				continue
			}
			if step.match(name) {
				out = append(out, c)
			}
		}
		if len(out) > 0 {
			if i > 0 {
				e.log.Debug("lookup degraded to fallback",
					zap.String("what", what),
					zap.String("step", step.desc),
					zap.Int("matched", len(out)))
			}
			return out
		}
	}
	e.log.Debug("lookup exhausted", zap.String("what", what))
	return nil
}

// findEntity locates an ENTITY anywhere in the document via a chain.
func (e *Extractor) findEntity(doc *envelope.Document, what string, chain ...lookup) *envelope.Node {
	return e.findNamed(what, doc.FindAll("ENTITY"), chain...)
}

// findAreas locates every MESSAGEAREA satisfying a chain.
func (e *Extractor) findAreas(doc *envelope.Document, what string, chain ...lookup) []*envelope.Node {
	return e.findAllNamed(what, doc.FindAll("MESSAGEAREA"), chain...)
}

// field reads a leaf value from an attribute group: child-element text
// first, then a same-named attribute. Field presence is never guaranteed,
// so absence degrades to the empty string.
func field(group *envelope.Node, name string) string {
	if v := group.ChildText(name, ""); v != "" {
		return v
	}
	return group.Attr(name, "")
}

// fieldOf reads a leaf value trying several wire names in order.
func fieldOf(group *envelope.Node, names ...string) string {
	for _, n := range names {
		if v := field(group, n); v != "" {
			return v
		}
	}
	return ""
}

// childFieldOf reads a leaf value from child elements only, never from
// attributes. Needed for field names like NAME that collide with the
// structural NAME attribute every attribute group carries.
func childFieldOf(group *envelope.Node, names ...string) string {
	for _, n := range names {
		if v := group.ChildText(n, ""); v != "" {
			return v
		}
	}
	return ""
}

// groupsOf flattens an entity into its attribute groups, one step of
// leniency at a time: SET children first, bare groups second, and as a
// last resort the sets themselves act as groups (some environments omit
// the ATTRIBUTEGROUP level entirely).
func groupsOf(entity *envelope.Node) []*envelope.Node {
	if entity == nil {
		return nil
	}
	var out []*envelope.Node
	sets := entity.FindAll("SET")
	if len(sets) == 0 {
		return entity.FindAll("ATTRIBUTEGROUP")
	}
	for _, set := range sets {
		groups := set.FindAll("ATTRIBUTEGROUP")
		if len(groups) == 0 {
			out = append(out, set)
			continue
		}
		out = append(out, groups...)
	}
	return out
}

// =============================================================================
// MESSAGE EXTRACTION AND CLASSIFICATION
// =============================================================================

// messageAreaChain matches the two known message areas plus the synonym
// spellings observed in older environments.
var (
	userMessagesChain = []lookup{
		exact("USER_MESSAGES"),
		containsAll("USER", "MESSAGE"),
	}
	systemMessagesChain = []lookup{
		exact("SYSTEM_MESSAGES"),
		containsAll("SYSTEM", "MESSAGE"),
	}
)

// Messages pulls user and system messages out of a response and merges
// them, user messages first. A response with no message areas yields an
// empty slice.
func (e *Extractor) Messages(doc *envelope.Document) []types.UserMessage {
	var out []types.UserMessage
	out = append(out, e.areaMessages(doc, "user messages", userMessagesChain)...)
	out = append(out, e.areaMessages(doc, "system messages", systemMessagesChain)...)
	return out
}

func (e *Extractor) areaMessages(doc *envelope.Document, what string, chain []lookup) []types.UserMessage {
	var out []types.UserMessage
	for _, area := range e.findAreas(doc, what, chain...) {
		for _, n := range area.FindAll("MESSAGE") {
			out = append(out, types.UserMessage{
				Name:          n.Attr("NAME", ""),
				CriticalLevel: n.Attr("CRITICALLEVEL", "0"),
				Caption:       fieldOf(n, "CAPTION"),
				Description:   fieldOf(n, "DESCRIPTION"),
			})
		}
	}
	return out
}

// Classify applies the backend's severity contract to a merged message
// list: critical level >= 6 aborts as a system error (and wins over level
// 1 when both are present), level 1 aborts as a user error, anything else
// proceeds. Classification runs before positive extraction because a
// well-formed response can carry nothing but an error payload.
func Classify(msgs []types.UserMessage) error {
	var userErr *types.BackendError
	for _, m := range msgs {
		level := m.LevelInt()
		switch {
		case level >= types.SystemErrorLevel:
			return &types.BackendError{Level: level, Caption: captionOf(m)}
		case level == types.UserErrorLevel && userErr == nil:
			userErr = &types.BackendError{Level: level, Caption: captionOf(m)}
		}
	}
	if userErr != nil {
		return userErr
	}
	return nil
}

// captionOf picks the user-visible text of a message, degrading from
// caption to description to the message name.
func captionOf(m types.UserMessage) string {
	if m.Caption != "" {
		return m.Caption
	}
	if m.Description != "" {
		return m.Description
	}
	return m.Name
}
