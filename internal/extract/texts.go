package extract

import (
	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

var textsChain = []lookup{
	exact("UI_TEXTS"),
	containsAll("UI", "TEXT"),
	containsAll("TEXT"),
	containsAll("CAPTION"),
}

// Captions projects the flat localization dictionary used both by the
// pre-init bootstrap and by the app-init menu captions. Entries without a
// name cannot be looked up and are skipped.
func (e *Extractor) Captions(doc *envelope.Document) []types.UIText {
	entity := e.findEntity(doc, "ui texts", textsChain...)
	return e.textsFrom(entity)
}

// textsFrom flattens an entity's groups into UIText entries.
func (e *Extractor) textsFrom(entity *envelope.Node) []types.UIText {
	if entity == nil {
		return nil
	}
	var out []types.UIText
	for _, g := range groupsOf(entity) {
		t := types.UIText{
			Name:    childFieldOf(g, "NAME", "TEXTNAME"),
			Caption: fieldOf(g, "CAPTION", "TEXT"),
			Key:     g.Attr("KEY", ""),
		}
		if t.Name == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
