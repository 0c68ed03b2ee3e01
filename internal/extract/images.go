package extract

import (
	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

var imagesChain = []lookup{
	exact("IMAGE_CATALOG"),
	containsAll("IMAGE", "CATALOG"),
	containsAll("IMAGE"),
}

// dataURLPrefix turns a raw base64 payload into a renderable URL. The
// backend only ever ships PNG.
const dataURLPrefix = "data:image/png;base64,"

// Images projects the embedded image catalog. A payload equal to the
// literal placeholder sentinel means "no image" and is excluded rather
// than stored as a broken image; entries without an identifier or payload
// are skipped the same way.
func (e *Extractor) Images(doc *envelope.Document) []types.UIImageItem {
	entity := e.findEntity(doc, "image catalog", imagesChain...)
	if entity == nil {
		return nil
	}
	var out []types.UIImageItem
	skipped := 0
	for _, g := range groupsOf(entity) {
		id := childFieldOf(g, "IDENTIFIER", "NAME")
		payload := fieldOf(g, "IMAGE", "IMAGEDATA")
		if id == "" || payload == "" || payload == types.ImagePlaceholder {
			skipped++
			continue
		}
		out = append(out, types.UIImageItem{
			Identifier: id,
			ImageData:  payload,
			DataURL:    dataURLPrefix + payload,
			Key:        g.Attr("KEY", ""),
			KeyVersion: g.Attr("KEYVERSION", ""),
		})
	}
	if skipped > 0 {
		e.log.Debug("skipped image entries", zap.Int("count", skipped))
	}
	return out
}
