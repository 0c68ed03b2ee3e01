package extract

import (
	"strings"

	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

// Entity name chains for the two list operations. The backend has been
// seen naming the supplier entity SUPPLIER_LIST, SUPPLIERLIST and
// LIST_OF_SUPPLIERS depending on environment, hence the unordered
// substring fallback.
var (
	supplierChain = []lookup{
		exact("SUPPLIER_LIST"),
		containsAll("SUPPLIER", "LIST"),
		containsAll("SUPPLIER"),
	}
	posChain = []lookup{
		exact("POS_LIST"),
		containsAll("POS", "LIST"),
		containsAll("POS"),
	}
)

// wellKnownSupplierFields are the leaf names the supplier projection
// claims; everything else lands in the typed overflow map.
var wellKnownSupplierFields = map[string]bool{
	"SHORTNAME": true, "DISPLAYNAME": true, "NAME1": true,
	"PONUMBER": true, "CITY": true,
}

// Suppliers projects the supplier list. Records lacking every identity
// field (short name, display name, PO number) are silently dropped, not
// errored: the backend pads some environments with empty trailing sets.
func (e *Extractor) Suppliers(doc *envelope.Document) []types.Supplier {
	entity := e.findEntity(doc, "supplier list", supplierChain...)
	if entity == nil {
		return nil
	}
	var out []types.Supplier
	dropped := 0
	for _, g := range groupsOf(entity) {
		s := types.Supplier{
			ShortName:   fieldOf(g, "SHORTNAME"),
			DisplayName: fieldOf(g, "DISPLAYNAME", "NAME1"),
			PONumber:    fieldOf(g, "PONUMBER"),
			City:        fieldOf(g, "CITY"),
			Key:         g.Attr("KEY", ""),
			KeyVersion:  g.Attr("KEYVERSION", ""),
			Extra:       overflowFields(g, wellKnownSupplierFields),
		}
		if !s.HasIdentity() {
			dropped++
			continue
		}
		out = append(out, s)
	}
	if dropped > 0 {
		e.log.Debug("dropped supplier records without identity fields", zap.Int("count", dropped))
	}
	return out
}

var wellKnownPOSFields = map[string]bool{
	"SHORTNAME": true, "DISPLAYNAME": true, "NAME1": true,
	"PONUMBER": true, "LOCATION": true, "CITY": true,
}

// POSList projects the point-of-sale list with the same identity filter
// as Suppliers.
func (e *Extractor) POSList(doc *envelope.Document) []types.POSItem {
	entity := e.findEntity(doc, "pos list", posChain...)
	if entity == nil {
		return nil
	}
	var out []types.POSItem
	dropped := 0
	for _, g := range groupsOf(entity) {
		p := types.POSItem{
			ShortName:   fieldOf(g, "SHORTNAME"),
			DisplayName: fieldOf(g, "DISPLAYNAME", "NAME1"),
			PONumber:    fieldOf(g, "PONUMBER"),
			Location:    fieldOf(g, "LOCATION", "CITY"),
			Key:         g.Attr("KEY", ""),
			KeyVersion:  g.Attr("KEYVERSION", ""),
			Extra:       overflowFields(g, wellKnownPOSFields),
		}
		if !p.HasIdentity() {
			dropped++
			continue
		}
		out = append(out, p)
	}
	if dropped > 0 {
		e.log.Debug("dropped pos records without identity fields", zap.Int("count", dropped))
	}
	return out
}

// overflowFields collects leaf elements the projection did not claim into
// an explicitly typed map, so callers cannot silently depend on untyped
// catch-all data. Returns nil when there is no overflow.
func overflowFields(group *envelope.Node, known map[string]bool) map[string]string {
	var extra map[string]string
	for _, c := range group.Children {
		name := strings.ToUpper(c.Name)
		if known[name] {
			continue
		}
		v := c.TrimmedText("")
		if v == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[name] = v
	}
	return extra
}
