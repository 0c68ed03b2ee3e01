package extract

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

var menuChain = []lookup{
	exact("MENU_ITEMS"),
	containsAll("MENU", "ITEM"),
	containsAll("MENU"),
}

var permissionsChain = []lookup{
	exact("PERMISSIONS"),
	containsAll("PERMISSION"),
	containsAll("INTERACTION"),
}

// MenuItems projects the flat menu catalog of the app-init response.
// Items without an id cannot be linked into the forest and are skipped.
func (e *Extractor) MenuItems(doc *envelope.Document) []types.MenuItem {
	entity := e.findEntity(doc, "menu items", menuChain...)
	if entity == nil {
		return nil
	}
	var out []types.MenuItem
	for _, g := range groupsOf(entity) {
		item := types.MenuItem{
			ID:            fieldOf(g, "ID", "MENUID"),
			ParentID:      fieldOf(g, "PARENTID", "PARENT"),
			Action:        fieldOf(g, "ACTION"),
			Caption:       fieldOf(g, "CAPTION"),
			InteractionID: fieldOf(g, "INTERACTIONID", "INTERACTION"),
			MenuType:      fieldOf(g, "MENUTYPE", "TYPE"),
			Tooltip:       fieldOf(g, "TOOLTIP"),
			Key:           g.Attr("KEY", ""),
			KeyVersion:    g.Attr("KEYVERSION", ""),
			SortOrder:     sortOrderOf(g),
		}
		if item.ID == "" {
			e.log.Debug("skipping menu item without id", zap.String("caption", item.Caption))
			continue
		}
		out = append(out, item)
	}
	return out
}

// sortOrderOf reads the SORT leaf or attribute. Missing or unparseable
// sort values degrade to 0 so the item still renders, just first among
// its siblings.
func sortOrderOf(group *envelope.Node) int {
	v := fieldOf(group, "SORT", "SORTORDER")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// InteractionNames collects the interaction-name strings the permission
// derivation heuristic feeds on. The primary source is the PERMISSIONS
// entity; when absent, the menu items' interaction ids serve as fallback,
// which mirrors what the backend actually populates in older releases.
func (e *Extractor) InteractionNames(doc *envelope.Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	if entity := e.findEntity(doc, "permissions", permissionsChain...); entity != nil {
		for _, g := range groupsOf(entity) {
			add(childFieldOf(g, "INTERACTIONID", "INTERACTION", "NAME"))
		}
	}
	if len(out) == 0 {
		for _, item := range e.MenuItems(doc) {
			add(item.InteractionID)
		}
	}
	return out
}

// DerivePermissions applies the visibility heuristic. The stored supplier
// role short-circuits to POS-only visibility regardless of which
// interaction names are present. For everyone else the derivation is
// substring matching over interaction names; the looseness (ORDER+CREATE
// anywhere in one name grants order visibility) is intentional
// compatibility with the backend's naming and must not be tightened.
func DerivePermissions(isSupplier bool, interactionNames []string) types.Permissions {
	if isSupplier {
		return types.Permissions{ShowPOS: true}
	}
	var p types.Permissions
	for _, raw := range interactionNames {
		name := strings.ToUpper(raw)
		if strings.Contains(name, "ACTIVITY") {
			p.ShowActivity = true
		}
		if strings.Contains(name, "ORDER") && strings.Contains(name, "CREATE") {
			p.ShowOrder = true
		}
		if strings.Contains(name, "POS") {
			p.ShowPOS = true
		}
	}
	return p
}
