// Package types provides shared type definitions used across salesdesk packages.
// This package exists to break import cycles between the envelope codec, the
// extractors, and the domain caches. Types in this package are foundational
// data structures with no complex dependencies.
package types

import (
	"strconv"
	"strings"
)

// =============================================================================
// WIRE-LEVEL TYPES
// =============================================================================

// InteractionMode is the backend's request mode discriminator.
type InteractionMode string

const (
	ModeView     InteractionMode = "VIEW"
	ModeCreate   InteractionMode = "CREATE"
	ModeTemplate InteractionMode = "TEMPLATE"
)

// Operation identifies a backend operation by its interaction name and
// protocol version.
type Operation struct {
	Name    string
	Version string
	Mode    InteractionMode
}

// Known backend operations. Name plus Mode double as the coalescing key in
// the transport layer, so two distinct operations must never share both.
var (
	OpPreInit       = Operation{Name: "PRE_INIT", Version: "001", Mode: ModeView}
	OpLoginTemplate = Operation{Name: "LOGIN", Version: "001", Mode: ModeTemplate}
	OpLogin         = Operation{Name: "LOGIN", Version: "001", Mode: ModeCreate}
	OpLogout        = Operation{Name: "LOGOUT", Version: "001", Mode: ModeCreate}
	OpAppInit       = Operation{Name: "APP_INIT", Version: "001", Mode: ModeView}
	OpSupplierList  = Operation{Name: "GET_SUPPLIER_LIST", Version: "001", Mode: ModeView}
	OpPOSList       = Operation{Name: "GET_POS_LIST", Version: "001", Mode: ModeView}
	OpImageCatalog  = Operation{Name: "GET_IMAGE_CATALOG", Version: "001", Mode: ModeView}
)

// Key returns the transport coalescing key for the operation.
func (o Operation) Key() string {
	return o.Name + ":" + string(o.Mode)
}

// Param is a single request parameter inside the APPLICATION_REQUEST block.
type Param struct {
	Name  string
	Value string
}

// Session carries the client-side request context interpolated into every
// outbound envelope. Token is empty before the first successful login.
type Session struct {
	Token  string
	Locale string
}

// UserMessage is a backend message carried in a USER_MESSAGES or
// SYSTEM_MESSAGES area. CriticalLevel is kept in its string-encoded wire
// form; use LevelInt for comparisons, never lexical ordering.
type UserMessage struct {
	Name          string
	CriticalLevel string
	Caption       string
	Description   string
}

// LevelInt parses the string-encoded critical level. Unparseable levels
// degrade to 0 (informational).
func (m UserMessage) LevelInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.CriticalLevel))
	if err != nil {
		return 0
	}
	return n
}

// =============================================================================
// DOMAIN TYPES
// =============================================================================

// MenuItem is one flat entry of the backend menu catalog. ParentID links
// items into a forest; an empty (after trimming) ParentID marks a root.
type MenuItem struct {
	ID            string
	SortOrder     int
	ParentID      string
	Action        string
	Caption       string
	InteractionID string
	MenuType      string
	Tooltip       string
	Key           string
	KeyVersion    string
}

// IsRoot reports whether the item belongs at the top level of the menu
// forest. Whitespace-only parent references count as absent.
func (m MenuItem) IsRoot() bool {
	return strings.TrimSpace(m.ParentID) == ""
}

// UIText is one entry of the flat localization dictionary. Name is the
// lookup key; uniqueness is assumed and duplicates are last-write-wins.
type UIText struct {
	Name    string
	Caption string
	Key     string
}

// Supplier is a flat supplier record projected from an
// entity/set/attributegroup triple. Extra holds leaf fields the projection
// did not anticipate, keyed by their wire field name.
type Supplier struct {
	ShortName   string
	DisplayName string
	PONumber    string
	City        string
	Key         string
	KeyVersion  string
	Extra       map[string]string
}

// HasIdentity reports whether the record carries at least one identifying
// field. Records without identity are dropped during extraction.
func (s Supplier) HasIdentity() bool {
	return s.ShortName != "" || s.DisplayName != "" || s.PONumber != ""
}

// POSItem is a flat point-of-sale record, shaped like Supplier.
type POSItem struct {
	ShortName   string
	DisplayName string
	PONumber    string
	Location    string
	Key         string
	KeyVersion  string
	Extra       map[string]string
}

// HasIdentity reports whether the record carries at least one identifying
// field.
func (p POSItem) HasIdentity() bool {
	return p.ShortName != "" || p.DisplayName != "" || p.PONumber != ""
}

// Permissions are the coarse visibility switches derived from the login
// role flag and the interaction names present in the app-init response.
type Permissions struct {
	ShowActivity bool `json:"show_activity"`
	ShowOrder    bool `json:"show_order"`
	ShowPOS      bool `json:"show_pos"`
}

// UIImageItem is one entry of the backend image catalog. ImageData is the
// raw base64 payload, DataURL the ready-to-render form.
type UIImageItem struct {
	Identifier string
	ImageData  string
	DataURL    string
	Key        string
	KeyVersion string
}

// ImagePlaceholder is the backend's literal sentinel for "no image". A
// payload equal to this value must never be stored as a resolvable image.
const ImagePlaceholder = "base64_data"

// LoginResult is the confirmed outcome of a login round trip.
type LoginResult struct {
	Token       string
	DisplayName string
	IsSupplier  bool
	Messages    []UserMessage
}
