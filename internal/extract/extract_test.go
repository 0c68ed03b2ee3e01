package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

func mustParse(t *testing.T, wire string) *envelope.Document {
	t.Helper()
	doc, err := envelope.Parse(wire)
	require.NoError(t, err)
	return doc
}

func TestMessages_MergeAndAbsence(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="LOGIN">
		<MESSAGEAREA NAME="USER_MESSAGES">
			<MESSAGE NAME="M1" CRITICALLEVEL="0"><CAPTION>welcome</CAPTION></MESSAGE>
		</MESSAGEAREA>
		<MESSAGEAREA NAME="SYSTEM_MESSAGES">
			<MESSAGE NAME="M2" CRITICALLEVEL="6"><CAPTION>backend down</CAPTION></MESSAGE>
		</MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	msgs := New(nil).Messages(doc)
	require.Len(t, msgs, 2)
	assert.Equal(t, "welcome", msgs[0].Caption)
	assert.Equal(t, "backend down", msgs[1].Caption)

	// Zero message areas is a valid response.
	empty := mustParse(t, `<ENVELOPE><MESSAGE NAME="X"></MESSAGE></ENVELOPE>`)
	assert.Empty(t, New(nil).Messages(empty))
}

func TestMessages_RepeatedAreas(t *testing.T) {
	// An area name may occur several times; messages from every
	// occurrence count, so a severe message in a later area still aborts.
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="LOGIN">
		<MESSAGEAREA NAME="USER_MESSAGES">
			<MESSAGE NAME="M1" CRITICALLEVEL="0"><CAPTION>welcome</CAPTION></MESSAGE>
		</MESSAGEAREA>
		<MESSAGEAREA NAME="USER_MESSAGES">
			<MESSAGE NAME="M2" CRITICALLEVEL="6"><CAPTION>session expired</CAPTION></MESSAGE>
		</MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	msgs := New(nil).Messages(doc)
	require.Len(t, msgs, 2)
	assert.Equal(t, "welcome", msgs[0].Caption)
	assert.Equal(t, "session expired", msgs[1].Caption)

	err := Classify(msgs)
	var be *types.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "session expired", be.Caption)
	assert.True(t, be.IsSystem())
}

func TestClassify(t *testing.T) {
	msg := func(level, caption string) types.UserMessage {
		return types.UserMessage{Name: "M", CriticalLevel: level, Caption: caption}
	}

	tests := []struct {
		name      string
		msgs      []types.UserMessage
		wantErr   bool
		wantLevel int
		wantText  string
	}{
		{"no messages", nil, false, 0, ""},
		{"informational only", []types.UserMessage{msg("0", "ok")}, false, 0, ""},
		{"user error", []types.UserMessage{msg("1", "bad password")}, true, 1, "bad password"},
		{"system error", []types.UserMessage{msg("6", "boom")}, true, 6, "boom"},
		{"system beyond six", []types.UserMessage{msg("10", "fatal")}, true, 10, "fatal"},
		{
			// Numeric comparison: lexically "10" < "6", numerically it is critical.
			"system wins over user",
			[]types.UserMessage{msg("1", "user"), msg("10", "system")},
			true, 10, "system",
		},
		{"unparseable level is informational", []types.UserMessage{msg("high", "odd")}, false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.msgs)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var be *types.BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.wantLevel, be.Level)
			assert.Equal(t, tt.wantText, be.Caption)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("missing token fails unconditionally", func(t *testing.T) {
		doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="LOGIN">
			<MESSAGEAREA NAME="DATA"><ENTITY NAME="LOGIN_CONFIRMATION">
				<SET><ATTRIBUTEGROUP NAME="USER"><DISPLAYNAME>Jane Doe</DISPLAYNAME></ATTRIBUTEGROUP></SET>
			</ENTITY></MESSAGEAREA>
		</MESSAGE></ENVELOPE>`)
		_, err := New(nil).Login(doc)
		var ae *types.AuthenticationError
		require.ErrorAs(t, err, &ae)
	})

	t.Run("prefers last, first over display name", func(t *testing.T) {
		doc := mustParse(t, `<ENVELOPE><TOKEN>tok-1</TOKEN><MESSAGE NAME="LOGIN">
			<MESSAGEAREA NAME="DATA"><ENTITY NAME="LOGIN_CONFIRMATION">
				<SET><ATTRIBUTEGROUP NAME="USER">
					<LASTNAME>Doe</LASTNAME><FIRSTNAME>Jane</FIRSTNAME>
					<DISPLAYNAME>jdoe</DISPLAYNAME>
				</ATTRIBUTEGROUP></SET>
			</ENTITY></MESSAGEAREA>
		</MESSAGE></ENVELOPE>`)
		res, err := New(nil).Login(doc)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", res.Token)
		assert.Equal(t, "Doe, Jane", res.DisplayName)
		assert.False(t, res.IsSupplier)
	})

	t.Run("supplier role flag", func(t *testing.T) {
		doc := mustParse(t, `<ENVELOPE><TOKEN>tok-2</TOKEN><MESSAGE NAME="LOGIN">
			<MESSAGEAREA NAME="DATA"><ENTITY NAME="LOGIN_CONFIRMATION">
				<SET><ATTRIBUTEGROUP NAME="USER">
					<DISPLAYNAME>ACME Inc</DISPLAYNAME><ISSUPPLIER>X</ISSUPPLIER>
				</ATTRIBUTEGROUP></SET>
			</ENTITY></MESSAGEAREA>
		</MESSAGE></ENVELOPE>`)
		res, err := New(nil).Login(doc)
		require.NoError(t, err)
		assert.True(t, res.IsSupplier)
		assert.Equal(t, "ACME Inc", res.DisplayName)
	})
}

func TestSuppliers(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="GET_SUPPLIER_LIST">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="SUPPLIER_LIST">
			<SET><ATTRIBUTEGROUP NAME="GENERAL" KEY="k1" KEYVERSION="1">
				<SHORTNAME>ACME</SHORTNAME><DISPLAYNAME>Acme Corp</DISPLAYNAME>
				<PONUMBER>PO-7</PONUMBER><CITY>Berlin</CITY>
				<REGION>EMEA</REGION>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="GENERAL">
				<SHORTNAME>SOLO</SHORTNAME>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="GENERAL">
				<CITY>Ghost Town</CITY>
			</ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	got := New(nil).Suppliers(doc)
	want := []types.Supplier{
		{
			ShortName: "ACME", DisplayName: "Acme Corp", PONumber: "PO-7",
			City: "Berlin", Key: "k1", KeyVersion: "1",
			Extra: map[string]string{"REGION": "EMEA"},
		},
		{ShortName: "SOLO"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("supplier projection mismatch (-want +got):\n%s", diff)
	}
}

func TestSuppliers_FallbackEntityName(t *testing.T) {
	// Older environments name the entity LIST_OF_SUPPLIERS; the substring
	// fallback must still find it.
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="GET_SUPPLIER_LIST">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="LIST_OF_SUPPLIERS">
			<SET><ATTRIBUTEGROUP NAME="G"><SHORTNAME>ACME</SHORTNAME></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	got := New(nil).Suppliers(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "ACME", got[0].ShortName)
}

func TestSuppliers_MissingEntityIsEmpty(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="GET_SUPPLIER_LIST"></MESSAGE></ENVELOPE>`)
	assert.Empty(t, New(nil).Suppliers(doc))
}

func TestPOSList(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="GET_POS_LIST">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="POS_LIST">
			<SET><ATTRIBUTEGROUP NAME="G">
				<DISPLAYNAME>Kiosk West</DISPLAYNAME><LOCATION>Hamburg</LOCATION>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G"><LOCATION>Nowhere</LOCATION></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	got := New(nil).POSList(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Kiosk West", got[0].DisplayName)
	assert.Equal(t, "Hamburg", got[0].Location)
}

func TestMenuItems(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="APP_INIT">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="MENU_ITEMS">
			<SET><ATTRIBUTEGROUP NAME="G" KEY="mk">
				<ID>10</ID><SORT>2</SORT><CAPTION>Suppliers</CAPTION>
				<ACTION>NAVIGATE</ACTION><INTERACTIONID>SUPPLIER_LIST:VIEW</INTERACTIONID>
				<MENUTYPE>PAGE</MENUTYPE><TOOLTIP>Open the supplier list</TOOLTIP>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G">
				<ID>11</ID><PARENTID>10</PARENTID><CAPTION>Details</CAPTION>
				<SORT>not-a-number</SORT>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G"><CAPTION>no id, skipped</CAPTION></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	items := New(nil).MenuItems(doc)
	require.Len(t, items, 2)
	assert.Equal(t, "10", items[0].ID)
	assert.Equal(t, 2, items[0].SortOrder)
	assert.Equal(t, "SUPPLIER_LIST:VIEW", items[0].InteractionID)
	assert.Equal(t, "mk", items[0].Key)
	assert.Equal(t, "10", items[1].ParentID)
	assert.Equal(t, 0, items[1].SortOrder) // unparseable sort degrades to 0
}

func TestInteractionNames_FallsBackToMenu(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="APP_INIT">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="MENU_ITEMS">
			<SET><ATTRIBUTEGROUP NAME="G"><ID>1</ID><INTERACTIONID>ORDER_CREATE</INTERACTIONID></ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G"><ID>2</ID><INTERACTIONID>pos_overview</INTERACTIONID></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	names := New(nil).InteractionNames(doc)
	assert.Equal(t, []string{"ORDER_CREATE", "POS_OVERVIEW"}, names)
}

func TestDerivePermissions(t *testing.T) {
	tests := []struct {
		name       string
		isSupplier bool
		names      []string
		want       types.Permissions
	}{
		{
			name:       "supplier short-circuits to pos only",
			isSupplier: true,
			names:      []string{"ACTIVITY_VIEW", "ORDER_CREATE"},
			want:       types.Permissions{ShowPOS: true},
		},
		{
			name:  "order needs both fragments",
			names: []string{"ORDER_VIEW"},
			want:  types.Permissions{},
		},
		{
			name:  "order create grants order",
			names: []string{"ORDER_CREATE"},
			want:  types.Permissions{ShowOrder: true},
		},
		{
			name:  "activity and pos",
			names: []string{"SUPPLIER_ACTIVITY", "POS_OVERVIEW"},
			want:  types.Permissions{ShowActivity: true, ShowPOS: true},
		},
		{
			// Known looseness of the heuristic, preserved on purpose:
			// the fragments may appear anywhere in a single name.
			name:  "create order reversed still grants",
			names: []string{"CREATE_BACKORDER"},
			want:  types.Permissions{ShowOrder: true},
		},
		{name: "empty input", names: nil, want: types.Permissions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePermissions(tt.isSupplier, tt.names)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImages(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="GET_IMAGE_CATALOG">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="IMAGE_CATALOG">
			<SET><ATTRIBUTEGROUP NAME="G" KEY="ik">
				<IDENTIFIER>icon:supplier</IDENTIFIER><IMAGE>aGVsbG8=</IMAGE>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G">
				<IDENTIFIER>icon:empty</IDENTIFIER><IMAGE>base64_data</IMAGE>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G"><IMAGE>aGVsbG8=</IMAGE></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	imgs := New(nil).Images(doc)
	require.Len(t, imgs, 1)
	assert.Equal(t, "icon:supplier", imgs[0].Identifier)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", imgs[0].DataURL)
}

func TestCaptions(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="PRE_INIT">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="UI_TEXTS">
			<SET><ATTRIBUTEGROUP NAME="G" KEY="t1">
				<NAME>LOGIN.TITLE</NAME><CAPTION>Sign in</CAPTION>
			</ATTRIBUTEGROUP></SET>
			<SET><ATTRIBUTEGROUP NAME="G"><CAPTION>nameless, skipped</CAPTION></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	texts := New(nil).Captions(doc)
	require.Len(t, texts, 1)
	assert.Equal(t, types.UIText{Name: "LOGIN.TITLE", Caption: "Sign in", Key: "t1"}, texts[0])
}

func TestLoginTemplate(t *testing.T) {
	doc := mustParse(t, `<ENVELOPE><MESSAGE NAME="LOGIN">
		<MESSAGEAREA NAME="DATA"><ENTITY NAME="LOGIN_TEMPLATE">
			<SET><ATTRIBUTEGROUP NAME="G"><NAME>FIELD.USER</NAME><CAPTION>User name</CAPTION></ATTRIBUTEGROUP></SET>
		</ENTITY></MESSAGEAREA>
	</MESSAGE></ENVELOPE>`)

	fields := New(nil).LoginTemplate(doc)
	require.Len(t, fields, 1)
	assert.Equal(t, "FIELD.USER", fields[0].Name)
}
