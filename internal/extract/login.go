package extract

import (
	"strings"

	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/types"
)

var loginEntityChain = []lookup{
	exact("LOGIN_CONFIRMATION"),
	containsAll("LOGIN", "CONFIRM"),
	containsAll("LOGIN"),
}

var loginTemplateChain = []lookup{
	exact("LOGIN_TEMPLATE"),
	containsAll("LOGIN", "TEMPLATE"),
	containsAll("TEMPLATE"),
}

// Login projects a login confirmation. An empty or missing token is an
// unconditional AuthenticationError regardless of any other fields
// present; the backend re-issues the token on every successful login and
// a confirmation without one is useless.
func (e *Extractor) Login(doc *envelope.Document) (*types.LoginResult, error) {
	token := doc.FindFirst("TOKEN").TrimmedText("")
	if token == "" {
		e.log.Debug("login confirmation carries no token")
		return nil, &types.AuthenticationError{Reason: "login response carried no token"}
	}

	res := &types.LoginResult{
		Token:    token,
		Messages: e.Messages(doc),
	}

	if entity := e.findEntity(doc, "login confirmation", loginEntityChain...); entity != nil {
		for _, g := range groupsOf(entity) {
			if name := displayNameOf(g); name != "" && res.DisplayName == "" {
				res.DisplayName = name
			}
			if isSupplierFlag(g) {
				res.IsSupplier = true
			}
		}
	}

	e.log.Info("login confirmed",
		zap.String("display_name", res.DisplayName),
		zap.Bool("is_supplier", res.IsSupplier))
	return res, nil
}

// displayNameOf derives the user-facing name, preferring a "last, first"
// concatenation over any single display-name field when both are present.
func displayNameOf(group *envelope.Node) string {
	last := fieldOf(group, "LASTNAME", "NAME_LAST")
	first := fieldOf(group, "FIRSTNAME", "NAME_FIRST")
	switch {
	case last != "" && first != "":
		return last + ", " + first
	case last != "":
		return last
	}
	return fieldOf(group, "DISPLAYNAME", "USERNAME")
}

// isSupplierFlag reads the stored supplier-role marker. The backend emits
// it in several spellings; any truthy value counts.
func isSupplierFlag(group *envelope.Node) bool {
	v := strings.ToUpper(fieldOf(group, "ISSUPPLIER", "IS_SUPPLIER"))
	if v == "X" || v == "TRUE" || v == "1" || v == "YES" {
		return true
	}
	role := strings.ToUpper(fieldOf(group, "ROLE"))
	return strings.Contains(role, "SUPPLIER")
}

// LoginTemplate projects the field captions of the login mask. A missing
// template degrades to an empty list, never an error.
func (e *Extractor) LoginTemplate(doc *envelope.Document) []types.UIText {
	entity := e.findEntity(doc, "login template", loginTemplateChain...)
	return e.textsFrom(entity)
}
