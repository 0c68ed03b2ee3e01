package envelope

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"salesdesk/internal/types"
)

// Language tags understood by the backend.
const (
	LanguageGerman  = "LANGUAGE:GERMAN"
	LanguageEnglish = "LANGUAGE:ENGLISH"
)

// Originator is the fixed originator tag the backend expects from this
// client family.
const Originator = "SALESDESK"

// DetectLanguage maps a runtime locale to the backend language tag. The
// match is a deliberate substring check on "de" (so "de_DE.UTF-8",
// "de-AT" and plain "de" all select German); anything else, including an
// absent or unrecognizable locale, deterministically selects English.
func DetectLanguage(locale string) string {
	if strings.Contains(strings.ToLower(locale), "de") {
		return LanguageGerman
	}
	return LanguageEnglish
}

// LocaleFromEnv reads the process locale the way POSIX tools do: LC_ALL
// wins over LC_MESSAGES wins over LANG.
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// xmlEscaper covers the five characters that must not appear raw in
// attribute values or text content.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// BuildRequest serializes a request descriptor into the wire envelope.
// The token is interpolated verbatim (empty on first contact), the
// language tag is derived from the session locale, and every request
// carries a fresh correlation id for log matching.
func BuildRequest(op types.Operation, params []types.Param, sess types.Session) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n<ENVELOPE>")
	b.WriteString("<TOKEN>")
	b.WriteString(xmlEscaper.Replace(sess.Token))
	b.WriteString("</TOKEN>")
	b.WriteString("<LANGUAGE>")
	b.WriteString(DetectLanguage(sess.Locale))
	b.WriteString("</LANGUAGE>")
	b.WriteString("<ORIGINATOR>")
	b.WriteString(Originator)
	b.WriteString("</ORIGINATOR>")
	b.WriteString("<REQUESTID>")
	b.WriteString(uuid.NewString())
	b.WriteString("</REQUESTID>")
	b.WriteString(`<APPLICATION_REQUEST NAME="`)
	b.WriteString(xmlEscaper.Replace(op.Name))
	b.WriteString(`" VERSION="`)
	b.WriteString(xmlEscaper.Replace(op.Version))
	b.WriteString(`" MODE="`)
	b.WriteString(string(op.Mode))
	b.WriteString(`">`)
	if len(params) > 0 {
		b.WriteString("<PARAMETERS>")
		for _, p := range params {
			b.WriteString(`<PARAMETER NAME="`)
			b.WriteString(xmlEscaper.Replace(p.Name))
			b.WriteString(`" VALUE="`)
			b.WriteString(xmlEscaper.Replace(p.Value))
			b.WriteString(`"/>`)
		}
		b.WriteString("</PARAMETERS>")
	}
	b.WriteString("</APPLICATION_REQUEST>")
	b.WriteString("</ENVELOPE>")
	return b.String()
}
