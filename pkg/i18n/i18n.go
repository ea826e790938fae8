package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	MsgNotFound          = "ErrorNotFound"
	MsgInvalidInput      = "ErrorInvalidInput"
	MsgForbidden         = "ErrorForbidden"
	MsgUnauthenticated   = "ErrorUnauthenticated"
	MsgInvalidTransition = "ErrorInvalidTransition"
	MsgInternal          = "ErrorInternal"
)

type Translator struct {
	bundle *goi18n.Bundle
}

// New loads the embedded en and ru message files. English is the fallback language.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, path := range []string{"locales/active.en.json", "locales/active.ru.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, err
		}
	}
	return &Translator{bundle: bundle}, nil
}

// T localizes messageID for an Accept-Language header value. Unknown ids are returned as-is.
func (t *Translator) T(acceptLanguage, messageID string) string {
	if t == nil {
		return messageID
	}
	loc := goi18n.NewLocalizer(t.bundle, acceptLanguage)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
