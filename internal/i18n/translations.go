// Package i18n localizes the diagnostics potlint prints. A tool that lints
// translation manifests ships its own messages through the same machinery
// it advocates.
package i18n

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// messageFiles lists the embedded catalogs loaded into the bundle.
var messageFiles = []string{"active.en.toml", "active.fr.toml"}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	localizer *i18n.Localizer
}

// NewTranslator builds a Translator for the given locale (e.g. "fr"),
// falling back to English for unknown locales and untranslated messages.
func NewTranslator(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range messageFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Warn("failed to load message file", "file", file, "error", err)
		}
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}
}

// T renders the message identified by key with the given template data.
// Unknown keys render as the key itself so a missing message never hides a
// diagnostic.
func (t *Translator) T(key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug("localization failed", "key", key, "error", err)
		return key
	}

	return msg
}
