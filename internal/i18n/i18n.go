// Package i18n translates the user-facing strings of passforge.
//
// Translations live in embedded YAML files under locales/, one per
// language, and are loaded into a single go-i18n bundle on first use.
// A Translator is bound to one language and is safe for concurrent use.
package i18n

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"sync"

	"github.com/nao1215/passforge/internal/strength"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// bundle holds every embedded translation. English is the fallback for
// messages missing in another locale.
var bundle = sync.OnceValue(func() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		panic(err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := path.Join("locales", f.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		if _, err := b.ParseMessageFileBytes(data, name); err != nil {
			panic(err)
		}
	}
	return b
})

// Translator localizes messages into one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// New returns a Translator for lang. Unsupported languages fall back to
// English.
func New(lang string) *Translator {
	return &Translator{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle(), lang),
	}
}

// Language returns the language the Translator was created for.
func (t *Translator) Language() string {
	return t.lang
}

// T translates messageID with optional template data.
// An unknown message ID is returned unchanged.
func (t *Translator) T(messageID string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// Label returns the localized label of a strength bucket.
func (t *Translator) Label(b strength.Bucket) string {
	return t.T("bucket."+b.Key(), nil)
}

// Rule returns the localized description of a scoring rule.
func (t *Translator) Rule(r strength.Rule) string {
	return t.T("rule."+string(r), nil)
}

// Bits returns the localized "~N bits" suffix shown next to a label.
func (t *Translator) Bits(bits int) string {
	return t.T("meter.bits", map[string]any{"Bits": bits})
}

// IsSupported reports whether lang has an embedded locale.
// Region subtags are ignored, so "de-AT" is supported through "de".
func IsSupported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, t := range bundle().LanguageTags() {
		if b, _ := t.Base(); b == base {
			return true
		}
	}
	return false
}

// SupportedLanguages returns the sorted language codes with a locale.
func SupportedLanguages() []string {
	tags := bundle().LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, t := range tags {
		langs = append(langs, t.String())
	}
	slices.Sort(langs)
	return langs
}
