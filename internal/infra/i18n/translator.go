package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"telegram-subscription-bot/internal/domain/model"
)

//go:embed locales
var LocalesFS embed.FS

// Translator holds the string table for one language.
type Translator struct {
	translations map[string]string
}

func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := filepath.Join("locales", fmt.Sprintf("%s.yaml", langCode))
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("parse translation file %s: %w", filePath, err)
	}
	return &Translator{translations: translations}, nil
}

// T formats the string for key. Unknown keys fall back to the key itself
// so a missing translation degrades visibly instead of panicking.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Bundle maps every supported language to its translator. The language
// preference is per user, so handlers pick at call time.
type Bundle struct {
	translators map[model.Language]*Translator
}

func NewBundle(fsys fs.FS) (*Bundle, error) {
	langs := []model.Language{model.LanguageEnglish, model.LanguageRussian}
	b := &Bundle{translators: make(map[model.Language]*Translator, len(langs))}
	for _, lang := range langs {
		tr, err := NewTranslator(fsys, string(lang))
		if err != nil {
			return nil, err
		}
		b.translators[lang] = tr
	}
	return b, nil
}

// For returns the translator for lang, defaulting to English while the
// user has not picked a language yet.
func (b *Bundle) For(lang model.Language) *Translator {
	if tr, ok := b.translators[lang]; ok {
		return tr
	}
	return b.translators[model.LanguageEnglish]
}
