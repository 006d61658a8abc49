package i18n

import (
	"strings"
	"testing"

	"telegram-subscription-bot/internal/domain/model"
)

func TestTranslator(t *testing.T) {
	tr, err := NewTranslator(LocalesFS, "en")
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}

	t.Run("returns the translated string", func(t *testing.T) {
		if got := tr.T("menu_title"); got == "" || got == "menu_title" {
			t.Errorf("expected a translation for menu_title, got %q", got)
		}
	})

	t.Run("formats arguments", func(t *testing.T) {
		got := tr.T("status_inactive", "past_due")
		if !strings.Contains(got, "past_due") {
			t.Errorf("expected the status to be interpolated, got %q", got)
		}
	})

	t.Run("unknown key falls back to the key", func(t *testing.T) {
		if got := tr.T("no_such_key"); got != "no_such_key" {
			t.Errorf("expected key fallback, got %q", got)
		}
	})

	t.Run("unknown locale file errors", func(t *testing.T) {
		if _, err := NewTranslator(LocalesFS, "xx"); err == nil {
			t.Error("expected an error for a missing locale")
		}
	})
}

func TestBundle(t *testing.T) {
	b, err := NewBundle(LocalesFS)
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}

	t.Run("serves both languages", func(t *testing.T) {
		en := b.For(model.LanguageEnglish).T("btn_subscribe")
		ru := b.For(model.LanguageRussian).T("btn_subscribe")
		if en == ru {
			t.Errorf("expected distinct translations, got %q for both", en)
		}
	})

	t.Run("defaults to English before a language is picked", func(t *testing.T) {
		def := b.For(model.LanguageNone).T("choose_language")
		en := b.For(model.LanguageEnglish).T("choose_language")
		if def != en {
			t.Errorf("expected English fallback, got %q", def)
		}
	})
}
