package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-subscription-bot/internal/infra/i18n"
)

const (
	cbLangEN    = "lang:en"
	cbLangRU    = "lang:ru"
	cbBuy       = "buy"
	cbStatus    = "status"
	cbLanguage  = "lang"
	cbHelp      = "help"
)

// languageKeyboard is intentionally bilingual: it is shown before the
// user has a language preference.
func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English 🇬🇧", cbLangEN),
			tgbotapi.NewInlineKeyboardButtonData("Русский 🇷🇺", cbLangRU),
		),
	)
}

func mainMenuKeyboard(t *i18n.Translator) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.T("btn_subscribe"), cbBuy),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.T("btn_status"), cbStatus),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.T("btn_language"), cbLanguage),
			tgbotapi.NewInlineKeyboardButtonData(t.T("btn_help"), cbHelp),
		),
	)
}

func payKeyboard(t *i18n.Translator, url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(t.T("btn_pay"), url),
		),
	)
}
