// Package currency форматирует цены под активный язык интерфейса.
// Цены каталога хранятся в рублях; английская локаль показывает доллары
// по фиксированному курсу.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ExchangeRate фиксированный курс RUB -> USD
const ExchangeRate = 80.0

// Formatter чистый преобразователь суммы в строку отображения
type Formatter struct {
	lang    language.Tag
	printer *message.Printer
}

// ForLanguage создаёт форматтер для кода языка ("ru", "en", ...).
// Неизвестные коды ведут себя как базовая локаль (рубли).
func ForLanguage(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Russian
	}
	return &Formatter{lang: tag, printer: message.NewPrinter(tag)}
}

// Format возвращает строку вида "1 450.00 ₽" либо "18.13 $"
func (f *Formatter) Format(price float64) string {
	amount := price
	unit := "₽"
	if f.isEnglish() {
		amount = price / ExchangeRate
		unit = "$"
	}
	return f.printer.Sprintf("%.2f %s", amount, unit)
}

func (f *Formatter) isEnglish() bool {
	base, _ := f.lang.Base()
	return base.String() == "en"
}
