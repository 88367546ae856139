package checkout

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Card данные платёжной карты, собранные формой оплаты
type Card struct {
	Number string
	Expiry string // MM/YY
	CVV    string
	Holder string
}

var (
	ErrCardHolderRequired = errors.New("cardholder name required")
	ErrInvalidCardNumber  = errors.New("invalid card number")
	ErrInvalidExpiry      = errors.New("invalid expiry date")
	ErrInvalidCVV         = errors.New("invalid cvv")
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate локальная проверка полей карты. Ошибки валидации показываются
// у формы и не приводят к сетевым вызовам.
func (c Card) Validate(now time.Time) error {
	if strings.TrimSpace(c.Holder) == "" {
		return ErrCardHolderRequired
	}
	if !cardNumberRe.MatchString(strings.ReplaceAll(c.Number, " ", "")) {
		return ErrInvalidCardNumber
	}
	if !validExpiry(c.Expiry, now) {
		return ErrInvalidExpiry
	}
	if !cvvRe.MatchString(c.CVV) {
		return ErrInvalidCVV
	}
	return nil
}

// MaskedNumber номер карты для отображения: видны последние 4 цифры
func (c Card) MaskedNumber() string {
	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func validExpiry(expiry string, now time.Time) bool {
	if !expiryRe.MatchString(expiry) {
		return false
	}
	mm, yy, _ := strings.Cut(expiry, "/")
	month := int(mm[0]-'0')*10 + int(mm[1]-'0')
	year := int(yy[0]-'0')*10 + int(yy[1]-'0')
	if month < 1 || month > 12 {
		return false
	}
	curYear := now.Year() % 100
	curMonth := int(now.Month())
	return year > curYear || (year == curYear && month >= curMonth)
}
