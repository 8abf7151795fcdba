package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Supported currencies. The engine never converts between them; every
// aggregate is kept strictly per-currency.
const (
	VND CurrencyCode = "VND"
	USD CurrencyCode = "USD"
	NGN CurrencyCode = "NGN"
)

type (
	CurrencyCode string

	// Date is a day-granular calendar date, stored as UTC midnight.
	Date struct {
		time.Time
	}

	// MonetaryRecord is the shape shared by expenses and revenue
	// transactions: a non-negative amount in one currency, recognized on
	// a single calendar date (the cash-basis date).
	MonetaryRecord struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency CurrencyCode    `json:"currency"`
		Date     Date            `json:"date"`
		Category string          `json:"category"`
	}

	// ExpenseRecord is a cost. When Allocatable is set and ValidityEnd is
	// after Date, accrual reporting spreads the amount evenly over
	// [Date, ValidityEnd]; otherwise the cost belongs entirely to Date.
	ExpenseRecord struct {
		ID string `json:"id"`
		MonetaryRecord
		Allocatable bool `json:"allocatable"`
		ValidityEnd Date `json:"validity_end"`
	}

	// RevenueRecord is an incoming transaction. Status is carried for the
	// surrounding report; the engine does not branch on it.
	RevenueRecord struct {
		ID string `json:"id"`
		MonetaryRecord
		Status string `json:"status"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyCategory   = errors.New("empty category")
)

// Currencies returns the fixed currency set in stable order.
func Currencies() []CurrencyCode {
	return []CurrencyCode{VND, USD, NGN}
}

// ParseCurrency matches a currency code case-insensitively.
func ParseCurrency(s string) (CurrencyCode, bool) {
	switch CurrencyCode(strings.ToUpper(strings.TrimSpace(s))) {
	case VND:
		return VND, true
	case USD:
		return USD, true
	case NGN:
		return NGN, true
	}
	return "", false
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", *s, err)
	}
	*d = DateOf(t)
	return nil
}

func (m MonetaryRecord) Validate() error {
	if m.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if _, ok := ParseCurrency(string(m.Currency)); !ok {
		return ErrInvalidCurrency
	}
	if err := m.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(m.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (e ExpenseRecord) Validate() error {
	if err := e.MonetaryRecord.Validate(); err != nil {
		return err
	}
	if e.Allocatable && !e.ValidityEnd.IsZero() && !e.ValidityEnd.After(e.Date) {
		return errors.New("validity end must be after expense date")
	}
	return nil
}

func (r RevenueRecord) Validate() error {
	return r.MonetaryRecord.Validate()
}

// ExpenseMonetary projects expenses onto their shared monetary shape for
// currency aggregation.
func ExpenseMonetary(expenses []ExpenseRecord) []MonetaryRecord {
	out := make([]MonetaryRecord, len(expenses))
	for i, e := range expenses {
		out[i] = e.MonetaryRecord
	}
	return out
}

// RevenueMonetary projects revenue transactions onto their shared monetary
// shape for currency aggregation.
func RevenueMonetary(revenues []RevenueRecord) []MonetaryRecord {
	out := make([]MonetaryRecord, len(revenues))
	for i, r := range revenues {
		out[i] = r.MonetaryRecord
	}
	return out
}
