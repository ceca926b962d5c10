package domain

import (
	"errors"
	"strconv"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidDate     = errors.New("date must be a valid YYYY-MM-DD date")
)

// DateLayout is the only accepted order date format. Dates are stored as
// validated strings; the fixed width makes lexicographic comparison equal
// chronological comparison.
const DateLayout = "2006-01-02"

type Order struct {
	ID           int64
	CustomerName string
	Description  string
	Quantity     int
	Date         string
}

// ParseQuantity accepts only all-digit text with a value greater than zero.
// Signs, decimal points, and empty input all fail.
func ParseQuantity(text string) (int, error) {
	if text == "" {
		return 0, ErrInvalidQuantity
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, ErrInvalidQuantity
		}
	}
	q, err := strconv.Atoi(text)
	if err != nil || q <= 0 {
		return 0, ErrInvalidQuantity
	}
	return q, nil
}

// ValidateDate requires a strict YYYY-MM-DD calendar date: two-digit month
// and day, and the date must actually exist.
func ValidateDate(text string) error {
	if len(text) != len(DateLayout) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, text); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// NewOrder builds an order from raw user input, validating quantity first
// and date second.
func NewOrder(id int64, name, description, quantityText, dateText string) (Order, error) {
	quantity, err := ParseQuantity(quantityText)
	if err != nil {
		return Order{}, err
	}
	if err := ValidateDate(dateText); err != nil {
		return Order{}, err
	}
	return Order{
		ID:           id,
		CustomerName: name,
		Description:  description,
		Quantity:     quantity,
		Date:         dateText,
	}, nil
}
