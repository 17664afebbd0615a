package orders

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldErrors holds one message per invalid input field. A non-empty
// FieldErrors blocks the submission it came from; no request is sent.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors, so callers can write
// `if err := fe.Err(); err != nil`.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// AsFieldErrors unwraps err into FieldErrors if it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

const MinAddressLength = 10

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailProblem returns the field message for a bad email, or "".
func EmailProblem(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return "Invalid email"
	}
	return ""
}

func ValidateAddress(address string) FieldErrors {
	if utf8.RuneCountInString(address) < MinAddressLength {
		return FieldErrors{"address": "Please enter a complete address"}
	}
	return nil
}

func ValidateQuantity(q int) FieldErrors {
	if q < MinQuantity || q > MaxQuantity {
		return FieldErrors{"quantity": fmt.Sprintf("Quantity must be between %d and %d", MinQuantity, MaxQuantity)}
	}
	return nil
}

// QuotationForm carries the distributor's raw inputs.
type QuotationForm struct {
	Price                 string `json:"price"`
	AvailabilityStock     string `json:"availabilityStock"`
	EstimatedDeliveryTime string `json:"estimatedDeliveryTime"`
}

// QuotationDraft is a validated quotation ready to send.
type QuotationDraft struct {
	OrderItemID           int64
	DistributorID         int64
	Price                 decimal.Decimal
	AvailabilityStock     int
	EstimatedDeliveryTime time.Time
}

// Validate checks every field independently and reports all failures at once.
func (f QuotationForm) Validate(today time.Time) (QuotationDraft, error) {
	var d QuotationDraft
	fe := FieldErrors{}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || !price.IsPositive() {
		fe["price"] = "Please enter a valid price greater than 0"
	} else {
		d.Price = price
	}

	stock, err := strconv.Atoi(strings.TrimSpace(f.AvailabilityStock))
	if err != nil || stock < 0 {
		fe["availabilityStock"] = "Please enter a valid stock quantity (0 or greater)"
	} else {
		d.AvailabilityStock = stock
	}

	switch raw := strings.TrimSpace(f.EstimatedDeliveryTime); {
	case raw == "":
		fe["estimatedDeliveryTime"] = "Please select an estimated delivery date"
	default:
		eta, err := ParseDate(raw)
		if err != nil {
			fe["estimatedDeliveryTime"] = "Please select an estimated delivery date"
		} else if BeforeDay(eta.Time, today) {
			fe["estimatedDeliveryTime"] = "Delivery date cannot be in the past"
		} else {
			d.EstimatedDeliveryTime = eta.Time
		}
	}

	if err := fe.Err(); err != nil {
		return QuotationDraft{}, err
	}
	return d, nil
}
