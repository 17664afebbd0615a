package orders

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestEmailProblem(t *testing.T) {
	tests := map[string]string{
		"":                 "Email is required",
		"   ":              "Email is required",
		"not-an-email":     "Invalid email",
		"a@b":              "Invalid email",
		"jane@example.com": "",
		"j.d+tag@shop.lk":  "",
	}
	for in, want := range tests {
		if got := EmailProblem(in); got != want {
			t.Errorf("EmailProblem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress("short").Err(); err == nil {
		t.Fatal("expected short address to fail")
	}
	if err := ValidateAddress("221B Baker Street, London").Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// nine runes in eighteen bytes
	if err := ValidateAddress("ĀĀĀĀĀĀĀĀĀ").Err(); err == nil {
		t.Fatal("nine runes should fail regardless of byte length")
	}
}

func TestValidateQuantity(t *testing.T) {
	for _, q := range []int{0, -1, 100} {
		fe := ValidateQuantity(q)
		if fe["quantity"] == "" {
			t.Errorf("quantity %d should be rejected", q)
		}
	}
	for _, q := range []int{1, 3, 99} {
		if err := ValidateQuantity(q).Err(); err != nil {
			t.Errorf("quantity %d: %v", q, err)
		}
	}
}

func TestFieldErrorsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("place order: %w", FieldErrors{"address": "Please enter a complete address"})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["address"] == "" {
		t.Fatalf("AsFieldErrors lost the field errors: %v", err)
	}
	if _, ok := AsFieldErrors(errors.New("boom")); ok {
		t.Fatal("plain error is not FieldErrors")
	}
	if got := (FieldErrors{"b": "2", "a": "1"}).Error(); got != "invalid input: a: 1; b: 2" {
		t.Errorf("Error() = %q", got)
	}
	if (FieldErrors{}).Err() != nil {
		t.Error("empty FieldErrors should be a nil error")
	}
}

func TestQuotationFormValidate(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		d, err := QuotationForm{Price: "12.50", AvailabilityStock: "20", EstimatedDeliveryTime: "2026-03-11"}.Validate(today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if FormatMoney(d.Price) != "12.50" || d.AvailabilityStock != 20 {
			t.Errorf("draft = %+v", d)
		}
		if got := d.EstimatedDeliveryTime.Format(DateLayout); got != "2026-03-11" {
			t.Errorf("eta = %s", got)
		}
	})

	t.Run("today is allowed", func(t *testing.T) {
		if _, err := (QuotationForm{Price: "1", AvailabilityStock: "0", EstimatedDeliveryTime: "2026-03-10"}).Validate(today); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name  string
		form  QuotationForm
		field string
		msg   string
	}{
		{"zero price", QuotationForm{Price: "0", AvailabilityStock: "1", EstimatedDeliveryTime: "2026-03-12"}, "price", "Please enter a valid price greater than 0"},
		{"text price", QuotationForm{Price: "abc", AvailabilityStock: "1", EstimatedDeliveryTime: "2026-03-12"}, "price", "Please enter a valid price greater than 0"},
		{"negative stock", QuotationForm{Price: "5", AvailabilityStock: "-1", EstimatedDeliveryTime: "2026-03-12"}, "availabilityStock", "Please enter a valid stock quantity (0 or greater)"},
		{"missing date", QuotationForm{Price: "5", AvailabilityStock: "1"}, "estimatedDeliveryTime", "Please select an estimated delivery date"},
		{"past date", QuotationForm{Price: "5", AvailabilityStock: "1", EstimatedDeliveryTime: "2026-03-09"}, "estimatedDeliveryTime", "Delivery date cannot be in the past"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Validate(today)
			fe, ok := AsFieldErrors(err)
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if len(fe) != 1 || fe[tt.field] != tt.msg {
				t.Errorf("got %v, want only %s=%q", fe, tt.field, tt.msg)
			}
		})
	}

	t.Run("all fields reported together", func(t *testing.T) {
		_, err := QuotationForm{Price: "-3", AvailabilityStock: "x", EstimatedDeliveryTime: "2020-01-01"}.Validate(today)
		fe, _ := AsFieldErrors(err)
		if len(fe) != 3 {
			t.Fatalf("got %v, want three field errors", fe)
		}
	})
}
