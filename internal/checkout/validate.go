package checkout

import (
	"strings"

	"onlineshop/internal/validate"
)

func validateForm(f Form) error {
	if blank(f.FirstName) || blank(f.LastName) || blank(f.Email) || blank(f.Address) {
		return &ValidationError{Message: "Please fill in all required fields"}
	}
	if _, ok := validate.Email(f.Email); !ok {
		return &ValidationError{Message: "Please enter a valid email address"}
	}

	method := f.PaymentMethod
	if method == "" {
		method = PaymentCreditCard
	}
	switch method {
	case PaymentCreditCard:
		if blank(f.CardName) || blank(f.CardNumber) || blank(f.ExpMonth) || blank(f.ExpYear) || blank(f.CVV) {
			return &ValidationError{Message: "Please fill in all payment details"}
		}
		if !validate.CardNumber(f.CardNumber) {
			return &ValidationError{Message: "Please enter a valid card number"}
		}
		if !validate.CVV(f.CVV) {
			return &ValidationError{Message: "Please enter a valid CVV"}
		}
	case PaymentBankTransfer:
		if blank(f.BankName) || blank(f.AccountNumber) || blank(f.RoutingNumber) {
			return &ValidationError{Message: "Please fill in all bank details"}
		}
	case PaymentPayPal:
		// The simulated redirect flow collects nothing extra.
	default:
		return &ValidationError{Message: "Unsupported payment method"}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
