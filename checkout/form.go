package checkout

import (
	"regexp"
	"strings"

	"github.com/pineneuron/meatstore-api/config"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form holds everything the customer fills in on the checkout page.
type Form struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AltPhone     string `json:"alt_phone"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1"`
	Landmark     string `json:"landmark"`
	Notes        string `json:"notes"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	CashOnDelivery  bool   `json:"cash_on_delivery"`
	PaymentProofURL string `json:"payment_proof_url"`

	// Inline account creation, only when not already signed in
	CreateAccount   bool   `json:"create_account"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// FieldErrors maps a field name to the message shown next to it. A failing
// field never blocks edits to the others.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate runs every field rule and returns all failures at once; submit is
// blocked while any remain.
func (f *Form) Validate(cfg *config.Config) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	} else if !cfg.CitySupported(f.City) {
		errs["city"] = "We currently deliver only to: " + strings.Join(cfg.SupportedCities, ", ")
	}
	if strings.TrimSpace(f.AddressLine1) == "" {
		errs["address_line1"] = "Delivery address is required"
	}
	if !f.CashOnDelivery && strings.TrimSpace(f.PaymentProofURL) == "" {
		errs["payment_proof"] = "Please attach a payment screenshot or choose cash on delivery"
	}

	if f.CreateAccount {
		if len(f.Password) < 8 {
			errs["password"] = "Password must be at least 8 characters"
		} else if f.Password != f.ConfirmPassword {
			errs["confirm_password"] = "Passwords do not match"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
