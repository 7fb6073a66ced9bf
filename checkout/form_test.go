package checkout

import (
	"testing"

	"github.com/pineneuron/meatstore-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		MinOrderAmount:  2000,
		DeliveryFee:     150,
		SupportedCities: []string{"Kathmandu", "Lalitpur", "Bhaktapur"},
	}
}

func validForm() Form {
	return Form{
		Name:            "Asha Shrestha",
		Email:           "asha@example.com",
		Phone:           "9841000000",
		City:            "Kathmandu",
		AddressLine1:    "Baluwatar, house 12",
		PaymentProofURL: "http://cdn/proof.jpg",
	}
}

func TestFormValidate(t *testing.T) {
	t.Run("complete form passes", func(t *testing.T) {
		form := validForm()
		assert.Nil(t, form.Validate(testConfig()))
	})

	t.Run("required fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Form)
			field  string
		}{
			{"blank name", func(f *Form) { f.Name = "   " }, "name"},
			{"missing email", func(f *Form) { f.Email = "" }, "email"},
			{"malformed email", func(f *Form) { f.Email = "not-an-email" }, "email"},
			{"missing phone", func(f *Form) { f.Phone = "" }, "phone"},
			{"missing city", func(f *Form) { f.City = "" }, "city"},
			{"unsupported city", func(f *Form) { f.City = "Pokhara" }, "city"},
			{"missing address", func(f *Form) { f.AddressLine1 = "" }, "address_line1"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				form := validForm()
				tt.mutate(&form)
				errs := form.Validate(testConfig())
				require.NotNil(t, errs)
				assert.Contains(t, errs, tt.field)
				assert.Len(t, errs, 1)
			})
		}
	})

	t.Run("city matching is case-insensitive", func(t *testing.T) {
		form := validForm()
		form.City = "  kathmandu "
		assert.Nil(t, form.Validate(testConfig()))
	})

	t.Run("unsupported city message lists the options", func(t *testing.T) {
		form := validForm()
		form.City = "Pokhara"
		errs := form.Validate(testConfig())
		require.NotNil(t, errs)
		assert.Contains(t, errs["city"], "Kathmandu")
	})

	t.Run("screenshot required unless cash on delivery", func(t *testing.T) {
		form := validForm()
		form.PaymentProofURL = ""
		form.CashOnDelivery = false
		errs := form.Validate(testConfig())
		require.NotNil(t, errs)
		assert.Contains(t, errs, "payment_proof")
		assert.Len(t, errs, 1)

		form.CashOnDelivery = true
		assert.Nil(t, form.Validate(testConfig()))
	})

	t.Run("inline account password rules", func(t *testing.T) {
		form := validForm()
		form.CreateAccount = true
		form.Password = "short"
		form.ConfirmPassword = "short"
		errs := form.Validate(testConfig())
		require.NotNil(t, errs)
		assert.Contains(t, errs, "password")

		form.Password = "longenough1"
		form.ConfirmPassword = "different11"
		errs = form.Validate(testConfig())
		require.NotNil(t, errs)
		assert.Contains(t, errs, "confirm_password")

		form.ConfirmPassword = "longenough1"
		assert.Nil(t, form.Validate(testConfig()))
	})

	t.Run("password ignored without account creation", func(t *testing.T) {
		form := validForm()
		form.Password = "x"
		assert.Nil(t, form.Validate(testConfig()))
	})

	t.Run("all failures reported at once", func(t *testing.T) {
		form := Form{}
		errs := form.Validate(testConfig())
		require.NotNil(t, errs)
		for _, field := range []string{"name", "email", "phone", "city", "address_line1", "payment_proof"} {
			assert.Contains(t, errs, field)
		}
	})
}
