package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds externally supplied policy values consumed by the cart, coupon
// and checkout components. Values come from the environment with sensible
// defaults; none of them are owned by this service.
type Config struct {
	MinOrderAmount     float64  // below this, DeliveryFee is added to the grand total
	DeliveryFee        float64  // flat fee charged on below-minimum orders
	TaxRate            float64  // fraction of subtotal, 0 unless configured
	SupportedCities    []string // delivery is limited to these cities
	PaymentAutoConfirm bool     // mark orders paid when a transfer proof is attached

	JWTSecret     string
	AdminAPIKey   string
	UploadDir     string
	PublicBaseURL string
	Port          string
}

func Load() *Config {
	cfg := &Config{
		MinOrderAmount:     envFloat("MIN_ORDER_AMOUNT", 2000),
		DeliveryFee:        envFloat("DELIVERY_FEE", 150),
		TaxRate:            envFloat("TAX_RATE", 0),
		SupportedCities:    envList("SUPPORTED_CITIES", []string{"Kathmandu", "Lalitpur", "Bhaktapur"}),
		PaymentAutoConfirm: os.Getenv("PAYMENT_AUTO_CONFIRM") == "true",
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		UploadDir:          envString("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:      envString("PUBLIC_BASE_URL", "http://localhost:8080"),
		Port:               envString("PORT", "8080"),
	}
	return cfg
}

// CitySupported reports whether we deliver to the given city (case-insensitive).
func (c *Config) CitySupported(city string) bool {
	for _, s := range c.SupportedCities {
		if strings.EqualFold(s, strings.TrimSpace(city)) {
			return true
		}
	}
	return false
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
