package checkout

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/pineneuron/meatstore-api/cart"
	"github.com/pineneuron/meatstore-api/config"
	"github.com/pineneuron/meatstore-api/models"
)

// State of one checkout session.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSucceeded
)

// ErrSubmissionInFlight rejects a second submit while one is outstanding.
var ErrSubmissionInFlight = errors.New("an order submission is already in progress")

// ErrCartEmpty rejects checkout of an empty cart.
var ErrCartEmpty = errors.New("cart is empty")

// Submitter is the authoritative order creation service, local or remote.
type Submitter interface {
	Submit(req SubmitRequest) (*models.Order, error)
}

// Registrar is the external account collaborator used for inline signup.
type Registrar interface {
	Register(name, email, password string) error
	Login(email, password string) (token string, err error)
}

// GeoProvider captures the device location; failing to get one is never fatal.
type GeoProvider func() (lat, lng float64, err error)

// SubmitItem is one cart line as sent to the submission service. Price and
// name are advisory; the server re-reads both.
type SubmitItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variation string  `json:"variation,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SubmitRequest is the order submission payload.
type SubmitRequest struct {
	SessionKey string       `json:"session_key"`
	Customer   Form         `json:"customer"`
	Items      []SubmitItem `json:"items"`
	Summary    Summary      `json:"summary"`
	CouponCode string       `json:"coupon_code,omitempty"`
}

// Orchestrator drives one checkout session: validate the form, optionally
// create an account, submit the order exactly once, and clear the cart on
// success. Form data survives any failure so the customer can retry.
type Orchestrator struct {
	cfg       *config.Config
	store     *cart.Store
	submitter Submitter
	registrar Registrar
	geo       GeoProvider

	mu       sync.Mutex
	inFlight bool
	state    State
	warnings []string
}

func NewOrchestrator(cfg *config.Config, store *cart.Store, submitter Submitter, registrar Registrar) *Orchestrator {
	return &Orchestrator{cfg: cfg, store: store, submitter: submitter, registrar: registrar}
}

// WithGeo enables optional location capture for the delivery address.
func (o *Orchestrator) WithGeo(geo GeoProvider) *Orchestrator {
	o.geo = geo
	return o
}

func (o *Orchestrator) State() State { return o.state }

// Warnings returns non-fatal notices collected during the last submission
// (location unavailable, auto-login failed, ...).
func (o *Orchestrator) Warnings() []string { return o.warnings }

// Summary computes the current price breakdown for the session's cart.
func (o *Orchestrator) Summary() Summary {
	return ComputeSummary(o.cfg, o.store.Subtotal(), o.store.DiscountAmount())
}

// Submit validates and submits the order. Exactly one outcome per call, and
// only one call may be in flight at a time; the server-side unique order
// number is the final backstop against duplicates.
func (o *Orchestrator) Submit(form Form) (*models.Order, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	o.inFlight = true
	o.state = StateSubmitting
	o.warnings = nil
	o.mu.Unlock()

	order, err := o.submit(form)

	o.mu.Lock()
	o.inFlight = false
	if err != nil {
		o.state = StateEditing
	} else {
		o.state = StateSucceeded
	}
	o.mu.Unlock()
	return order, err
}

func (o *Orchestrator) submit(form Form) (*models.Order, error) {
	if !o.store.Ready() {
		if err := o.store.Hydrate(); err != nil {
			return nil, fmt.Errorf("could not load cart: %w", err)
		}
	}
	if len(o.store.Items()) == 0 {
		return nil, ErrCartEmpty
	}
	if errs := form.Validate(o.cfg); errs != nil {
		return nil, errs
	}

	if form.CreateAccount && o.registrar != nil {
		if err := o.registrar.Register(form.Name, form.Email, form.Password); err != nil {
			o.warn("Account could not be created: " + err.Error())
		} else if _, err := o.registrar.Login(form.Email, form.Password); err != nil {
			o.warn("Account created but automatic sign-in failed; you can log in later")
		}
	}

	if o.geo != nil && form.Latitude == 0 && form.Longitude == 0 {
		if lat, lng, err := o.geo(); err != nil {
			o.warn("Could not determine your location; the rider will call for directions")
		} else {
			form.Latitude, form.Longitude = lat, lng
		}
	}

	items := make([]SubmitItem, 0, len(o.store.Items()))
	for _, it := range o.store.Items() {
		items = append(items, SubmitItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Variation: it.Variation,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	req := SubmitRequest{
		SessionKey: o.store.SessionKey(),
		Customer:   form,
		Items:      items,
		Summary:    o.Summary(),
	}
	if ac := o.store.AppliedCoupon(); ac != nil {
		req.CouponCode = ac.Coupon.Code
	}

	order, err := o.submitter.Submit(req)
	if err != nil {
		return nil, err
	}

	// Render the confirmation from the server's snapshot; the local cart is
	// done and any failure clearing it is not the customer's problem.
	if err := o.store.Clear(); err != nil {
		log.Printf("⚠️ Failed to clear cart after order %s: %v", order.OrderNumber, err)
	}
	return order, nil
}

func (o *Orchestrator) warn(msg string) {
	log.Printf("⚠️ %s", msg)
	o.warnings = append(o.warnings, msg)
}
