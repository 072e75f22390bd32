package gateway

import (
	"errors"
	"log/slog"
	"sort"

	gatewaymodel "github.com/reyada-homecare/payments/internal/core/datamodel/gateway"
)

// ErrNoGateway signals that no active gateway matches a request's currency
// and payment method. Callers must treat this as a hard failure, never as
// an invitation to pick a default.
var ErrNoGateway = errors.New("no gateway available for request")

// Registry holds the immutable gateway reference data for the lifetime of
// the process. It is loaded once at startup and safe for concurrent reads.
type Registry struct {
	gateways []gatewaymodel.PaymentGateway
	byID     map[string]int
	logger   *slog.Logger
}

// NewRegistry builds a registry from the given definitions, falling back
// to the built-in defaults when none are configured.
func NewRegistry(defs []gatewaymodel.PaymentGateway, logger *slog.Logger) *Registry {
	if len(defs) == 0 {
		defs = Defaults()
	}

	byID := make(map[string]int, len(defs))
	for i, g := range defs {
		byID[g.ID] = i
	}

	logger.Info("payment gateway registry loaded", "gateways", len(defs))

	return &Registry{
		gateways: defs,
		byID:     byID,
		logger:   logger,
	}
}

// Get returns the gateway with the given id.
func (r *Registry) Get(id string) (*gatewaymodel.PaymentGateway, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	g := r.gateways[i]
	return &g, true
}

// All returns every configured gateway, active or not.
func (r *Registry) All() []gatewaymodel.PaymentGateway {
	out := make([]gatewaymodel.PaymentGateway, len(r.gateways))
	copy(out, r.gateways)
	return out
}

// Active returns the gateways currently accepting transactions.
func (r *Registry) Active() []gatewaymodel.PaymentGateway {
	var out []gatewaymodel.PaymentGateway
	for _, g := range r.gateways {
		if g.Active {
			out = append(out, g)
		}
	}
	return out
}

// OptimalFor picks the cheapest active gateway that supports the currency
// and has the payment method enabled. Ties on fee are broken by comparing
// the settlement-time strings lexicographically; the strings do not sort
// chronologically ("1-3 business days" < "2-7 business days" happens to,
// but "10-12" would sort before "2-7"). This matches the established
// selection behavior that billing reports are reconciled against.
func (r *Registry) OptimalFor(amount float64, currency, methodType string) (*gatewaymodel.PaymentGateway, error) {
	var candidates []gatewaymodel.PaymentGateway
	for _, g := range r.gateways {
		if !g.Active {
			continue
		}
		if !g.SupportsCurrency(currency) {
			continue
		}
		if !g.SupportsMethod(methodType) {
			continue
		}
		candidates = append(candidates, g)
	}

	if len(candidates) == 0 {
		r.logger.Warn("no gateway candidates for request",
			"currency", currency,
			"payment_method", methodType,
			"amount", amount)
		return nil, ErrNoGateway
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ProcessingFee != candidates[j].ProcessingFee {
			return candidates[i].ProcessingFee < candidates[j].ProcessingFee
		}
		return candidates[i].SettlementTime < candidates[j].SettlementTime
	})

	best := candidates[0]

	r.logger.Debug("optimal gateway selected",
		"gateway_id", best.ID,
		"processing_fee", best.ProcessingFee,
		"candidates", len(candidates))

	return &best, nil
}
