package payment

import (
	"log/slog"

	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	"github.com/reyada-homecare/payments/internal/gateway"
)

// FeeCalculator derives the processing fee and total payable amount from a
// gateway's fee schedule. Gateway-specific fixed fees are modeled as zero.
type FeeCalculator struct {
	registry *gateway.Registry
	logger   *slog.Logger
}

func NewFeeCalculator(registry *gateway.Registry, logger *slog.Logger) *FeeCalculator {
	return &FeeCalculator{
		registry: registry,
		logger:   logger,
	}
}

// CalculateFees computes fees once, at transaction build time. An unknown
// gateway id yields zero fee and the amount unchanged rather than an
// error, so a payment never blocks on missing fee data.
func (c *FeeCalculator) CalculateFees(amount float64, gatewayID string) paymentmodel.Fees {
	g, ok := c.registry.Get(gatewayID)
	if !ok {
		c.logger.Warn("fee calculation for unknown gateway, using zero fee",
			"gateway_id", gatewayID,
			"amount", amount)
		return paymentmodel.Fees{
			ProcessingFee: 0,
			TotalAmount:   amount,
		}
	}

	processingFee := amount * g.ProcessingFee / 100
	return paymentmodel.Fees{
		ProcessingFee: processingFee,
		TotalAmount:   amount + processingFee,
	}
}
