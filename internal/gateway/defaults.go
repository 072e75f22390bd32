package gateway

import gatewaymodel "github.com/reyada-homecare/payments/internal/core/datamodel/gateway"

// Defaults returns the built-in gateway definitions used when the registry
// section of the config file is empty. These mirror the providers the
// homecare billing team has onboarded.
func Defaults() []gatewaymodel.PaymentGateway {
	return []gatewaymodel.PaymentGateway{
		{
			ID:                  "stripe_ae",
			Name:                "Stripe UAE",
			Type:                gatewaymodel.TypeCard,
			Active:              true,
			SupportedCurrencies: []string{"AED", "USD"},
			PaymentMethods: []gatewaymodel.PaymentMethod{
				{Type: "card", Enabled: true, ProcessingTime: "instant"},
				{Type: "wallet", Enabled: true, ProcessingTime: "instant"},
			},
			ProcessingFee:  2.9,
			SettlementTime: "2-7 business days",
			Endpoint:       "https://api.stripe.com/v1",
		},
		{
			ID:                  "network_international",
			Name:                "Network International",
			Type:                gatewaymodel.TypeCard,
			Active:              true,
			SupportedCurrencies: []string{"AED", "USD"},
			PaymentMethods: []gatewaymodel.PaymentMethod{
				{Type: "card", Enabled: true, ProcessingTime: "instant"},
			},
			ProcessingFee:  2.5,
			SettlementTime: "1-3 business days",
			Endpoint:       "https://api.network.ae/v2",
		},
		{
			ID:                  "paytabs",
			Name:                "PayTabs",
			Type:                gatewaymodel.TypeCard,
			Active:              true,
			SupportedCurrencies: []string{"AED"},
			PaymentMethods: []gatewaymodel.PaymentMethod{
				{Type: "card", Enabled: true, ProcessingTime: "instant"},
				{Type: "bank_transfer", Enabled: true, ProcessingTime: "1-2 business days"},
			},
			ProcessingFee:  2.6,
			SettlementTime: "2-3 business days",
			Endpoint:       "https://secure.paytabs.com/payment",
		},
		{
			ID:                  "wio_bank",
			Name:                "Wio Business Transfers",
			Type:                gatewaymodel.TypeBankTransfer,
			Active:              true,
			SupportedCurrencies: []string{"AED"},
			PaymentMethods: []gatewaymodel.PaymentMethod{
				{Type: "bank_transfer", Enabled: true, ProcessingTime: "1-2 business days"},
			},
			ProcessingFee:  1.0,
			SettlementTime: "1-3 business days",
			Endpoint:       "https://api.wio.io/transfers",
		},
		{
			// retired integration kept for historical transaction lookups
			ID:                  "checkout_legacy",
			Name:                "Checkout.com (legacy)",
			Type:                gatewaymodel.TypeCard,
			Active:              false,
			SupportedCurrencies: []string{"AED", "USD"},
			PaymentMethods: []gatewaymodel.PaymentMethod{
				{Type: "card", Enabled: true, ProcessingTime: "instant"},
			},
			ProcessingFee:  2.8,
			SettlementTime: "2-5 business days",
			Endpoint:       "https://api.checkout.com",
		},
	}
}
