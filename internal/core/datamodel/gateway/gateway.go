package gateway

// GatewayType tags the integration family a provider belongs to.
type GatewayType string

const (
	TypeCard         GatewayType = "card_processor"
	TypeBankTransfer GatewayType = "bank_transfer"
	TypeWallet       GatewayType = "digital_wallet"
)

// PaymentMethod is one payment instrument a gateway can run, with the
// per-method toggle and the human-readable processing time shown to staff.
type PaymentMethod struct {
	Type           string `json:"type" mapstructure:"type"`
	Enabled        bool   `json:"enabled" mapstructure:"enabled"`
	ProcessingTime string `json:"processing_time" mapstructure:"processing_time"`
}

// PaymentGateway is immutable reference data describing one configured
// external provider. Loaded once at startup and never mutated.
type PaymentGateway struct {
	ID                  string            `json:"id" mapstructure:"id"`
	Name                string            `json:"name" mapstructure:"name"`
	Type                GatewayType       `json:"type" mapstructure:"type"`
	Active              bool              `json:"active" mapstructure:"active"`
	SupportedCurrencies []string          `json:"supported_currencies" mapstructure:"supported_currencies"`
	PaymentMethods      []PaymentMethod   `json:"payment_methods" mapstructure:"payment_methods"`
	ProcessingFee       float64           `json:"processing_fee" mapstructure:"processing_fee"`
	SettlementTime      string            `json:"settlement_time" mapstructure:"settlement_time"`
	Endpoint            string            `json:"endpoint" mapstructure:"endpoint"`
	Config              map[string]string `json:"config,omitempty" mapstructure:"config"`
}

func (g *PaymentGateway) SupportsCurrency(currency string) bool {
	for _, c := range g.SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

func (g *PaymentGateway) SupportsMethod(methodType string) bool {
	for _, m := range g.PaymentMethods {
		if m.Type == methodType && m.Enabled {
			return true
		}
	}
	return false
}
