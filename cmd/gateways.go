package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/reyada-homecare/payments/internal/gateway"
	"github.com/reyada-homecare/payments/pkg/logger"
	"github.com/spf13/cobra"
)

var gatewaysCmd = &cobra.Command{
	Use:   "gateways",
	Short: "Gateway registry commands",
	Long:  `Inspect the configured payment gateways and routing decisions`,
}

var listGatewaysCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured gateways",
	Run: func(cmd *cobra.Command, args []string) {
		listGateways()
	},
}

var optimalGatewayCmd = &cobra.Command{
	Use:   "optimal",
	Short: "Show which gateway would be selected for a payment",
	Run: func(cmd *cobra.Command, args []string) {
		showOptimalGateway()
	},
}

var (
	optimalAmount   float64
	optimalCurrency string
	optimalMethod   string
)

func listGateways() {
	registry := gateway.NewRegistry(nil, logger.LoggerWrapper())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFEE %\tSETTLEMENT\tCURRENCIES\tACTIVE")
	for _, g := range registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%v\t%t\n",
			g.ID, g.Name, g.ProcessingFee, g.SettlementTime, g.SupportedCurrencies, g.Active)
	}
	w.Flush()
}

func showOptimalGateway() {
	registry := gateway.NewRegistry(nil, logger.LoggerWrapper())

	g, err := registry.OptimalFor(optimalAmount, optimalCurrency, optimalMethod)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no gateway available: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("selected gateway: %s (%s)\n", g.Name, g.ID)
	fmt.Printf("fee: %.2f%% of %.2f %s = %.2f\n",
		g.ProcessingFee, optimalAmount, optimalCurrency, optimalAmount*g.ProcessingFee/100)
	fmt.Printf("settlement: %s\n", g.SettlementTime)
}

func init() {
	optimalGatewayCmd.Flags().Float64Var(&optimalAmount, "amount", 100, "Payment amount")
	optimalGatewayCmd.Flags().StringVar(&optimalCurrency, "currency", "AED", "Payment currency")
	optimalGatewayCmd.Flags().StringVar(&optimalMethod, "method", "card", "Payment method type")

	gatewaysCmd.AddCommand(listGatewaysCmd)
	gatewaysCmd.AddCommand(optimalGatewayCmd)

	rootCmd.AddCommand(gatewaysCmd)
}
