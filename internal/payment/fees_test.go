package payment_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reyada-homecare/payments/internal/gateway"
	paymentPkg "github.com/reyada-homecare/payments/internal/payment"
)

var _ = Describe("FeeCalculator", func() {
	var calculator *paymentPkg.FeeCalculator

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		registry := gateway.NewRegistry(nil, logger)
		calculator = paymentPkg.NewFeeCalculator(registry, logger)
	})

	Context("when the gateway is known", func() {
		It("should compute the percentage fee and total for stripe_ae", func() {
			fees := calculator.CalculateFees(1000, "stripe_ae")
			Expect(fees.ProcessingFee).To(Equal(29.0))
			Expect(fees.TotalAmount).To(Equal(1029.0))
		})

		It("should handle fractional fee results", func() {
			fees := calculator.CalculateFees(500, "stripe_ae")
			Expect(fees.ProcessingFee).To(Equal(14.5))
			Expect(fees.TotalAmount).To(Equal(514.5))
		})

		It("should use each gateway's own fee schedule", func() {
			fees := calculator.CalculateFees(1000, "wio_bank")
			Expect(fees.ProcessingFee).To(Equal(10.0))
			Expect(fees.TotalAmount).To(Equal(1010.0))
		})
	})

	Context("when the gateway is unknown", func() {
		It("should fall back to zero fee with the amount unchanged", func() {
			fees := calculator.CalculateFees(750, "nonexistent_gateway")
			Expect(fees.ProcessingFee).To(BeZero())
			Expect(fees.TotalAmount).To(Equal(750.0))
		})
	})

	Context("when the amount is zero", func() {
		It("should produce zero fees", func() {
			fees := calculator.CalculateFees(0, "stripe_ae")
			Expect(fees.ProcessingFee).To(BeZero())
			Expect(fees.TotalAmount).To(BeZero())
		})
	})
})
