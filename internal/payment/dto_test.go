package payment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	paymentPkg "github.com/reyada-homecare/payments/internal/payment"
)

var _ = Describe("ValidatePaymentData", func() {
	var req *paymentPkg.PaymentRequest

	BeforeEach(func() {
		req = &paymentPkg.PaymentRequest{
			Amount:        250,
			Currency:      "AED",
			PatientID:     "PT-1001",
			ServiceID:     "SVC-HOME-NURSING",
			Description:   "Weekly home nursing visit",
			PaymentMethod: "card",
		}
	})

	Context("when the request is complete", func() {
		It("should report valid with no errors", func() {
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeTrue())
			Expect(result.Errors).To(BeEmpty())
		})
	})

	Context("when the amount is not positive", func() {
		It("should reject zero amounts", func() {
			req.Amount = 0
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Amount must be greater than 0"))
		})

		It("should reject negative amounts", func() {
			req.Amount = -50
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Amount must be greater than 0"))
		})
	})

	Context("when the currency is unsupported", func() {
		It("should reject it with the currency message", func() {
			req.Currency = "EUR"
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Invalid currency"))
		})
	})

	Context("when required fields are missing", func() {
		It("should name each missing field", func() {
			req.PatientID = ""
			req.ServiceID = ""
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Patient ID is required"))
			Expect(result.Errors).To(ContainElement("Service ID is required"))
		})

		It("should treat whitespace-only values as missing", func() {
			req.Description = "   "
			result := paymentPkg.ValidatePaymentData(req)
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Description is required"))
		})
	})

	Context("when everything is wrong at once", func() {
		It("should aggregate every violation instead of stopping early", func() {
			result := paymentPkg.ValidatePaymentData(&paymentPkg.PaymentRequest{})
			Expect(result.IsValid).To(BeFalse())
			Expect(result.Errors).To(ConsistOf(
				"Amount must be greater than 0",
				"Invalid currency",
				"Patient ID is required",
				"Service ID is required",
				"Description is required",
				"Payment method is required",
			))
		})
	})
})

var _ = Describe("MapExternalStatus", func() {
	It("should map gateway success variants to completed", func() {
		Expect(paymentPkg.MapExternalStatus("completed")).To(Equal(paymentmodel.StatusCompleted))
		Expect(paymentPkg.MapExternalStatus("success")).To(Equal(paymentmodel.StatusCompleted))
		Expect(paymentPkg.MapExternalStatus("succeeded")).To(Equal(paymentmodel.StatusCompleted))
	})

	It("should map declines to failed", func() {
		Expect(paymentPkg.MapExternalStatus("declined")).To(Equal(paymentmodel.StatusFailed))
		Expect(paymentPkg.MapExternalStatus("failed")).To(Equal(paymentmodel.StatusFailed))
	})

	It("should leave unrecognized statuses pending", func() {
		Expect(paymentPkg.MapExternalStatus("processing")).To(Equal(paymentmodel.StatusPending))
		Expect(paymentPkg.MapExternalStatus("")).To(Equal(paymentmodel.StatusPending))
	})
})
