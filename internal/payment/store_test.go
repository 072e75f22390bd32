package payment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
	paymentPkg "github.com/reyada-homecare/payments/internal/payment"
)

var _ = Describe("SessionStore", func() {
	var store *paymentPkg.SessionStore

	newTx := func(id string) *paymentmodel.PaymentTransaction {
		return &paymentmodel.PaymentTransaction{
			ID:        id,
			PaymentID: "pay_" + id,
			Amount:    100,
			Currency:  "AED",
			Status:    paymentmodel.StatusPending,
		}
	}

	BeforeEach(func() {
		store = paymentPkg.NewSessionStore()
	})

	Describe("Current", func() {
		It("should report nothing for a fresh session", func() {
			_, ok := store.Current("session-a")
			Expect(ok).To(BeFalse())
		})

		It("should return the most recently set transaction", func() {
			store.SetCurrent("session-a", newTx("txn_1"))
			store.SetCurrent("session-a", newTx("txn_2"))

			current, ok := store.Current("session-a")
			Expect(ok).To(BeTrue())
			Expect(current.ID).To(Equal("txn_2"))
		})

		It("should return a copy detached from later mutations", func() {
			tx := newTx("txn_1")
			store.SetCurrent("session-a", tx)
			tx.Status = paymentmodel.StatusFailed

			current, _ := store.Current("session-a")
			Expect(current.Status).To(Equal(paymentmodel.StatusPending))
		})
	})

	Describe("Prepend and History", func() {
		It("should keep history most recent first", func() {
			store.Prepend("session-a", newTx("txn_1"))
			store.Prepend("session-a", newTx("txn_2"))
			store.Prepend("session-a", newTx("txn_3"))

			history := store.History("session-a")
			Expect(history).To(HaveLen(3))
			Expect(history[0].ID).To(Equal("txn_3"))
			Expect(history[2].ID).To(Equal("txn_1"))
		})

		It("should isolate sessions from each other", func() {
			store.Prepend("session-a", newTx("txn_1"))

			Expect(store.History("session-b")).To(BeEmpty())
		})
	})

	Describe("Find", func() {
		It("should locate a history entry by transaction id", func() {
			store.Prepend("session-a", newTx("txn_1"))
			store.Prepend("session-a", newTx("txn_2"))

			found, ok := store.Find("session-a", "txn_1")
			Expect(ok).To(BeTrue())
			Expect(found.PaymentID).To(Equal("pay_txn_1"))
		})

		It("should report false for an unknown id", func() {
			store.Prepend("session-a", newTx("txn_1"))

			_, ok := store.Find("session-a", "txn_999")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("should mutate the history entry under the lock", func() {
			store.Prepend("session-a", newTx("txn_1"))

			updated, ok := store.Update("session-a", "txn_1", func(t *paymentmodel.PaymentTransaction) {
				t.AppendAudit(paymentmodel.AuditPaymentCancelled, paymentmodel.StatusCancelled, "nurse-42")
			})
			Expect(ok).To(BeTrue())
			Expect(updated.Status).To(Equal(paymentmodel.StatusCancelled))

			history := store.History("session-a")
			Expect(history[0].Status).To(Equal(paymentmodel.StatusCancelled))
		})

		It("should mirror the change onto the current transaction when ids match", func() {
			tx := newTx("txn_1")
			store.SetCurrent("session-a", tx)
			store.Prepend("session-a", tx)

			store.Update("session-a", "txn_1", func(t *paymentmodel.PaymentTransaction) {
				t.AppendAudit(paymentmodel.AuditPaymentCancelled, paymentmodel.StatusCancelled, "nurse-42")
			})

			current, ok := store.Current("session-a")
			Expect(ok).To(BeTrue())
			Expect(current.Status).To(Equal(paymentmodel.StatusCancelled))
		})

		It("should report false when the transaction is not in history", func() {
			_, ok := store.Update("session-a", "txn_missing", func(t *paymentmodel.PaymentTransaction) {})
			Expect(ok).To(BeFalse())
		})
	})
})
