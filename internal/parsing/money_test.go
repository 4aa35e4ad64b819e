package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lastMoneyValue", func() {
	var (
		line  string
		value float64
		ok    bool
	)

	JustBeforeEach(func() {
		value, ok = lastMoneyValue(line)
	})

	When("the line holds quantity, unit price and line total", func() {
		BeforeEach(func() {
			line = "2 x 3.50  7.00"
		})

		It("returns the right-most amount", func() {
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(7.00))
		})
	})

	When("the amount carries a currency marker", func() {
		BeforeEach(func() {
			line = "TOTAL $42.10"
		})

		It("returns the numeric value", func() {
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(42.10))
		})
	})

	When("the amount uses comma grouping", func() {
		BeforeEach(func() {
			line = "AMOUNT DUE 1,234.56"
		})

		It("strips the separator before conversion", func() {
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(1234.56))
		})
	})

	When("the amount uses a CAD prefix", func() {
		BeforeEach(func() {
			line = "BALANCE CAD 99.00"
		})

		It("still matches", func() {
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(99.00))
		})
	})

	When("the line has no fractional amount", func() {
		BeforeEach(func() {
			line = "MEMBER 10493"
		})

		It("returns no value", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("the line is empty", func() {
		BeforeEach(func() {
			line = ""
		})

		It("returns no value", func() {
			Expect(ok).To(BeFalse())
		})
	})
})
