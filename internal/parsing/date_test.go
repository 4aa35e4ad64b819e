package parsing

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("extractDate", func() {
	var (
		text string
		date *time.Time
	)

	JustBeforeEach(func() {
		date = extractDate(text)
	})

	When("the text holds a year-first date", func() {
		BeforeEach(func() {
			text = "Date: 2026-02-24 14:03"
		})

		It("parses it as year-month-day", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("the text holds a short date with a two-digit year", func() {
		BeforeEach(func() {
			text = "02/24/26"
		})

		It("parses it as month-day-year in the 2000s", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("the two-digit year is at or past the pivot", func() {
		BeforeEach(func() {
			text = "06/15/87"
		})

		It("places it in the 1900s", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(1987, 6, 15, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("the text holds a short date with a four-digit year", func() {
		BeforeEach(func() {
			text = "Visited 3-7-2025, thanks!"
		})

		It("parses it as month-day-year", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("both forms appear", func() {
		BeforeEach(func() {
			text = "01/02/20 then 2026-02-24"
		})

		It("prefers the unambiguous year-first form", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("two short dates appear", func() {
		BeforeEach(func() {
			text = "02/24/26 and later 03/01/26"
		})

		It("takes the first in document order", func() {
			Expect(date).NotTo(BeNil())
			Expect(*date).To(Equal(time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("the month component is out of range", func() {
		BeforeEach(func() {
			text = "24/02/2026"
		})

		It("returns no value rather than guessing day-first", func() {
			Expect(date).To(BeNil())
		})
	})

	When("the day overflows the month", func() {
		BeforeEach(func() {
			text = "2026-02-30"
		})

		It("returns no value", func() {
			Expect(date).To(BeNil())
		})
	})

	When("no date appears", func() {
		BeforeEach(func() {
			text = "no dates here, just $4.99"
		})

		It("returns no value", func() {
			Expect(date).To(BeNil())
		})
	})
})
