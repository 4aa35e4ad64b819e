package receipt

import "time"

// DefaultCategory is assigned when the client supplies no label.
// Categorization is never derived from the receipt text.
const DefaultCategory = "Other"

// Categories a receipt can be filed under.
var Categories = []string{
	"Groceries", "Dining", "Retail", "Transport", "Bills", "Subscription", "Other",
}

// Receipt is a persisted, scanned receipt. Total and item prices are
// in cents.
type Receipt struct {
	ID          string    `json:"id"`
	StoreName   string    `json:"store_name"`
	Date        time.Time `json:"date"`
	Total       int       `json:"total"`
	Category    string    `json:"category"`
	Items       []Item    `json:"items,omitempty"`
	RawText     string    `json:"raw_text"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is one extracted line item, price in cents. Items keep their
// order of appearance on the receipt and may repeat.
type Item struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// ValidCategory reports whether label is one of the known categories.
func ValidCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}
