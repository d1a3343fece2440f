// Package eligibility decides whether an email has a qualifying purchase.
package eligibility

import (
	"strings"

	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
)

// Matcher checks orders against a configured keyword list. Matching is
// case-insensitive and substring-based on both sides.
type Matcher struct {
	keywords []string
}

// NewMatcher lowercases and trims the keywords, dropping empty entries.
func NewMatcher(keywords []string) *Matcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Matcher{keywords: normalized}
}

// Keywords returns the normalized keyword list.
func (m *Matcher) Keywords() []string {
	return m.keywords
}

// Match reports whether any order belongs to email and contains a line item
// whose title or product-snapshot handle contains a keyword. Absent fields
// are treated as empty strings.
func (m *Matcher) Match(email string, orders []wuiltsvc.Order) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, order := range orders {
		if strings.ToLower(order.Customer.Email) != email {
			continue
		}
		for _, item := range order.Items {
			if m.matchItem(item) {
				return true
			}
		}
	}
	return false
}

func (m *Matcher) matchItem(item wuiltsvc.OrderItem) bool {
	title := strings.ToLower(item.Title)
	handle := strings.ToLower(item.ProductSnapshot.Handle)
	for _, kw := range m.keywords {
		if strings.Contains(title, kw) || strings.Contains(handle, kw) {
			return true
		}
	}
	return false
}
