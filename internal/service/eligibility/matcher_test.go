package eligibility

import (
	"testing"

	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
)

func order(email string, items ...wuiltsvc.OrderItem) wuiltsvc.Order {
	return wuiltsvc.Order{
		Customer: wuiltsvc.Customer{Email: email},
		Items:    items,
	}
}

func titledItem(title string) wuiltsvc.OrderItem {
	return wuiltsvc.OrderItem{Title: title}
}

func handledItem(handle string) wuiltsvc.OrderItem {
	return wuiltsvc.OrderItem{ProductSnapshot: wuiltsvc.ProductSnapshot{Handle: handle}}
}

func TestMatchSubstringInTitle(t *testing.T) {
	m := NewMatcher([]string{"nfc", "tag", "velin"})
	orders := []wuiltsvc.Order{order("jane@example.com", titledItem("NFC Tag Pro"))}

	if !m.Match("jane@example.com", orders) {
		t.Error("expected keyword nfc to match title NFC Tag Pro")
	}
}

func TestMatchSubstringInHandle(t *testing.T) {
	m := NewMatcher([]string{"velin"})
	orders := []wuiltsvc.Order{order("jane@example.com", handledItem("Velin-Card-Black"))}

	if !m.Match("jane@example.com", orders) {
		t.Error("expected keyword velin to match handle Velin-Card-Black")
	}
}

func TestMatchEmailCaseInsensitive(t *testing.T) {
	m := NewMatcher([]string{"nfc"})
	orders := []wuiltsvc.Order{order("Jane@Example.COM", titledItem("nfc sticker"))}

	if !m.Match("JANE@example.com", orders) {
		t.Error("expected case-insensitive email comparison")
	}
}

func TestMatchWrongEmail(t *testing.T) {
	m := NewMatcher([]string{"nfc"})
	orders := []wuiltsvc.Order{order("other@example.com", titledItem("NFC Tag Pro"))}

	if m.Match("jane@example.com", orders) {
		t.Error("expected no match for a different customer email")
	}
}

func TestMatchNoKeywordInItems(t *testing.T) {
	m := NewMatcher([]string{"nfc", "tag", "velin"})
	orders := []wuiltsvc.Order{order("jane@example.com", titledItem("Coffee Mug"))}

	if m.Match("jane@example.com", orders) {
		t.Error("expected no match when no item contains a keyword")
	}
}

func TestMatchEmptyOrders(t *testing.T) {
	m := NewMatcher([]string{"nfc"})

	if m.Match("jane@example.com", nil) {
		t.Error("expected no match for empty order list")
	}
}

func TestMatchAbsentFields(t *testing.T) {
	m := NewMatcher([]string{"nfc"})
	orders := []wuiltsvc.Order{order("jane@example.com", wuiltsvc.OrderItem{})}

	if m.Match("jane@example.com", orders) {
		t.Error("expected no match when item fields are absent")
	}
}

func TestMatchAcrossMultipleOrders(t *testing.T) {
	m := NewMatcher([]string{"tag"})
	orders := []wuiltsvc.Order{
		order("other@example.com", titledItem("Tag Bundle")),
		order("jane@example.com", titledItem("Sticker Pack"), titledItem("Key TAG")),
	}

	if !m.Match("jane@example.com", orders) {
		t.Error("expected match in the second order's second item")
	}
}

func TestNewMatcherNormalizesKeywords(t *testing.T) {
	m := NewMatcher([]string{" NFC ", "", "Tag"})

	kws := m.Keywords()
	if len(kws) != 2 || kws[0] != "nfc" || kws[1] != "tag" {
		t.Errorf("unexpected keywords: %v", kws)
	}
}
