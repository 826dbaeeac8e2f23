package sync

import "strings"

// containsAny reports whether name contains any of the keywords,
// case-insensitively.
func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// DefaultIncludeKeywords and DefaultExcludeKeywords are the stock category
// name filters used when targets come from product lines or the fallback
// set: device families in, accessory categories out.
var (
	DefaultIncludeKeywords = []string{
		"Apple", "iPhone", "iPad", "MacBook", "Android",
		"Samsung", "Galaxy", "Pixel", "Google",
	}
	DefaultExcludeKeywords = []string{
		"Accessory", "Accessories", "Cable", "Case", "Cover",
		"Protector", "Sleeve", "Bag", "Strap", "Mount", "Part",
	}
)
