package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// MinLabelLength is the minimum number of user-perceived characters in a
// registrable label.
const MinLabelLength = 3

// LabelLength counts extended grapheme clusters, so a flag or a ZWJ emoji
// sequence is one character regardless of how many code points it spans.
func LabelLength(label string) int {
	return uniseg.GraphemeClusterCount(label)
}

// ValidLabel reports whether label may be registered under the bic node.
func ValidLabel(label string) bool {
	if label == "" || !utf8.ValidString(label) {
		return false
	}
	if strings.Contains(label, ".") {
		return false
	}
	return LabelLength(label) >= MinLabelLength
}
