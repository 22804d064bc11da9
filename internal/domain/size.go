package domain

import "strings"

type Size string

const (
	SizeUnset  Size = ""
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the selectable sizes in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize trims the raw select value. The result may be outside Sizes;
// validation decides whether it is acceptable.
func ParseSize(raw string) Size {
	return Size(strings.TrimSpace(raw))
}

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Label returns the human readable name used by the renderers.
func (s Size) Label() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	default:
		return ""
	}
}
