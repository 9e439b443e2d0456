package silverscrape

import "strings"

// Availability enumerates the stock states Silver.com displays.
type Availability string

// Availability states, in the order they are scanned for in free text.
const (
	AvailabilityInStock      Availability = "In Stock"
	AvailabilityOutOfStock   Availability = "Out of Stock"
	AvailabilityPreOrder     Availability = "Pre-Order"
	AvailabilitySoldOut      Availability = "Sold Out"
	AvailabilityComingSoon   Availability = "Coming Soon"
	AvailabilityDiscontinued Availability = "Discontinued"
	AvailabilityUnknown      Availability = "Unknown"
)

// AvailabilityStates lists the displayable states scanned for when
// mapping free text. Unknown is the fallback and is not scanned.
var AvailabilityStates = []Availability{
	AvailabilityInStock,
	AvailabilityOutOfStock,
	AvailabilityPreOrder,
	AvailabilitySoldOut,
	AvailabilityComingSoon,
	AvailabilityDiscontinued,
}

// ParseAvailability maps an availability signal to a state. The signal
// may be a schema.org token (a value such as "https://schema.org/InStock"
// from an itemprop annotation) or free page text, which is scanned for
// the first literal match against the availability vocabulary. Returns
// Unknown when nothing matches.
func ParseAvailability(signal string) Availability {
	switch {
	case strings.Contains(signal, "InStock"):
		return AvailabilityInStock
	case strings.Contains(signal, "OutOfStock"):
		return AvailabilityOutOfStock
	case strings.Contains(signal, "PreOrder"):
		return AvailabilityPreOrder
	}
	for _, state := range AvailabilityStates {
		if strings.Contains(signal, string(state)) {
			return state
		}
	}
	return AvailabilityUnknown
}
