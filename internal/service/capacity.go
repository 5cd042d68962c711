package service

import "fmt"

// Locale selects the wording of human-facing labels. The site is bilingual;
// thresholds never vary by locale.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// Availability label tiers. The 10 and 25 boundaries are product decisions
// carried over from the site's copy, not derived values.
const (
	urgencyTier = 10
	lowTier     = 25
)

// AvailabilityLabel renders a "spots remaining" label for an event with the
// given capacity and reserved-seat total. Events without a capacity are not
// advertised as limited, so no label is produced for them. The displayed
// remaining count is clamped to [0, capacity].
func AvailabilityLabel(capacity *int, reserved int, locale Locale) (string, bool) {
	if capacity == nil {
		return "", false
	}

	remaining := *capacity - reserved
	if remaining < 0 {
		remaining = 0
	}
	if remaining > *capacity {
		remaining = *capacity
	}

	switch {
	case remaining == 0:
		if locale == LocaleES {
			return "Completo", true
		}
		return "Full", true
	case remaining <= urgencyTier:
		if locale == LocaleES {
			return fmt.Sprintf("Quedan %d lugares", remaining), true
		}
		return fmt.Sprintf("%d spots left", remaining), true
	case remaining <= lowTier:
		if locale == LocaleES {
			return fmt.Sprintf("%d lugares disponibles", remaining), true
		}
		return fmt.Sprintf("%d spots remaining", remaining), true
	default:
		if locale == LocaleES {
			return fmt.Sprintf("%d / %d disponibles", remaining, *capacity), true
		}
		return fmt.Sprintf("%d / %d available", remaining, *capacity), true
	}
}
