// Package tonaddr pre-validates TON addresses before they are sent to the
// backend, so an obviously malformed address never costs a round trip.
package tonaddr

import (
	"fmt"
	"strings"

	"github.com/tonkeeper/tongo/ton"
)

// Kind of a syntactically valid address.
type Kind string

const (
	KindRaw           Kind = "raw"
	KindBounceable    Kind = "bounceable"
	KindNonBounceable Kind = "non_bounceable"
)

// Validate parses address and reports its form. Accepts raw
// "workchain:hex" and the user-friendly base64 forms.
func Validate(address string) (Kind, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("address is empty")
	}
	if _, err := ton.ParseAccountID(address); err != nil {
		return "", fmt.Errorf("invalid TON address: %w", err)
	}
	switch {
	case strings.Contains(address, ":"):
		return KindRaw, nil
	case strings.HasPrefix(address, "UQ") || strings.HasPrefix(address, "0Q"):
		return KindNonBounceable, nil
	default:
		return KindBounceable, nil
	}
}
