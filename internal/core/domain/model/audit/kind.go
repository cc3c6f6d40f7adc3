package audit

import (
	"fmt"
	"strings"

	"orderintegration/internal/pkg/errs"
)

// Kind classifies what happened to an entity in a recorded audit event.
type Kind int

const (
	// UnknownKind represents an invalid or undefined event kind.
	UnknownKind Kind = iota

	// OrderCreated is recorded when a new order is registered.
	OrderCreated

	// StatusChanged is recorded when an order moves to a new lifecycle status.
	StatusChanged

	// ErpSent is recorded when an order payload is handed to the ERP.
	ErpSent

	// ErpAck is recorded when the ERP confirms an order, whether through the
	// synchronous send response or an asynchronous webhook.
	ErpAck

	// ErpFail is recorded when the ERP rejects an order or reports a
	// business-level failure.
	ErpFail
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind:   "Unknown",
		OrderCreated:  "OrderCreated",
		StatusChanged: "StatusChanged",
		ErpSent:       "ErpSent",
		ErpAck:        "ErpAck",
		ErpFail:       "ErpFail",
	}
}

// getValidKindStrings returns a map of only valid Kind values.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // UnknownKind is intentionally excluded as it's invalid
	return map[Kind]string{
		OrderCreated:  "OrderCreated",
		StatusChanged: "StatusChanged",
		ErpSent:       "ErpSent",
		ErpAck:        "ErpAck",
		ErpFail:       "ErpFail",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event kind is invalid",
			fmt.Errorf("%d is not a valid event kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
// Returns "Unknown" for invalid values.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// ParseKind converts an event kind name into a Kind value.
// Matching is case-insensitive. An unrecognized name fails with an error that
// lists the valid variants.
func ParseKind(name string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if strings.EqualFold(str, name) {
			return kind, nil
		}
	}

	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("event kind is invalid",
		fmt.Errorf("%q is not a valid event kind, valid kinds: %s",
			name, strings.Join(ValidKindNames(), ", ")))
}

// ValidKindNames returns the names of all valid event kinds in declaration order.
func ValidKindNames() []string {
	kinds := []Kind{OrderCreated, StatusChanged, ErpSent, ErpAck, ErpFail}
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}
