// Package result defines the stable, enumerable rejection reasons returned
// by game operations. These are business-rule outcomes, not errors: callers
// routinely probe feasibility before acting, so every operation reports a
// reason code instead of an error value.
package result

// Reason classifies the outcome of a game operation
type Reason int

const (
	// OK means the operation succeeded
	OK Reason = iota

	// InsufficientFunds rejects a purchase or upgrade with balance < cost
	InsufficientFunds

	// AlreadyOwned rejects purchasing an owned item
	AlreadyOwned

	// NotOwned rejects upgrading or selecting an unowned item
	NotOwned

	// LevelLocked rejects purchasing below the item's unlock level
	LevelLocked

	// MaxUpgradeReached rejects upgrading past the ladder ceiling
	MaxUpgradeReached

	// CapacityExceeded rejects accepting beyond the equipment's order capacity
	CapacityExceeded

	// OutOfRange rejects accepting beyond the equipment's delivery range
	OutOfRange

	// OrderNotFound signals a stale or unknown order id.
	// Timer callbacks firing after manual removal land here and are silent no-ops.
	OrderNotFound

	// ItemNotFound signals an unknown catalog item id
	ItemNotFound

	// NotIncoming rejects an operation that requires an incoming order
	NotIncoming

	// NotActive rejects an operation that requires an active order
	NotActive

	// NotNearCustomer rejects completing a delivery before reaching the customer
	NotNearCustomer

	// LocationUnavailable rejects generation without a known player location
	LocationUnavailable

	// AcceptingDisabled rejects generation while order acceptance is toggled off
	AcceptingDisabled

	// WrongKind rejects selecting an item into the other category's slot
	WrongKind
)

// Ok reports whether the reason is a success
func (r Reason) Ok() bool {
	return r == OK
}

func (r Reason) String() string {
	switch r {
	case OK:
		return "OK"
	case InsufficientFunds:
		return "InsufficientFunds"
	case AlreadyOwned:
		return "AlreadyOwned"
	case NotOwned:
		return "NotOwned"
	case LevelLocked:
		return "LevelLocked"
	case MaxUpgradeReached:
		return "MaxUpgradeReached"
	case CapacityExceeded:
		return "CapacityExceeded"
	case OutOfRange:
		return "OutOfRange"
	case OrderNotFound:
		return "OrderNotFound"
	case ItemNotFound:
		return "ItemNotFound"
	case NotIncoming:
		return "NotIncoming"
	case NotActive:
		return "NotActive"
	case NotNearCustomer:
		return "NotNearCustomer"
	case LocationUnavailable:
		return "LocationUnavailable"
	case AcceptingDisabled:
		return "AcceptingDisabled"
	case WrongKind:
		return "WrongKind"
	default:
		return "Unknown"
	}
}
