package parameter

import "time"

// Order Generation
const (
	// MaxIncomingOrders caps the incoming queue; generation skips when full
	MaxIncomingOrders = 5

	// MaxActiveOrdersForGeneration pauses generation while the player is saturated
	MaxActiveOrdersForGeneration = 3

	// GenerateIntervalMin is the lower bound of the randomized generation tick
	GenerateIntervalMin = 1 * time.Second

	// GenerateIntervalMax is the upper bound of the randomized generation tick
	GenerateIntervalMax = 6 * time.Second

	// IncomingOrderTimeout removes an incoming order that was never accepted
	IncomingOrderTimeout = 3 * time.Minute
)

// Delivery
const (
	// NearCustomerThreshold is the live distance below which an order is completable.
	// Earlier revisions used 300000 which mixed km/m; 300m is the intended value.
	NearCustomerThreshold = 300.0

	// DefaultOrderCapacity applies when no vehicle is selected
	DefaultOrderCapacity = 1

	// DefaultDeliveryRange applies when no vehicle is selected (meters)
	DefaultDeliveryRange = 1000.0
)

// Order Pricing
const (
	// DeliveryFeeBase is the flat component of every delivery fee
	DeliveryFeeBase = 2

	// DeliveryFeePerMeters grants one currency unit of fee per this many meters
	DeliveryFeePerMeters = 100

	// TipMin and TipMax bound the random integer tip
	TipMin = 1
	TipMax = 5
)
