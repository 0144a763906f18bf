package parameter

// Experience Rewards
const (
	// XPPerDelivery is the base experience for any completed delivery
	XPPerDelivery = 50

	// XPValueDivisor converts order total into bonus experience (total / divisor)
	XPValueDivisor = 10

	// XPDistanceDivisor converts delivery distance into bonus experience (meters / divisor)
	XPDistanceDivisor = 100

	// XPPerLevel is the slope of the level ramp: requiredXP(level) = level * XPPerLevel
	XPPerLevel = 100
)

// Equipment Upgrades
const (
	// UpgradeMultiplierStep is the multiplicative stat bonus per upgrade tier (1 + step*L)
	UpgradeMultiplierStep = 0.25

	// UpgradeFlatEarnings is the flat earnings bonus added per upgrade tier,
	// applied before the tier multiplier
	UpgradeFlatEarnings = 5

	// UpgradeMinBaseCapacity floors the base capacity before scaling
	UpgradeMinBaseCapacity = 1

	// UpgradeMinBaseRange floors the base range before scaling (meters)
	UpgradeMinBaseRange = 1000
)
