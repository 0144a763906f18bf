package events

// OrderPayload identifies the order an event refers to
type OrderPayload struct {
	OrderID string
}

// OrderCompletedPayload carries the reward breakdown for a finished delivery
type OrderCompletedPayload struct {
	OrderID string
	Payout  int
	XP      int
}

// ProximityPayload carries the near-customer transition and live distance
type ProximityPayload struct {
	OrderID  string
	Near     bool
	Distance float64 // meters
}

// BalancePayload carries a currency mutation
type BalancePayload struct {
	Delta   int
	Balance int // balance after the mutation
}

// ExperiencePayload carries an XP grant before normalization
type ExperiencePayload struct {
	Amount int
}

// LevelUpPayload carries the level transition after XP normalization
type LevelUpPayload struct {
	From int
	To   int
}

// ItemPayload identifies the equipment item an event refers to
type ItemPayload struct {
	ItemID string
}
