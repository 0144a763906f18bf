package engine

import (
	"fmt"
	"math/rand"

	"pizzadash/order"
)

// Customer and menu pools for randomized order generation. Display-only
// opaque strings; avatars are icon names the UI maps to art.
var customerNames = []string{
	"Alex Johnson", "Maria Garcia", "James Smith", "Aisha Khan",
	"Wei Chen", "Sofia Rossi", "Liam O'Brien", "Emma Müller",
	"Noah Williams", "Olivia Brown", "Lucas Silva", "Mia Novak",
	"Ethan Davis", "Yuki Tanaka", "Ava Martinez", "Omar Haddad",
}

var customerAvatars = []string{
	"avatar_1", "avatar_2", "avatar_3", "avatar_4",
	"avatar_5", "avatar_6", "avatar_7", "avatar_8",
}

var menuItems = []string{
	"Margherita", "Pepperoni", "Quattro Formaggi", "Hawaiian",
	"Veggie Supreme", "BBQ Chicken", "Diavola", "Calzone",
	"Capricciosa", "Funghi", "Marinara", "Prosciutto",
}

func randomCustomerName(rng *rand.Rand) string {
	return customerNames[rng.Intn(len(customerNames))]
}

func randomCustomerAvatar(rng *rand.Rand) string {
	return customerAvatars[rng.Intn(len(customerAvatars))]
}

// randomItems builds 1-3 order lines with quantities 1-3, distinct dishes
func randomItems(rng *rand.Rand) []order.Item {
	count := 1 + rng.Intn(3)
	picked := rng.Perm(len(menuItems))[:count]

	items := make([]order.Item, 0, count)
	for _, idx := range picked {
		items = append(items, order.Item{
			Name:     menuItems[idx],
			Quantity: 1 + rng.Intn(3),
		})
	}
	return items
}

// nextOrderID formats a unique order id from the engine's counter
func nextOrderID(seq uint64) string {
	return fmt.Sprintf("order-%06d", seq)
}
