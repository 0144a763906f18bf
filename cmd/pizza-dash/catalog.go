package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pizzadash/equipment"
	"pizzadash/events"
	"pizzadash/ledger"
)

var catalogFile string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the equipment sheet with per-tier stats",
	RunE:  printCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "items", "", "custom shop YAML (default: built-in catalog)")
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(cmd *cobra.Command, args []string) error {
	var items []equipment.Item
	var err error
	if catalogFile != "" {
		data, readErr := os.ReadFile(catalogFile)
		if readErr != nil {
			return readErr
		}
		items, err = equipment.LoadCatalogItems(data)
	} else {
		items, err = equipment.DefaultCatalogItems()
	}
	if err != nil {
		return err
	}
	queue := events.NewEventQueue()
	currency := ledger.NewCurrency(queue)
	xp := ledger.NewExperience(queue)
	catalog := equipment.NewCatalog(items, currency, xp, queue)

	for _, kind := range []equipment.Kind{equipment.KindVehicle, equipment.KindCharacter} {
		fmt.Printf("=== %ss ===\n", kind)
		for _, item := range catalog.Items(kind) {
			fmt.Printf("\n%s (%s)  $%d", item.Name, item.ID, item.Price)
			if item.UnlockLevel > 1 {
				fmt.Printf("  unlocks at level %d", item.UnlockLevel)
			}
			fmt.Println()
			if item.Description != "" {
				fmt.Printf("  %s\n", item.Description)
			}
			for tier := 0; tier <= item.MaxUpgradeLevel; tier++ {
				stats, _ := catalog.StatsAtLevel(item.ID, tier)
				line := fmt.Sprintf("  tier %d: %s", tier, formatStats(stats))
				if tier > 0 {
					line += fmt.Sprintf("  (upgrade $%d)", item.UpgradeCosts[tier-1])
				}
				fmt.Println(line)
			}
		}
		fmt.Println()
	}
	return nil
}

func formatStats(s equipment.Stats) string {
	out := ""
	if s.OrderCapacity != nil {
		out += fmt.Sprintf("capacity %d  ", *s.OrderCapacity)
	}
	if s.DeliveryRange != nil {
		out += fmt.Sprintf("range %dm  ", *s.DeliveryRange)
	}
	if s.EarningsBonus != nil {
		out += fmt.Sprintf("earnings +%d%%", *s.EarningsBonus)
	}
	if out == "" {
		return "no stat changes"
	}
	return out
}
