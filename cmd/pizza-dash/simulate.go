package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pizzadash/config"
	"pizzadash/engine"
	"pizzadash/equipment"
	"pizzadash/events"
	"pizzadash/ledger"
	"pizzadash/location"
	"pizzadash/result"
)

var (
	simDeliveries int
	simSeed       int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a headless session and print the outcome",
	Long: `simulate generates orders, accepts each one, bakes the pizza, walks
to the customer and delivers, repeating for the requested number of
deliveries. Nothing is persisted; use it to eyeball the economy.`,
	RunE: runSimulation,
}

func init() {
	simulateCmd.Flags().IntVar(&simDeliveries, "deliveries", 5, "number of deliveries to play")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "engine RNG seed")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	queue := events.NewEventQueue()
	currency := ledger.NewCurrency(queue)
	xp := ledger.NewExperience(queue)
	items, err := equipment.DefaultCatalogItems()
	if err != nil {
		return err
	}
	catalog := equipment.NewCatalog(items, currency, xp, queue)
	sim := location.NewSim(homeBase, walkStep)

	eng := engine.New(engine.Deps{
		Queue:      queue,
		Currency:   currency,
		Experience: xp,
		Catalog:    catalog,
		Location:   sim,
		Settings:   cfg,
		Seed:       simSeed,
	})

	for i := 0; i < simDeliveries; i++ {
		o, reason := eng.Generate()
		if reason != result.OK {
			return fmt.Errorf("generate: %v", reason)
		}
		if r := eng.Accept(o.ID); r != result.OK {
			return fmt.Errorf("accept %s: %v", o.ID, r)
		}
		eng.MarkPizzaMade(o.ID)

		dest := o.CustomerLocation
		sim.SetTarget(&dest)
		for walkToCustomer(eng, sim, o.ID) {
		}

		if r := eng.Complete(o.ID); r != result.OK {
			return fmt.Errorf("deliver %s: %v", o.ID, r)
		}

		done, _ := eng.Get(o.ID)
		fmt.Printf("delivered %s to %s: $%d, %.0fm\n",
			done.ID, done.CustomerName, done.Total, done.Distance)

		// Walk back home so the next order prices from the shop
		home := homeBase
		sim.SetTarget(&home)
		stepUntilArrival(sim)
	}

	fmt.Printf("\n%d deliveries, %d steps walked\n", simDeliveries, sim.Steps())
	fmt.Printf("balance $%d, level %d (%.0f%% to next)\n",
		currency.Balance(), xp.Level(), xp.Progress()*100)
	return nil
}

// walkToCustomer takes one step and reports whether more walking is needed
func walkToCustomer(eng *engine.Engine, sim *location.Sim, orderID string) bool {
	p := sim.Step()
	eng.UpdateProximity(orderID, p)
	o, ok := eng.Get(orderID)
	if !ok {
		return false
	}
	return !o.NearCustomer
}

// stepUntilArrival walks until the position stops changing
func stepUntilArrival(sim *location.Sim) {
	for {
		before, _ := sim.Current()
		if sim.Step() == before {
			return
		}
	}
}
