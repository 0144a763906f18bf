package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"pizzadash/engine"
	"pizzadash/equipment"
	"pizzadash/events"
	"pizzadash/order"
	"pizzadash/parameter"
)

const (
	paneIncoming = iota
	paneActive
)

const maxMessages = 5

// dashboard is the interactive terminal front-end over a world
type dashboard struct {
	screen tcell.Screen
	world  *world

	pane     int
	selected [2]int // selection index per pane

	walking  bool
	messages []string
}

func newDashboard(w *world) (*dashboard, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &dashboard{screen: screen, world: w}, nil
}

func (d *dashboard) fini() {
	d.screen.Fini()
}

func (d *dashboard) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}

		case <-ticker.C:
			d.tick()
		}
		d.draw()
	}
}

func (d *dashboard) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			d.pane = (d.pane + 1) % 2
			return true
		}
		if ev.Key() == tcell.KeyDown {
			d.moveSelection(1)
			return true
		}
		if ev.Key() == tcell.KeyUp {
			d.moveSelection(-1)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			d.moveSelection(1)
		case 'k':
			d.moveSelection(-1)
		case 't':
			on := !d.world.engine.AcceptingOrders()
			d.world.engine.SetAcceptingOrders(on)
			if on {
				d.say("accepting orders")
			} else {
				d.say("order intake paused")
			}
		case 'a':
			d.acceptSelected()
		case 'd':
			d.declineSelected()
		case 'm':
			d.markSelected()
		case 'c':
			d.completeSelected()
		case ' ':
			d.walking = !d.walking
			if d.walking {
				d.retarget()
				d.say("walking")
			} else {
				d.say("stopped")
			}
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}

	return true
}

// tick advances the walker and refreshes proximity on active orders
func (d *dashboard) tick() {
	if d.walking {
		d.world.sim.Step()
	}
	if p, ok := d.world.sim.Current(); ok {
		for _, o := range d.world.engine.Active() {
			d.world.engine.UpdateProximity(o.ID, p)
		}
	}
	for _, ev := range d.world.queue.Consume() {
		d.say(describeEvent(ev))
	}
	d.clampSelection()
}

func (d *dashboard) moveSelection(delta int) {
	d.selected[d.pane] += delta
	d.clampSelection()
}

func (d *dashboard) clampSelection() {
	sizes := [2]int{len(d.world.engine.Incoming()), len(d.world.engine.Active())}
	for pane, n := range sizes {
		if d.selected[pane] >= n {
			d.selected[pane] = n - 1
		}
		if d.selected[pane] < 0 {
			d.selected[pane] = 0
		}
	}
}

func (d *dashboard) selectedOrder(pane int) (*order.Order, bool) {
	var list []*order.Order
	if pane == paneIncoming {
		list = d.world.engine.Incoming()
	} else {
		list = d.world.engine.Active()
	}
	idx := d.selected[pane]
	if idx < 0 || idx >= len(list) {
		return nil, false
	}
	return list[idx], true
}

func (d *dashboard) acceptSelected() {
	o, ok := d.selectedOrder(paneIncoming)
	if !ok {
		return
	}
	if r := d.world.engine.Accept(o.ID); !r.Ok() {
		d.say(fmt.Sprintf("accept %s: %v", o.ID, r))
		return
	}
	d.retarget()
}

func (d *dashboard) declineSelected() {
	o, ok := d.selectedOrder(paneIncoming)
	if !ok {
		return
	}
	if r := d.world.engine.Decline(o.ID); !r.Ok() {
		d.say(fmt.Sprintf("decline %s: %v", o.ID, r))
	}
}

func (d *dashboard) markSelected() {
	o, ok := d.selectedOrder(paneActive)
	if !ok {
		return
	}
	if r := d.world.engine.MarkPizzaMade(o.ID); !r.Ok() {
		d.say(fmt.Sprintf("make pizza %s: %v", o.ID, r))
	}
}

func (d *dashboard) completeSelected() {
	o, ok := d.selectedOrder(paneActive)
	if !ok {
		return
	}
	if r := d.world.engine.Complete(o.ID); !r.Ok() {
		d.say(fmt.Sprintf("deliver %s: %v", o.ID, r))
	}
}

// retarget points the walker at the selected active order's customer
func (d *dashboard) retarget() {
	if o, ok := d.selectedOrder(paneActive); ok {
		dest := o.CustomerLocation
		d.world.sim.SetTarget(&dest)
	}
}

func (d *dashboard) say(msg string) {
	d.messages = append(d.messages, msg)
	if len(d.messages) > maxMessages {
		d.messages = d.messages[len(d.messages)-maxMessages:]
	}
}

func describeEvent(ev events.GameEvent) string {
	switch p := ev.Payload.(type) {
	case *events.OrderCompletedPayload:
		return fmt.Sprintf("delivered %s: +$%d, +%d xp", p.OrderID, p.Payout, p.XP)
	case *events.LevelUpPayload:
		return fmt.Sprintf("level up! %d -> %d", p.From, p.To)
	case *events.OrderPayload:
		return fmt.Sprintf("%s: %s", events.GetEventName(ev.Type), p.OrderID)
	default:
		return events.GetEventName(ev.Type)
	}
}

var (
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlain    = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (d *dashboard) draw() {
	d.screen.Clear()
	w := d.world

	accepting := "accepting"
	if !w.engine.AcceptingOrders() {
		accepting = "paused"
	}
	d.text(0, 0, styleTitle, fmt.Sprintf("PIZZA DASH  [%s]", accepting))

	d.text(0, 1, stylePlain, fmt.Sprintf("$%d   level %d (%.0f%%)   steps %d",
		w.currency.Balance(), w.xp.Level(), w.xp.Progress()*100, w.sim.Steps()))

	veh := w.catalog.Selected(equipment.KindVehicle)
	chr := w.catalog.Selected(equipment.KindCharacter)
	d.text(0, 2, styleDim, fmt.Sprintf("%s + %s   capacity %d   range %.0fm   bonus %d%%",
		veh, chr, w.catalog.ActiveCapacity(), w.catalog.ActiveRange(), w.catalog.ActiveEarningsBonus()))

	row := 4
	row = d.drawIncoming(row)
	row++
	row = d.drawActive(row)
	row++
	row = d.drawPast(row)
	row++

	for _, msg := range d.messages {
		d.text(0, row, styleDim, msg)
		row++
	}

	_, h := d.screen.Size()
	d.text(0, h-1, styleDim, "tab pane  j/k select  a accept  d decline  m make  space walk  c deliver  t toggle  q quit")

	d.screen.Show()
}

func (d *dashboard) drawIncoming(row int) int {
	d.text(0, row, styleHeader, fmt.Sprintf("INCOMING (%d/%d)", len(d.world.engine.Incoming()), parameter.MaxIncomingOrders))
	row++
	for i, o := range d.world.engine.Incoming() {
		style := stylePlain
		if d.pane == paneIncoming && i == d.selected[paneIncoming] {
			style = styleSelected
		}
		left := time.Until(o.CreatedAt.Add(parameter.IncomingOrderTimeout)).Round(time.Second)
		d.text(2, row, style, fmt.Sprintf("%-12s %-10s $%-3d %4.0fm  expires %s",
			o.ID, o.CustomerName, o.Total, o.Distance, left))
		row++
	}
	return row
}

func (d *dashboard) drawActive(row int) int {
	d.text(0, row, styleHeader, fmt.Sprintf("ACTIVE (%d/%d)", len(d.world.engine.Active()), d.world.catalog.ActiveCapacity()))
	row++
	cur, hasLoc := d.world.sim.Current()
	for i, o := range d.world.engine.Active() {
		style := stylePlain
		if d.pane == paneActive && i == d.selected[paneActive] {
			style = styleSelected
		}
		flags := ""
		if o.PizzaMade {
			flags += " [pizza]"
		}
		if o.NearCustomer {
			flags += " [near]"
		}
		line := fmt.Sprintf("%-12s %-10s $%-3d", o.ID, o.CustomerName, o.Total)
		if hasLoc {
			line += fmt.Sprintf("  %3.0f%% there", engine.Progress(o, cur)*100)
		}
		d.text(2, row, style, line+flags)
		row++
	}
	return row
}

func (d *dashboard) drawPast(row int) int {
	past := d.world.engine.Past()
	d.text(0, row, styleHeader, fmt.Sprintf("DELIVERED (%d)", len(past)))
	row++
	start := len(past) - 3
	if start < 0 {
		start = 0
	}
	for _, o := range past[start:] {
		d.text(2, row, styleDim, fmt.Sprintf("%-12s %-10s $%d", o.ID, o.CustomerName, o.Total))
		row++
	}
	return row
}

func (d *dashboard) text(x, y int, style tcell.Style, s string) {
	for i, r := range s {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}
