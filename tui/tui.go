// Package tui implements a terminal stepper for the machine: a small
// tview application that displays the accumulator, control registers and
// memory contents, and lets the operator single-step or free-run the
// fetch-decode-execute cycle. It is the "driver that calls the step
// function" the spec allows in place of a windowed GUI.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sgysy/babysim/machine"
)

// App wraps the machine state and the tview widgets that display it.
type App struct {
	state *machine.State

	app       *tview.Application
	status    *tview.TextView
	memory    *tview.TextView
	log       *tview.TextView
	maxRounds uint64
}

// New builds a stepper over state. maxRounds bounds the free-run command
// ('r'); zero means unbounded.
func New(state *machine.State, maxRounds uint64) *App {
	a := &App{state: state, maxRounds: maxRounds}
	a.app = tview.NewApplication()
	a.buildViews()
	return a
}

func (a *App) buildViews() {
	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetBorder(true).SetTitle(" registers ")

	a.memory = tview.NewTextView().SetDynamicColors(true)
	a.memory.SetBorder(true).SetTitle(" memory ")

	a.log = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.log.SetBorder(true).SetTitle(" trace ")

	help := tview.NewTextView().
		SetText("[s]tep  [r]un  [q]uit").
		SetTextAlign(tview.AlignCenter)

	top := tview.NewFlex().
		AddItem(a.status, 0, 1, false).
		AddItem(a.memory, 0, 2, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(a.log, 0, 2, false).
		AddItem(help, 1, 0, false)

	a.app.SetInputCapture(a.handleKey)
	a.app.SetRoot(root, true)
	a.refresh()
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 's':
		a.step()
		return nil
	case 'r':
		a.run()
		return nil
	case 'q':
		a.app.Stop()
		return nil
	}
	return event
}

func (a *App) step() {
	if a.state.Halted {
		return
	}
	err := a.state.Step()
	fmt.Fprintf(a.log, "round %d: CI=%d PI=%s", a.state.CurRound, a.state.PrevCI, decodeSummary(a.state))
	if err != nil {
		fmt.Fprintf(a.log, " [red]error: %v[-]\n", err)
	} else {
		fmt.Fprint(a.log, "\n")
	}
	a.refresh()
}

func (a *App) run() {
	rounds := uint64(0)
	for !a.state.Halted {
		if a.maxRounds > 0 && rounds >= a.maxRounds {
			fmt.Fprintf(a.log, "[yellow]stopped after %d rounds (limit reached)[-]\n", a.maxRounds)
			break
		}
		if err := a.state.Step(); err != nil {
			fmt.Fprintf(a.log, "[red]halted: %v[-]\n", err)
			break
		}
		rounds++
	}
	a.refresh()
}

func (a *App) refresh() {
	a.status.Clear()
	fmt.Fprintf(a.status, "CI:     %d\nPrevCI: %d\nAcc:    %d\nHalted: %v\nRound:  %d\n",
		a.state.CI, a.state.PrevCI, a.state.Accumulator, a.state.Halted, a.state.CurRound)

	a.memory.Clear()
	var b strings.Builder
	for i, w := range a.state.Memory {
		marker := "  "
		if i == a.state.CI {
			marker = "->"
		}
		fmt.Fprintf(&b, "%s %2d: %d\n", marker, i, int32(w))
	}
	fmt.Fprint(a.memory, b.String())
}

func decodeSummary(s *machine.State) string {
	return fmt.Sprintf("op=%d operand=%d imm=%v", s.CurOpcode, s.CurOperand, s.CurImmediate)
}

// Run blocks until the operator quits the application.
func (a *App) Run() error {
	return a.app.Run()
}
