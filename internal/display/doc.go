// Package display renders the screening form and its results to a terminal.
//
// Terminal is the terminal implementation of the view context: it keeps the
// form state in memory and prints every slot write to an io.Writer.
//
//	mem := view.NewMemory(form.NewRegistry())
//	term := display.NewTerminal(mem, os.Stdout, colorOutput)
//
// Output is line oriented so it works in pipes and CI logs. Colors come from
// fatih/color and are only applied when the caller enables them.
//
// Results can also be rendered on their own, for example from history:
//
//	display.RenderResult(os.Stdout, presentation, false)
package display
