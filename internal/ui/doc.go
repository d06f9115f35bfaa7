// Package ui prints styled output for the non-interactive apsetup commands.
//
// Components follow a "print and exit" pattern, unlike the interactive
// console form:
//
//   - Header: command banner with the parameters in use
//   - Result: success, failure or warning box with details and hints
//   - Printer.RunTask: header, step lines, then a result box
//   - Printer.Confirm: warning box followed by a typed confirmation
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	err := p.RunTask(ui.Task{
//	    Title:   "Save",
//	    Command: "apsetup save",
//	    Params:  []ui.Param{{Key: "Device", Value: url}},
//	    Hints:   hints,
//	}, func(onStep ui.StepCallback) ([]ui.Param, error) {
//	    onStep("Contacting device", ui.StepRunning, "")
//	    // ...
//	    onStep("Contacting device", ui.StepDone, "")
//	    return nil, nil
//	})
//
// Logging stays silent unless APSETUP_LOG_LEVEL or --log-level is set, so the
// styled output is not interleaved with log lines.
package ui
