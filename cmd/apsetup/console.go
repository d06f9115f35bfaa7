package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/apsetup/internal/config"
	"github.com/muurk/apsetup/internal/console"
	"github.com/muurk/apsetup/internal/console/tui"
	"github.com/muurk/apsetup/internal/dispatch"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/render"
	"github.com/muurk/apsetup/internal/urls"
)

// newConsole wires the form: the engine renders into doc, the store renders
// through the engine, and the controller dispatches into the store.
func newConsole(ctx context.Context, client *gateway.Client, opts ...console.Option) (*console.Controller, *render.Document) {
	doc := render.NewDocument()
	store := dispatch.NewStore(render.NewEngine(doc))

	base := []console.Option{
		console.WithContext(ctx),
		console.WithSaveDelay(settings.SaveDelay),
	}
	return console.NewController(store, client, append(base, opts...)...), doc
}

// recordSave returns the save hook that keeps the registry in step with the
// device. It runs before the console follows a renamed device, so the
// client still points at the old name.
func recordSave(client *gateway.Client) func(req *gateway.SaveRequest) {
	return func(req *gateway.SaveRequest) {
		previous := ""
		if host, ok := strings.CutSuffix(client.Hostname(), "."+urls.LocalDomain); ok {
			previous = host
		}
		ssid := ""
		if req.SSID != nil {
			ssid = *req.SSID
		}
		address := urls.DeviceLink(req.DeviceName)
		settings.remember(func(r *config.Registry) {
			r.RecordSave(previous, req.DeviceName, req.Webhook, ssid, address)
		})
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the console needs a terminal; use 'apsetup save' for scripted setup")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := settings.Client(ctx)
	if err != nil {
		return err
	}

	controller, doc := newConsole(ctx, client, console.WithOnSaved(recordSave(client)))

	return tui.Run(tui.New(controller, doc, client.BaseURL()))
}
