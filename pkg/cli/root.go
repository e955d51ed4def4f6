// Package cli wires the commands of the vidsum binary.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vidsum/pkg/gateway"
	"vidsum/pkg/history"
	"vidsum/pkg/languages"
	"vidsum/pkg/notify"
)

// App holds what the commands share. The gateway is built on first use so
// commands that never summarize work without an API key.
type App struct {
	Store      history.Store
	Catalog    *languages.Catalog
	Notices    *notify.Queue
	Logger     *zap.Logger
	NewGateway func() (gateway.Summarizer, error)
	Addr       string
	Location   *time.Location
	Now        func() time.Time
}

func (a *App) defaults() {
	if a.Catalog == nil {
		a.Catalog = languages.Default()
	}
	if a.Notices == nil {
		a.Notices = notify.NewQueue()
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if a.Location == nil {
		a.Location = time.Local
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.NewGateway == nil {
		a.NewGateway = func() (gateway.Summarizer, error) {
			return nil, fmt.Errorf("no summarization provider configured")
		}
	}
}

// flushNotices prints whatever the store reported during a command.
func (a *App) flushNotices(w io.Writer) {
	p := notify.NewPrinter(w)
	for _, n := range a.Notices.Drain() {
		p.Notify(n.Level, n.Message)
	}
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	app.defaults()

	root := &cobra.Command{
		Use:           "vidsum",
		Short:         "Summarize videos with a generative model and keep a local history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.flushNotices(cmd.ErrOrStderr())
		},
	}

	root.AddCommand(
		newServeCommand(app),
		newSummarizeCommand(app),
		newLatestCommand(app),
		newHistoryCommand(app),
		newLanguagesCommand(app),
	)
	return root
}

// Execute runs the command line against app.
func Execute(app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		app.flushNotices(root.ErrOrStderr())
	}
	return err
}
