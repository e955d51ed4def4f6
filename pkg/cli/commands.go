package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vidsum/pkg/gateway"
	"vidsum/pkg/languages"
	"vidsum/pkg/notify"
	"vidsum/pkg/summary"
	"vidsum/pkg/web"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	dimColor    = color.New(color.Faint)
)

func newServeCommand(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long: `Start the local web UI with the input, result and history screens.

Examples:
  vidsum serve
  vidsum serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without an API key the history and result screens still work.
			gw := gateway.Lazy(app.NewGateway)

			srv, err := web.NewServer(app.Store, gw, app.Catalog, app.Notices, app.Logger)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = app.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(addr)
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.Logger.Info("shutting down web server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newSummarizeCommand(app *App) *cobra.Command {
	var (
		langCode string
		group    string
	)

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize a video and save it to history",
		Long: `Summarize a video and save it as the latest summary and in history.

Examples:
  vidsum summarize https://www.youtube.com/watch?v=dQw4w9WgXcQ
  vidsum summarize https://youtu.be/dQw4w9WgXcQ --lang fr
  vidsum summarize https://youtu.be/dQw4w9WgXcQ --group indian --lang hi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceReference, err := summary.ValidateSourceReference(args[0])
			if err != nil {
				return err
			}

			lang := app.Catalog.Resolve(group, langCode)
			if langCode != "" && lang.Code != langCode {
				app.Notices.Notify(notify.LevelWarning, fmt.Sprintf("Unknown language %q, using English", langCode))
			}

			gw, err := app.NewGateway()
			if err != nil {
				return err
			}

			text, err := gw.Summarize(cmd.Context(), sourceReference, lang.Name)
			if err != nil {
				return err
			}

			record := summary.NewRecord(text, sourceReference, lang, app.Now())
			savedLatest := app.Store.SaveLatest(cmd.Context(), record)
			appended := app.Store.Append(cmd.Context(), record)
			switch {
			case !savedLatest:
				app.Logger.Warn("latest summary not persisted", zap.String("url", sourceReference))
				app.Notices.Notify(notify.LevelError, "Failed to save summary")
			case !appended:
				app.Notices.Notify(notify.LevelSuccess, "Summary generated successfully!")
				app.Notices.Notify(notify.LevelWarning, "Failed to save to history")
			default:
				app.Notices.Notify(notify.LevelSuccess, "Summary generated successfully!")
			}
			if !appended {
				app.Logger.Warn("summary not added to history", zap.String("url", sourceReference))
			}

			printRecord(cmd.OutOrStdout(), record, app.Location)
			return nil
		},
	}

	cmd.Flags().StringVarP(&langCode, "lang", "l", summary.DefaultLanguageCode, "language code of the summary")
	cmd.Flags().StringVarP(&group, "group", "g", languages.GroupCountry, "language group (country, indian)")
	return cmd
}

func newLatestCommand(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, ok := app.Store.LoadLatest(cmd.Context())
			if !ok {
				return errors.New("failed to load summary data")
			}
			if record == nil {
				return errors.New("no summary data found")
			}

			if plain {
				fmt.Fprint(cmd.OutOrStdout(), summary.Export(*record, app.Now(), app.Location))
				return nil
			}
			printRecord(cmd.OutOrStdout(), *record, app.Location)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the plain-text export")
	return cmd
}

func newHistoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, delete or clear saved summaries",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved summaries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records := app.Store.ListSortedByTimeDescending(cmd.Context())
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No summaries yet.")
				return nil
			}

			for i, r := range records {
				headerColor.Fprintf(out, "[%d] ", i)
				fmt.Fprintf(out, "%s  %s  %s\n",
					summary.FormatTimestamp(r.CreatedAt, app.Location),
					r.LanguageName,
					summary.ClassifyVideo(r.SourceReference),
				)
				dimColor.Fprintf(out, "    %s\n", r.SourceReference)
				fmt.Fprintf(out, "    %s\n", summary.Truncate(summary.StripBold(r.Summary), summary.PreviewLength))
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Delete the summary at the index shown by 'history list'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			if !app.Store.Remove(cmd.Context(), index) {
				return errors.New("failed to delete summary")
			}
			app.Notices.Notify(notify.LevelSuccess, "Summary deleted successfully!")
			return nil
		},
	}

	clearAll := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.Clear(cmd.Context()) {
				return errors.New("failed to clear history")
			}
			app.Notices.Notify(notify.LevelSuccess, "History cleared")
			return nil
		},
	}

	cmd.AddCommand(list, rm, clearAll)
	return cmd
}

func newLanguagesCommand(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the selectable summary languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range app.Catalog.Options(group) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", l.Code, l.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", languages.GroupCountry, "language group (country, indian)")
	return cmd
}

func printRecord(w io.Writer, r summary.Record, loc *time.Location) {
	headerColor.Fprintln(w, "AI Video Summary")
	dimColor.Fprintf(w, "%s · %s · %s\n", summary.FormatTimestamp(r.CreatedAt, loc), r.LanguageName, r.SourceReference)
	fmt.Fprintln(w)
	fmt.Fprintln(w, summary.StripBold(r.Summary))
}
