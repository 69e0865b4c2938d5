package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/server"
)

var (
	serveAddr string
	serveEdit bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (VITRINE_ADDR)")
	serveCmd.Flags().BoolVar(&serveEdit, "edit", false, "Offer edit mode at /?edit=1 (VITRINE_EDIT)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and the edit API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		if cmd.Flags().Changed("edit") {
			cfg.Edit = serveEdit
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		j, err := openJournal()
		if err != nil {
			return err
		}
		if j != nil {
			defer func() { _ = j.Close() }()
		}

		opts := server.Options{Title: cfg.SiteTitle, AllowEdit: cfg.Edit, Logger: logger}
		if j != nil {
			opts.History = j
		}
		h := server.New(opts)

		srv, err := server.Listen(cfg.Addr, h)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://localhost:%d\n", location(), srv.Port())

		// The content is fetched once. Until then, and forever if the fetch
		// fails, the page shows the loading placeholder.
		go func() {
			doc, err := loadDocument(ctx, recorder(j))
			if err != nil {
				logger.Error("content unavailable", slog.String("source", location().String()), slog.Any("error", err))
				return
			}
			h.SetDocument(doc)
			logger.Info("content loaded", slog.String("source", location().String()), slog.String("session", doc.Session()))
		}()

		select {
		case <-ctx.Done():
		case err := <-srv.Err():
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
		}

		shutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}
