package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentic-research/vitrine/internal/config"
	"github.com/agentic-research/vitrine/internal/editor"
	"github.com/agentic-research/vitrine/internal/journal"
	"github.com/agentic-research/vitrine/internal/source"
)

var version = "dev"

var (
	envFile     string
	rootDir     string
	contentFile string
	contentURL  string
	journalPath string

	cfg    *config.Config
	logger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Optional dotenv file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Content root directory (VITRINE_ROOT)")
	rootCmd.PersistentFlags().StringVarP(&contentFile, "content", "c", "", "Content file under the root (VITRINE_CONTENT)")
	rootCmd.PersistentFlags().StringVar(&contentURL, "url", "", "Fetch content from a URL instead (VITRINE_CONTENT_URL)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite edit journal (VITRINE_JOURNAL)")
}

var rootCmd = &cobra.Command{
	Use:           "vitrine",
	Short:         "Vitrine: a single-page site whose content is one editable JSON document",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(envFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("root") {
			c.Root = rootDir
		}
		if flags.Changed("content") {
			c.Content = contentFile
		}
		if flags.Changed("url") {
			c.ContentURL = contentURL
		}
		if flags.Changed("journal") {
			c.Journal = journalPath
		}
		cfg = c
		logger = c.Logger(cmd.ErrOrStderr())
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func location() source.Location {
	return source.Location{Root: cfg.Root, File: cfg.Content, URL: cfg.ContentURL}
}

// contentPath is the file edits are saved to. Content fetched from a URL
// has no file.
func contentPath() (string, error) {
	if cfg.ContentURL != "" {
		return "", errors.New("content comes from a URL; edits need a content file (--root/--content)")
	}
	return filepath.Join(cfg.Root, cfg.Content), nil
}

// journalFile resolves the journal path; relative paths live under the
// content root.
func journalFile() string {
	if cfg.Journal == "" || cfg.Journal == ":memory:" || filepath.IsAbs(cfg.Journal) {
		return cfg.Journal
	}
	return filepath.Join(cfg.Root, cfg.Journal)
}

func openJournal() (*journal.Journal, error) {
	path := journalFile()
	if path == "" {
		return nil, nil
	}
	j, err := journal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// recorder avoids handing the editor a typed nil.
func recorder(j *journal.Journal) editor.Recorder {
	if j == nil {
		return nil
	}
	return j
}

// loadDocument loads the content resource into a document. rec may be nil.
func loadDocument(ctx context.Context, rec editor.Recorder) (*editor.Document, error) {
	tree, err := source.Load(ctx, location(), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location(), err)
	}
	opts := []editor.Option{
		editor.WithLogger(logger),
		editor.WithScaffoldKeys(cfg.ScaffoldKeys...),
	}
	if rec != nil {
		opts = append(opts, editor.WithRecorder(rec))
	}
	return editor.New(tree, opts...), nil
}
