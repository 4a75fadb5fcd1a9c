package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/adapters/git"
	"github.com/kezou/pacer/internal/adapters/tui"
	"github.com/kezou/pacer/internal/config"
	"github.com/kezou/pacer/internal/dispatch"
	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/render"
)

var (
	readGitDir  string
	readGitRev  string
	readGitPath string
	readLibrary string
	readWPM     int
)

// welcomeText is loaded on the very first run so the reader is not empty.
const welcomeText = `Welcome to pacer. Words appear here one at a time, at a pace you control. ` +
	`Press space to start and stop. Use left and right to step, up and down to change speed. ` +
	`Press e to paste your own text, m for the library and the sleep timer, ` +
	`p for the focus timer, and ? to see every key binding.`

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Open the reading interface",
	Long: `Open the fullscreen reader. Text comes from a file argument, piped
stdin, a library document (--library), or a file in git history
(--path with optional --git and --rev). With no input the reader opens
empty; press e to paste text or m to browse the library.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVar(&readGitDir, "git", "", "Directory inside the git repository to read from (default: current directory)")
	readCmd.Flags().StringVar(&readGitRev, "rev", "", "Git revision to read the file at (default: HEAD)")
	readCmd.Flags().StringVar(&readGitPath, "path", "", "Path of a file in git history to read")
	readCmd.Flags().StringVarP(&readLibrary, "library", "l", "", "Open a library document by ID or title")
	readCmd.Flags().IntVar(&readWPM, "wpm", 0, "Words per minute for this run (overrides config)")
}

func runRead(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	text, input, err := resolveReadText(ctx, args)
	if err != nil {
		return err
	}

	if readWPM > 0 {
		app.engine.SetRate(readWPM)
	}

	app.engine.Start()
	defer app.engine.Stop()

	dispatcher := dispatch.NewDispatcher(dispatch.FromMap(app.config.Bindings))
	reader := tui.NewReader(tui.Options{
		Engine:     app.engine,
		Dispatcher: dispatcher,
		Settings:   app.config.ToDisplaySettings(),
		Text:       text,
		Callbacks:  readerCallbacks(ctx),
		Input:      input,
	})

	if err := reader.Run(ctx); err != nil {
		return err
	}

	// Persist the cursor so a library document resumes where it stopped.
	if err := app.reader.SaveCurrentPosition(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save position: %v\n", err)
	}

	return nil
}

// resolveReadText loads the requested document into the engine and
// returns the raw text. The second return value is a replacement key
// input for the TUI, set only when stdin was consumed by a pipe.
func resolveReadText(ctx context.Context, args []string) (string, io.Reader, error) {
	switch {
	case readLibrary != "":
		doc, err := app.reader.LoadDocument(ctx, readLibrary)
		if err != nil {
			return "", nil, fmt.Errorf("failed to open library document: %w", err)
		}
		return doc.Body, nil, nil

	case readGitPath != "":
		blob, err := app.git.Fetch(ctx, readGitDir, readGitRev, readGitPath)
		if err != nil {
			return "", nil, err
		}
		if err := app.reader.LoadText(blob.Content); err != nil {
			return "", nil, fmt.Errorf("%s is empty at %s", blob.Path, git.GetShortCommit(blob.Revision))
		}
		return blob.Content, nil, nil

	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if err := app.reader.LoadText(string(data)); err != nil {
			return "", nil, fmt.Errorf("%s contains no readable words", args[0])
		}
		return string(data), nil, nil

	case len(args) == 1 || !term.IsTerminal(os.Stdin.Fd()):
		// explicit "-" or piped stdin
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if err := app.reader.LoadText(string(data)); err != nil {
			return "", nil, fmt.Errorf("stdin contains no readable words")
		}
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return "", nil, fmt.Errorf("cannot read keys after piped input: %w", err)
		}
		return string(data), tty, nil

	default:
		if app.config.FirstRun {
			app.config.FirstRun = false
			if err := config.Save(app.config); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
			}
			if err := app.reader.LoadText(welcomeText); err == nil {
				return welcomeText, nil, nil
			}
		}
		return "", nil, nil
	}
}

// readerCallbacks wires the TUI surfaces to the service layer.
func readerCallbacks(ctx context.Context) tui.Callbacks {
	return tui.Callbacks{
		FetchDocuments: func() ([]*domain.Document, error) {
			return app.library.ListDocuments(ctx)
		},
		OpenDocument: func(doc *domain.Document) error {
			_, err := app.reader.LoadDocument(ctx, doc.ID)
			return err
		},
		FetchStats: func() (*domain.PeriodStats, []*domain.ReadingSession, error) {
			period, err := app.stats.Period(ctx, 7)
			if err != nil {
				return nil, nil, err
			}
			sessions, err := app.stats.RecentSessions(ctx, 5)
			if err != nil {
				return nil, nil, err
			}
			return period, sessions, nil
		},
		SaveBindings: func(bindings dispatch.Map) error {
			app.config.Bindings = bindings.ToMap()
			return config.Save(app.config)
		},
		SaveSettings: func(settings render.Settings) error {
			app.config.ApplyDisplaySettings(settings)
			return config.Save(app.config)
		},
	}
}
