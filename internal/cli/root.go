// Package cli wires the mindmap command line: the map editor itself and a
// few scriptable subcommands sharing one configuration.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-mindmap/internal/app"
	"github.com/treykane/cli-mindmap/internal/clipboard"
	"github.com/treykane/cli-mindmap/internal/config"
	"github.com/treykane/cli-mindmap/internal/document"
	"github.com/treykane/cli-mindmap/internal/engine"
	"github.com/treykane/cli-mindmap/internal/logging"
	"github.com/treykane/cli-mindmap/internal/tree"
)

var cliLog = logging.New("cli")

// NewRootCmd builds the command tree. Without a subcommand it opens the
// interactive map editor.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mindmap [file]",
		Short:        "Keyboard-driven mind maps in the terminal",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Edit a map (created on first save)
  mindmap ideas.hmm

  # Start collapsed below the second level, centered layout
  mindmap -d 2 -a center ideas.hmm

  # Print the visible outline
  mindmap export ideas.hmm
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			e, err := openEngine(cfg, documentPath(cfg, args))
			if err != nil {
				return err
			}
			return runTUI(e, cfg)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// loadConfig layers the config file, environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	path, err := cmd.Flags().GetString(config.FlagConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v, path)
}

// documentPath picks the file argument, falling back to default_file.
func documentPath(cfg config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.DefaultFile
}

func codecFor(cfg config.Config) document.Codec {
	if cfg.Symbol1 == "" || cfg.Symbol2 == "" {
		return document.DefaultCodec
	}
	return document.Codec{Symbol1: cfg.Symbol1, Symbol2: cfg.Symbol2}
}

// opened is a document ready for editing.
type opened struct {
	tree *tree.Tree
	// path is where saves go. It is cleared when the file on disk could not
	// be parsed so it is never overwritten.
	path   string
	notice engine.Status
}

// loadDocument reads path for editing. A missing file starts a new map that
// saves to path; an unparseable one starts an empty map with an error
// notice. Other read failures are returned.
func loadDocument(codec document.Codec, path string) (opened, error) {
	if path == "" {
		return opened{}, nil
	}
	t, err := codec.Load(path)
	if err == nil {
		return opened{tree: t, path: path}, nil
	}
	var parseErr *document.ParseError
	switch {
	case errors.Is(err, os.ErrNotExist):
		cliLog.Debug("new document", "path", path)
		return opened{
			path:   path,
			notice: engine.Status{Text: "New file " + filepath.Base(path)},
		}, nil
	case errors.As(err, &parseErr):
		cliLog.Warn("unreadable document", "path", path, "error", err)
		return opened{
			notice: engine.Status{
				Text:  fmt.Sprintf("Cannot read %s (%s); it will not be overwritten", filepath.Base(path), parseErr.Reason),
				Error: true,
			},
		}, nil
	default:
		return opened{}, err
	}
}

// openEngine loads the document at path and builds the engine around it.
func openEngine(cfg config.Config, path string) (*engine.Engine, error) {
	doc, err := loadDocument(codecFor(cfg), path)
	if err != nil {
		return nil, err
	}
	e := engine.New(doc.tree, engine.Options{
		Style:             cfg.LayoutStyle(),
		MaxUndoSteps:      cfg.MaxUndoSteps,
		Clipboard:         clipboard.New(cfg.Clipboard),
		Path:              doc.path,
		PostExportCommand: cfg.PostExportCommand,
		AutoSave:          cfg.AutoSave,
		InitialDepth:      cfg.InitialDepth,
		CenterLock:        cfg.CenterLock,
		FocusLock:         cfg.FocusLock,
	})
	if doc.notice.Text != "" {
		e.Notify(doc.notice)
	}
	return e, nil
}

func runTUI(e *engine.Engine, cfg config.Config) error {
	p := tea.NewProgram(app.New(e, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run map editor: %w", err)
	}
	return nil
}
