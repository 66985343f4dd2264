// Package cli implements the journal command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/journal"
	"github.com/mesh-intelligence/journal/internal/logging"
	journalpkg "github.com/mesh-intelligence/journal/pkg/journal"
)

// Exit codes. User-facing rejections (bad date, empty content, not found,
// duplicate) are reported and exit with exitSuccess.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// actionFlags are the mutually exclusive operations on the root command.
var actionFlags = []string{"add", "view", "edit", "delete", "list"}

// rootFlags holds flag values for one invocation.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
	noColor   bool

	add    string
	view   string
	edit   string
	delete string
	list   bool
	full   bool
}

// app carries the state of a single invocation. Nothing outlives Run.
type app struct {
	flags    rootFlags
	now      func() time.Time
	closeLog io.Closer
}

// exitError carries a fatal error and the process exit code for it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an unrecoverable I/O, parse or configuration failure.
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

const rootLong = `Journal keeps one dated text entry per day in a single file.

  --add <text>           Add today's entry
  --view <date>          View the entry for a date (YYYY-MM-DD)
  --edit <date> <text>   Replace the content of an entry
  --delete <date>        Delete an entry
  --list                 List all entries by date
  -h, --help             Display help
  -v, --version          Display the program version

The same operations are available as subcommands.`

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "journal",
		Short:   "A terminal journal with one entry per day",
		Long:    rootLong,
		Version: journalpkg.Version,
		Args:    a.rootArgs,
		RunE:    a.runRoot,
		// Errors are reported by Run.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite (default from config)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVar(&a.flags.verbose, "verbose", false, "log debug output")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	f := root.Flags()
	f.StringVar(&a.flags.add, "add", "", "add an entry for today")
	f.StringVar(&a.flags.view, "view", "", "view the entry for a date")
	f.StringVar(&a.flags.edit, "edit", "", "edit the entry for a date; the new text follows")
	f.StringVar(&a.flags.delete, "delete", "", "delete the entry for a date")
	f.BoolVar(&a.flags.list, "list", false, "list entries by date")
	f.BoolVar(&a.flags.full, "full", false, "with --view, print the whole entry")
	root.MarkFlagsMutuallyExclusive(actionFlags...)

	root.AddCommand(a.newAddCmd())
	root.AddCommand(a.newViewCmd())
	root.AddCommand(a.newEditCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// rootArgs accepts the text argument that follows --edit and nothing else.
func (a *app) rootArgs(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("edit") {
		return cobra.ExactArgs(1)(cmd, args)
	}
	return cobra.NoArgs(cmd, args)
}

// runRoot dispatches the flag form of each operation. With no action flag it
// prints usage and never touches the store.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	switch {
	case f.Changed("add"):
		return a.withHandler(cmd, func(h *handler) error { return h.add(a.flags.add) })
	case f.Changed("view"):
		return a.withHandler(cmd, func(h *handler) error { return h.view(a.flags.view, a.flags.full) })
	case f.Changed("edit"):
		return a.withHandler(cmd, func(h *handler) error { return h.edit(a.flags.edit, args[0]) })
	case f.Changed("delete"):
		return a.withHandler(cmd, func(h *handler) error { return h.remove(a.flags.delete) })
	case a.flags.list:
		return a.withHandler(cmd, func(h *handler) error { return h.list() })
	default:
		return cmd.Help()
	}
}

// withHandler loads settings, sets up logging and the store, then runs fn.
func (a *app) withHandler(cmd *cobra.Command, fn func(h *handler) error) error {
	s, err := loadSettings(&a.flags)
	if err != nil {
		return sysError(err)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   s.logLevel,
		Verbose: a.flags.verbose,
		File:    s.logFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return sysError(fmt.Errorf("set up logging: %w", err))
	}
	a.closeLog = closer
	logger.Debug("config loaded",
		"config_dir", s.configDir,
		"data_file", journalpkg.DataFile(s.store),
		"backend", s.store.Backend,
	)

	backend, err := journalpkg.NewBackend(s.store)
	if err != nil {
		return sysError(err)
	}

	h := &handler{
		store: journal.NewStore(backend, journal.WithLogger(logger)),
		out:           newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.flags.jsonMode, a.flags.noColor),
		previewLength: s.previewLength,
		now:           a.now,
	}
	return fn(h)
}

// Run executes the journal CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(args, stdout, stderr, time.Now)
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}

	a := &app{now: now}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.closeLog != nil {
		a.closeLog.Close()
	}
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		fatalColor := color.New(color.FgRed)
		if a.flags.noColor {
			fatalColor.DisableColor()
		}
		fatalColor.Fprintf(stderr, "Error: %v\n", ee.err)
		return ee.code
	}
	fmt.Fprintf(stderr, "Command not recognized: %v. Use -h or --help for help.\n", err)
	return exitUserError
}

// Execute runs the CLI with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
