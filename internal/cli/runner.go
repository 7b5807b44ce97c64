package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/persist"
	"github.com/idilsaglam/tasklist/internal/state"
	"github.com/idilsaglam/tasklist/internal/store"
	"github.com/idilsaglam/tasklist/internal/store/backends"
	"github.com/idilsaglam/tasklist/internal/ui"
	"github.com/idilsaglam/tasklist/internal/widget"
)

// env is what every subcommand works against.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	kv     store.KV
	bridge *persist.Bridge
	c      *state.Container
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, cfg *config.Config, args []string) int {
	ui.SetTheme(cfg.Theme)

	cmd, a := "ui", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		if len(a) != 0 {
			ui.Fail("usage: tasklist ui")
			return 2
		}
		return withEnv(ctx, cfg, true, doUI)

	case "ls":
		return withEnv(ctx, cfg, false, doList)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: tasklist add <text...>")
			return 2
		}
		text := strings.Join(a, " ")
		return withEnv(ctx, cfg, false, func(ctx context.Context, e *env) int {
			return doAdd(ctx, e, text)
		})

	case "done", "rm":
		if len(a) != 1 {
			ui.Fail("usage: tasklist done <id|position>")
			return 2
		}
		return withEnv(ctx, cfg, false, func(ctx context.Context, e *env) int {
			return doDone(ctx, e, a[0])
		})

	case "draft":
		return withEnv(ctx, cfg, false, func(ctx context.Context, e *env) int {
			return doDraft(ctx, e, a)
		})
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Out, `tasklist - a tiny persistent to-do list

Usage:
  tasklist [flags] [subcommand] [args]

Subcommands:
  ui                    Interactive list (default)
  add <text...>         Add an item (text can be multiple words)
  ls                    List items and the saved draft
  done <id|position>    Remove an item by id or 1-based position
  draft [text...]       Show or replace the saved draft

Flags:
  -store file|memory|postgres|mysql   Storage backend (default file)
  -store-path <path>                  File backend path (default tasklist.json)
  -dsn <dsn>                          Connection string for sql backends
  -namespace <name>                   Prefix for stored keys (default tasklist)
  -reject-empty                       Refuse to add blank items
  -theme classic|neon|mono            Colors
  -log-level debug|info|warn|error    Log level
  -log-file <path>                    Write logs to a file
  -ephemeral                          Keep state in memory only

Examples:
  tasklist add "Buy milk"
  tasklist ls
  tasklist done 2
`)
}

// withEnv opens the logger, store and bridge, hydrates the container for
// one-shot commands, and closes everything afterwards.
func withEnv(ctx context.Context, cfg *config.Config, interactive bool, fn func(context.Context, *env) int) int {
	// The widget owns the terminal; without a log file its logs are dropped.
	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if !interactive {
		opts.Fallback = os.Stderr
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		ui.Fail("log: " + err.Error())
		return 1
	}
	defer closeLog()
	for _, f := range cfg.Files {
		logger.Debug("config file", "path", f)
	}

	kv, err := backends.Open(ctx, backends.Options{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		DSN:     cfg.Store.DSN,
		Table:   cfg.Store.Table,
	})
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	e := &env{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		bridge: persist.New(kv, persist.WithNamespace(cfg.Namespace), persist.WithLogger(logger)),
		c:      state.New(state.RejectEmpty(cfg.RejectEmpty)),
	}
	if !interactive {
		if err := e.bridge.Hydrate(ctx, e.c); err != nil {
			ui.Fail("load: " + err.Error())
			return 1
		}
	}
	return fn(ctx, e)
}

// -------------- subcommand impls ----------------

func doUI(ctx context.Context, e *env) int {
	err := widget.Run(ctx, e.c, e.bridge, widget.RunOptions{
		Logger:    e.logger,
		AltScreen: true,
	})
	if err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func doList(_ context.Context, e *env) int {
	items := e.c.Items()
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d",
		t.Title.Render("Todos"),
		t.Accent.Render("Total"), len(items),
	)
	lines := []string{header, ""}
	if len(items) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	}
	for i, it := range items {
		value := it.Value
		if value == "" {
			value = t.Muted.Render("(empty)")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Pending.Render(t.SymItem),
			ui.Truncate(value, 72),
			t.Muted.Render(ui.ShortID(it.ID)),
		))
	}
	if d := e.c.Input(); d != "" {
		lines = append(lines, "", t.Accent.Render("draft: ")+ui.Truncate(d, 72))
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `tasklist add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(ctx context.Context, e *env, text string) int {
	// The saved draft is the interactive input; a one-shot add must not
	// clobber it.
	draft := e.c.Input()
	e.c.SetInput(text)
	it, err := e.c.AddItem()
	if err != nil {
		e.c.SetInput(draft)
		if errors.Is(err, state.ErrEmptyItem) {
			ui.Fail("add: empty item")
			return 2
		}
		ui.Fail("add: " + err.Error())
		return 1
	}
	e.c.SetInput(draft)
	e.logger.Debug("item added", "id", it.ID)
	if err := e.bridge.Persist(ctx, e.c); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("added " + it.ID)
	return 0
}

func doDone(ctx context.Context, e *env, ref string) int {
	it, ok := e.c.Lookup(ref)
	if !ok {
		ui.Note(fmt.Sprintf("no item matches %q (have %d); nothing changed", ref, e.c.Len()))
		return 0
	}
	e.c.DeleteItem(it.ID)
	if err := e.bridge.Persist(ctx, e.c); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("done: " + ui.Truncate(it.Value, 60))
	return 0
}

func doDraft(ctx context.Context, e *env, a []string) int {
	if len(a) == 0 {
		fmt.Fprintln(ui.Out, e.c.Input())
		return 0
	}
	e.c.SetInput(strings.Join(a, " "))
	if err := e.bridge.Persist(ctx, e.c); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("draft saved")
	return 0
}
