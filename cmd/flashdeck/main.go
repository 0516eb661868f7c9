package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/mcp"
	"github.com/hpungsan/flashdeck/internal/storage"
	"github.com/hpungsan/flashdeck/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"list": true, "subjects": true, "groups": true,
	"add": true, "delete": true, "delete-all": true,
	"export": true, "import": true,
	"serve": true, "mcp": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   __ _           _         _           _
  / _| | __ _ ___| |__   __| | ___  ___| | __
 | |_| |/ _' / __| '_ \ / _' |/ _ \/ __| |/ /
 |  _| | (_| \__ \ | | | (_| |  __/ (__|   <
 |_| |_|\__,_|___/_| |_|\__,_|\___|\___|_|\_\

  Flashcards for study sessions

  Usage: flashdeck <command> [options]
         flashdeck serve        start the web UI
         flashdeck --help

  MCP server mode requires piped input.`)
}

// openStore opens the configured backend and loads the collection.
// The returned close function releases the backend.
func openStore(cfg *config.Config, baseDir string) (*store.Store, func() error, error) {
	var (
		adapter storage.Adapter
		closeFn = func() error { return nil }
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := storage.OpenSQLite(baseDir)
		if err != nil {
			return nil, nil, err
		}
		adapter, closeFn = db, db.Close
	default:
		if err := os.MkdirAll(baseDir, 0700); err != nil {
			return nil, nil, fmt.Errorf("create base directory: %w", err)
		}
		adapter = storage.NewJSONFile(cfg.DataPath(baseDir))
	}

	st, _, err := store.New(adapter)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return st, closeFn, nil
}

// loadConfig reads .env, the global and repo config files, and the environment.
func loadConfig() (*config.Config, string, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, "", err
	}

	baseDir, err := config.BaseDir()
	if err != nil {
		return nil, "", err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Printf("warning: unknown tools in disabled_tools: %v", unknown)
	}
	return cfg, baseDir, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before opening storage
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if !isCLIMode() && len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'flashdeck --help' for usage.\n")
		os.Exit(1)
	}

	cfg, baseDir, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	st, closeStore, err := openStore(cfg, baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open storage: %v\n", err)
		os.Exit(1)
	}

	if isCLIMode() {
		err = newCLIApp(st, cfg).Run(os.Args)
	} else {
		// MCP server mode (default)
		err = mcp.Run(st, cfg, Version)
	}

	if cerr := closeStore(); cerr != nil {
		log.Printf("warning: close storage: %v", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
