package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/mcp"
	"github.com/hpungsan/flashdeck/internal/ops"
	"github.com/hpungsan/flashdeck/internal/store"
	"github.com/hpungsan/flashdeck/internal/web"
)

// maxStdinBytes bounds the answer text read from stdin by add.
const maxStdinBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "flashdeck",
		Usage:   "Flashcards for study sessions",
		Version: Version,
		Commands: []*cli.Command{
			listCmd(st),
			subjectsCmd(st),
			groupsCmd(st),
			addCmd(st),
			deleteCmd(st),
			deleteAllCmd(st),
			exportCmd(st, cfg),
			importCmd(st, cfg),
			serveCmd(st, cfg),
			mcpCmd(st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List flashcards, optionally filtered by subject and search text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: "Subject to filter by (default: All)"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Case-insensitive text to match in front or back"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(st, ops.ListInput{
				Subject: c.String("subject"),
				Search:  c.String("search"),
				Limit:   c.Int("limit"),
				Offset:  c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// subjectsCmd creates the subjects command.
func subjectsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "subjects",
		Usage: "List distinct subjects with flashcard counts",
		Action: func(c *cli.Context) error {
			output, err := ops.Subjects(st)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// groupsCmd creates the groups command.
func groupsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "Show flashcards grouped by subject",
		Action: func(c *cli.Context) error {
			output, err := ops.Groups(st)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// addCmd creates the add command.
func addCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Append a flashcard (reads the back from stdin when --back is omitted)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: "Subject label"},
			&cli.StringFlag{Name: "front", Aliases: []string{"f"}, Usage: "Question side"},
			&cli.StringFlag{Name: "back", Aliases: []string{"b"}, Usage: "Answer side (markdown and TeX allowed)"},
		},
		Action: func(c *cli.Context) error {
			back := c.String("back")
			if !c.IsSet("back") && stdinHasData() {
				text, err := readStdin(maxStdinBytes)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				back = text
			}

			output, err := ops.Create(st, ops.CreateInput{
				Subject: c.String("subject"),
				Front:   c.String("front"),
				Back:    back,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete the flashcard at a collection position (see list)",
		ArgsUsage: "<position>",
		Action: func(c *cli.Context) error {
			position, err := ops.ParsePosition(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Delete(st, ops.DeleteInput{Position: position})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteAllCmd creates the delete-all command.
func deleteAllCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "delete-all",
		Usage: "Delete every flashcard",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "confirm", Usage: "Required; confirms the deletion"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.DeleteAll(st, ops.DeleteAllInput{Confirm: c.Bool("confirm")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the collection to a JSON or YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.flashdeck/exports/flashcards-<timestamp>.<format>)"},
			&cli.StringFlag{Name: "format", Usage: "json|yaml (default: from path, else json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(st, cfg, ops.ExportInput{
				Path:   c.String("path"),
				Format: c.String("format"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import flashcards from a JSON or YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "format", Usage: "json|yaml (default: from path, else json)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(ops.ImportModeAppend), Usage: "append|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(st, cfg, ops.ImportInput{
				Path:   c.String("path"),
				Format: c.String("format"),
				Mode:   ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to listen on (default from config: 127.0.0.1)"},
			&cli.IntFlag{Name: "port", Usage: "Port to listen on (default from config: 8501)"},
		},
		Action: func(c *cli.Context) error {
			bind, port := cfg.Bind, cfg.Port
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			if c.IsSet("port") {
				port = c.Int("port")
			}
			if port < 1 || port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("port out of range: %d", port)))
			}

			return web.Run(web.NewServer(st, cfg, Version, bind, port))
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP tools over stdio",
		Action: func(c *cli.Context) error {
			return mcp.Run(st, cfg, Version)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if dErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", dErr.Code, dErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most maxBytes from stdin, trimmed.
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxBytes)
	}
	return strings.TrimSpace(string(data)), nil
}
