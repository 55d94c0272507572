package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/matealv/recetario/internal/config"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/importer"
	"github.com/matealv/recetario/internal/mcp"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/ops"
	"github.com/matealv/recetario/internal/scrape"
	"github.com/matealv/recetario/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "recetario",
		Usage:   "Personal recipe bookmarks",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(db, cfg),
			mcpCmd(db, cfg),
			addCmd(db, cfg),
			importCmd(db, cfg),
			foldersCmd(db),
			reconcileCmd(db),
			pruneCmd(db),
		},
		// No subcommand (piped input) defaults to the web server.
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command %q\nRun 'recetario --help' for usage.", c.Args().First()), 1)
			}
			return runServe(db, cfg)
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newMediaStore builds the media store under the configured data dir.
func newMediaStore(cfg *config.Config) (*media.Store, error) {
	return media.NewStore(cfg.UploadDir(), cfg.ScrapeTimeout())
}

func runServe(db *sql.DB, cfg *config.Config) error {
	store, err := newMediaStore(cfg)
	if err != nil {
		return outputError(errors.NewInternal(err))
	}

	extractor := scrape.NewOpenGraph(cfg.ScrapeTimeout())
	srv := web.NewServer(db, cfg, extractor, store, Version)
	return web.Run(srv)
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Action: func(c *cli.Context) error {
			return runServe(db, cfg)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start the MCP server on stdio",
		Action: func(c *cli.Context) error {
			if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
				fmt.Fprintf(os.Stderr, "warning: unknown disabled tools: %v\n", unknown)
			}

			store, err := newMediaStore(cfg)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			extractor := scrape.NewOpenGraph(cfg.ScrapeTimeout())
			return mcp.Run(db, cfg, extractor, store, Version)
		},
	}
}

// addCmd creates the add command.
func addCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Save a recipe post by URL",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Title (derived from the post when omitted)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Folder (defaults to General)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("url argument is required"))
			}

			store, err := newMediaStore(cfg)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			extractor := scrape.NewOpenGraph(cfg.ScrapeTimeout())

			output, err := ops.Add(c.Context, db, extractor, store, ops.AddInput{
				URL:    c.Args().First(),
				Title:  c.String("title"),
				Folder: c.String("folder"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Bulk-import saved post dumps from a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Required: true, Usage: "Directory holding *.json dumps"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Target folder (defaults to General)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum posts to import (0 = all)"},
		},
		Action: func(c *cli.Context) error {
			store, err := newMediaStore(cfg)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := importer.Run(c.Context, db, store, importer.Input{
				Dir:    c.String("dir"),
				Folder: c.String("folder"),
				Limit:  c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// foldersCmd creates the folders command with its subcommands.
func foldersCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "Manage folders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all folders",
				Action: func(c *cli.Context) error {
					output, err := ops.Folders(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "create",
				Usage:     "Create a folder",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("name argument is required"))
					}
					output, err := ops.CreateFolder(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a folder, reassigning its recipes to Other",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("name argument is required"))
					}
					output, err := ops.DeleteFolder(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// reconcileCmd creates the reconcile command.
func reconcileCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "reconcile",
		Usage: "Create folder rows for labels referenced only by recipes",
		Action: func(c *cli.Context) error {
			output, err := ops.Reconcile(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pruneCmd creates the prune command.
func pruneCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Delete folders that no recipe references",
		Action: func(c *cli.Context) error {
			output, err := ops.Prune(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
