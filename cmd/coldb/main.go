// Package main contains the coldb command-line tool: a cobra root
// command with a small set of subcommands, each parsing its own flags
// into a struct.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"coldb/internal/config"
	"coldb/internal/engine"
	"coldb/internal/render"
	"coldb/internal/repl"
	"coldb/internal/snapshot"
	"coldb/internal/sqlfront"
)

type replFlags struct {
	configPath   string
	snapshotPath string
}

type execFlags struct {
	format       string
	snapshotPath string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "coldb",
		Short: "In-memory column-oriented SQL engine",
	}

	rootCmd.AddCommand(replCmd())
	rootCmd.AddCommand(execCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func replCmd() *cobra.Command {
	flags := &replFlags{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepl(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML startup config")
	cmd.Flags().StringVarP(&flags.snapshotPath, "restore", "r", "", "Snapshot file to restore from on startup")
	return cmd
}

func runRepl(flags *replFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.LoadFile(flags.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	eng := engine.New(nil)
	if flags.snapshotPath != "" {
		db, err := snapshot.LoadFile(flags.snapshotPath)
		if err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}
		eng.SetDatabase(db)
	}

	session := repl.New(eng, cfg, os.Stdout, os.Stderr)
	return session.Run(os.Stdin)
}

func execCmd() *cobra.Command {
	flags := &execFlags{}
	cmd := &cobra.Command{
		Use:   "exec <file.sql>...",
		Short: "Execute one or more SQL files against a fresh database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExec(args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "table", "Output format for SELECT results: table or json")
	cmd.Flags().StringVarP(&flags.snapshotPath, "save", "o", "", "Snapshot file to persist the database to after execution")
	return cmd
}

// parseResult carries one file's outcome back from its goroutine.
type parseResult struct {
	path string
	text string
	err  error
}

// readFilesConcurrently reads every path in its own goroutine and
// returns the contents in argument order.
func readFilesConcurrently(paths []string) ([]string, error) {
	chans := make([]chan parseResult, len(paths))
	for i, path := range paths {
		ch := make(chan parseResult, 1)
		chans[i] = ch
		go func(path string, ch chan parseResult) {
			data, err := os.ReadFile(path)
			if err != nil {
				ch <- parseResult{path: path, err: fmt.Errorf("failed to read %s: %w", path, err)}
				return
			}
			ch <- parseResult{path: path, text: string(data)}
		}(path, ch)
	}

	texts := make([]string, len(paths))
	for i, ch := range chans {
		result := <-ch
		if result.err != nil {
			return nil, result.err
		}
		texts[i] = result.text
	}
	return texts, nil
}

func runExec(paths []string, flags *execFlags) error {
	texts, err := readFilesConcurrently(paths)
	if err != nil {
		return err
	}

	formatter, err := render.NewFormatter(flags.format)
	if err != nil {
		return err
	}

	eng := engine.New(nil)
	parser := sqlfront.NewParser()

	for i, text := range texts {
		statements, err := parser.Parse(text)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", paths[i], err)
		}
		for _, stmt := range statements {
			result, err := eng.Execute(stmt)
			if err != nil {
				return fmt.Errorf("failed to execute statement from %s: %w", paths[i], err)
			}
			if len(result.Header) > 0 {
				if err := writeResult(os.Stdout, formatter, result); err != nil {
					return err
				}
			}
		}
	}

	if flags.snapshotPath != "" {
		if err := snapshot.SaveFile(flags.snapshotPath, eng.Database()); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	return nil
}

func writeResult(w io.Writer, formatter render.Formatter, result engine.Result) error {
	s, err := formatter.FormatResult(result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = fmt.Fprint(w, s)
	return err
}
