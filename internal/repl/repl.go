// Package repl implements the interactive read-eval-print loop: meta
// commands (.exit, .tables, .data, .persist, .restore) and SQL
// statements dispatched through internal/sqlfront and internal/engine.
// Each statement's execution is wrapped in a panic recovery so that a
// fatal-tier storage panic (a bad INSERT, an Append parse failure)
// reports an error and moves on instead of taking down the session.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"coldb/internal/config"
	"coldb/internal/engine"
	"coldb/internal/query"
	"coldb/internal/render"
	"coldb/internal/snapshot"
	"coldb/internal/sqlfront"
)

// REPL owns the engine, SQL parser, output formatter, and the
// input/output streams it reads from and writes to.
type REPL struct {
	eng       *engine.Engine
	parser    *sqlfront.Parser
	formatter render.Formatter
	cfg       config.Config
	out       io.Writer
	errOut    io.Writer
}

// New builds a REPL over eng using cfg for the prompt. Results are
// rendered with the table formatter; if that formatter cannot be
// built, results are not printed.
func New(eng *engine.Engine, cfg config.Config, out, errOut io.Writer) *REPL {
	formatter, err := render.NewFormatter("table")
	if err != nil {
		formatter = nil
	}
	return &REPL{eng: eng, parser: sqlfront.NewParser(), formatter: formatter, cfg: cfg, out: out, errOut: errOut}
}

// Run reads lines from in until .exit, EOF, or a read error, printing
// the prompt before each line when prompt is non-empty.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if r.dispatch(line) {
			return nil
		}
	}
}

// dispatch handles one line of input and reports whether the REPL
// should stop (on .exit).
func (r *REPL) dispatch(line string) (stop bool) {
	if strings.HasPrefix(line, ".") {
		return r.handleMeta(parseMeta(line))
	}
	r.handleSQL(line)
	return false
}

func (r *REPL) handleMeta(cmd MetaCommand) (stop bool) {
	switch cmd.Kind {
	case MetaExit:
		return true
	case MetaListTables:
		r.printTables()
	case MetaPrintData:
		r.printData()
	case MetaPersist:
		if err := snapshot.SaveFile(cmd.Arg, r.eng.Database()); err != nil {
			fmt.Fprintf(r.errOut, "could not persist to %q: %v\n", cmd.Arg, err)
		}
	case MetaRestore:
		db, err := snapshot.LoadFile(cmd.Arg)
		if err != nil {
			fmt.Fprintf(r.errOut, "could not restore from %q: %v\n", cmd.Arg, err)
			return false
		}
		r.eng.SetDatabase(db)
	default:
		fmt.Fprintf(r.errOut, "unrecognized meta command %s\n", cmd.Raw)
	}
	return false
}

func (r *REPL) printTables() {
	names := r.eng.Database().TableNames()
	if len(names) == 0 {
		fmt.Fprintln(r.out, "No tables found")
		return
	}
	for _, name := range names {
		fmt.Fprintln(r.out, name)
	}
}

func (r *REPL) printData() {
	db := r.eng.Database()
	for _, name := range db.TableNames() {
		tbl, err := db.GetTable(name)
		if err != nil {
			continue
		}
		header := tbl.ColumnNames()
		rows, err := tbl.PlanAndExecute(query.SelectDescriptor{From: name, Projection: header})
		if err != nil {
			fmt.Fprintf(r.errOut, "could not read table %q: %v\n", name, err)
			continue
		}
		r.render(engine.Result{Header: header, Rows: rows})
	}
}

// handleSQL parses and executes one line of SQL, recovering from any
// panic a fatal-tier storage operation raises so a single bad
// statement can't kill the process.
func (r *REPL) handleSQL(line string) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(r.errOut, "statement failed: %v\n", rec)
		}
	}()

	statements, err := r.parser.Parse(line)
	if err != nil {
		fmt.Fprintf(r.errOut, "%v\n", err)
		return
	}

	for _, stmt := range statements {
		result, err := r.eng.Execute(stmt)
		if err != nil {
			fmt.Fprintf(r.errOut, "%v\n", err)
			continue
		}
		if len(result.Header) > 0 {
			r.render(result)
		}
	}
}

func (r *REPL) render(result engine.Result) {
	if r.formatter == nil {
		return
	}
	s, err := r.formatter.FormatResult(result)
	if err != nil {
		fmt.Fprintf(r.errOut, "could not render result: %v\n", err)
		return
	}
	fmt.Fprint(r.out, s)
}
