package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/tinywasm/ftsearch"
	"github.com/tinywasm/ftsearch/internal/config"
	"github.com/tinywasm/ftsearch/mysql"
	"github.com/tinywasm/ftsearch/orm"
	"github.com/tinywasm/ftsearch/sqlexec"
)

// app carries what every subcommand needs after config is loaded.
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
	models     models
	out        io.Writer
	// dial opens the executor behind search and count.
	dial func(driver, dsn string) (orm.Executor, error)
}

type searchFlags struct {
	mode   string
	fields []string
	limit  int
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{
		out: os.Stdout,
		dial: func(driver, dsn string) (orm.Executor, error) {
			return sqlexec.Open(driver, dsn)
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ftsearch",
		Short:         "MySQL/MariaDB full-text search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.models = newModels(cfg)
			a.out = cmd.OutOrStdout()
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./ftsearch.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log generated predicates to stderr")

	root.AddCommand(
		a.searchCmd(),
		a.countCmd(),
		a.explainCmd(),
		a.indexCmd(),
	)
	return root
}

// addSearchFlags registers the flags shared by search, count and explain.
// count leaves out --limit.
func addSearchFlags(cmd *cobra.Command, f *searchFlags, withLimit bool) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "auto, default, natural language, boolean, query expansion")
	cmd.Flags().StringSliceVarP(&f.fields, "field", "f", nil, "search field, repeatable (default search.fields)")
	if withLimit {
		cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "maximum rows (default search.limit)")
	}
}

func (a *app) searchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Print rows matching QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			q, err := a.search(db, args[0], f, true)
			if err != nil {
				return err
			}
			table := a.cfg.Search.Table
			return q.ReadAll(
				func() orm.Model { return a.models.newRow(table) },
				func(m orm.Model) { printRow(a.out, m.(*row), q.Related()) },
			)
		},
	}
	addSearchFlags(cmd, &f, true)
	return cmd
}

func (a *app) countCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "count QUERY",
		Short: "Print the number of rows matching QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			q, err := a.search(db, args[0], f, false)
			if err != nil {
				return err
			}
			n, err := q.Count()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, n)
			return nil
		},
	}
	addSearchFlags(cmd, &f, false)
	return cmd
}

func (a *app) explainCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "explain QUERY",
		Short: "Print the SQL a search would run, without connecting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.search(a.offlineDB(), args[0], f, true)
			if err != nil {
				return err
			}
			stmt, params, err := q.SQL()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "mode: %s\n%s\n", q.Mode(), stmt)
			for i, p := range params {
				fmt.Fprintf(a.out, "  ? #%d = %q\n", i+1, fmt.Sprint(p))
			}
			return nil
		},
	}
	addSearchFlags(cmd, &f, true)
	return cmd
}

func (a *app) indexCmd() *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Print FULLTEXT index DDL for the search fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := fields
			if len(selected) == 0 {
				selected = a.cfg.Search.Fields
			}
			db := a.offlineDB()
			model := a.models.newRow(a.cfg.Search.Table)
			selected = ftsearch.NewManager(db, model, selected...).Fields()
			stmts, err := ftsearch.IndexDDL(db, model, selected)
			if err != nil {
				return err
			}
			for _, s := range stmts {
				fmt.Fprintln(a.out, s+";")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "search field, repeatable (default search.fields, then fulltext columns)")
	return cmd
}

// search builds the configured search on db. Unless limited is set the
// query is unbounded, so counts cover every match.
func (a *app) search(db *orm.DB, text string, f searchFlags, limited bool) (*ftsearch.Query, error) {
	modeName := f.mode
	if modeName == "" {
		modeName = a.cfg.Search.Mode
	}
	mode, err := ftsearch.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	mgr := ftsearch.NewManager(db, a.models.newRow(a.cfg.Search.Table), a.cfg.Search.Fields...)
	if a.verbose {
		mgr.SetLog(func(messages ...any) {
			fmt.Fprintln(os.Stderr, messages...)
		})
	}

	q, err := mgr.Search(text, mode, f.fields...)
	if err != nil {
		return nil, err
	}
	if !limited {
		return q, nil
	}
	limit := f.limit
	if limit == 0 {
		limit = a.cfg.Search.Limit
	}
	if limit > 0 {
		q.Limit(limit)
	}
	return q, nil
}

func (a *app) openDB() (*orm.DB, error) {
	exec, err := a.dial(a.cfg.Driver, a.dsn())
	if err != nil {
		return nil, err
	}
	return orm.New(exec, mysql.New()).Register(a.models.all()...), nil
}

// offlineDB compiles statements only; it has no executor.
func (a *app) offlineDB() *orm.DB {
	return orm.New(nil, mysql.New()).Register(a.models.all()...)
}

// dsn returns the configured DSN, or one built from the database section.
func (a *app) dsn() string {
	if a.cfg.DSN != "" {
		return a.cfg.DSN
	}
	d := a.cfg.Database
	c := mysqldriver.NewConfig()
	c.User = d.User
	c.Passwd = d.Password
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	c.DBName = d.Name
	return c.FormatDSN()
}

// printRow writes the row's values, then each eager-loaded relation's,
// tab separated.
func printRow(w io.Writer, r *row, related []string) {
	cells := make([]string, 0, len(r.vals))
	for _, v := range r.vals {
		cells = append(cells, cell(v))
	}
	for _, rel := range related {
		if rr, ok := r.related[rel]; ok {
			for _, v := range rr.vals {
				cells = append(cells, cell(v))
			}
		}
	}
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}
