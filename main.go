package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"bookstore-manager/bookstore"
	"bookstore-manager/config"
	"bookstore-manager/logger"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs. The manager is opened in the
// root's PersistentPreRunE and closed by run once the command returns.
type app struct {
	cfg config.Config
	mgr *bookstore.Manager
	log *logger.Logger
	in  *bufio.Scanner
	out io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{cfg: config.Default()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.mgr != nil {
		if cerr := a.mgr.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookstore",
		Short:         "Bookstore Manager CLI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return a.open(cmd)
		},
	}
	a.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		a.addBookCmd(),
		a.listBooksCmd(),
		a.updateBookCmd(),
		a.deleteBookCmd(),
		a.addCustomerCmd(),
		a.listCustomersCmd(),
		a.updateCustomerCmd(),
		a.trackOrderCmd(),
		a.listOrdersCmd(),
		a.seedCmd(),
	)
	return root
}

// needsStore reports whether cmd works on the database. Cobra's built-in
// help and shell completion commands do not.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// open validates the configuration, builds the logger and opens the store.
func (a *app) open(cmd *cobra.Command) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Format: a.cfg.Logger.Format,
		Level:  logger.ParseLevel(a.cfg.Logger.Level),
	})
	a.in = bufio.NewScanner(cmd.InOrStdin())
	a.out = cmd.OutOrStdout()

	mgr, err := bookstore.NewManager(a.cfg.Database.DSN, a.log.Logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.mgr = mgr

	if a.cfg.Seed {
		if _, err := a.mgr.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintln(a.out, "Sample data seeded successfully.")
	}
	return nil
}
