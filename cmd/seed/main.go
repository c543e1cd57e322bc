// Command seed fills a bookstore database with the sample books and
// customers. Each run adds another full set; pass --fresh to start from an
// empty SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bookstore-manager/bookstore"
	"bookstore-manager/logger"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run seeds the database named by args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	dsn := fs.String("db", bookstore.DefaultDSN, "database connection string")
	fresh := fs.Bool("fresh", false, "remove an existing SQLite database file before seeding")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := logger.New(logger.Config{Writer: stderr, Level: logger.ParseLevel(*logLevel)})

	if *fresh {
		if err := removeSQLiteFiles(*dsn, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	manager, err := bookstore.NewManager(*dsn, log.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening database: %v\n", err)
		return 1
	}
	defer manager.Close()

	res, err := manager.Seed(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "Error seeding database: %v\n", err)
		return 1
	}

	printSummary(stdout, res)
	return 0
}

// removeSQLiteFiles deletes the database file behind dsn along with its WAL
// side files. Server databases are refused.
func removeSQLiteFiles(dsn string, out io.Writer) error {
	path, err := bookstore.SQLitePath(dsn)
	if err != nil {
		return fmt.Errorf("--fresh: %w", err)
	}
	if path == "" {
		return nil
	}

	fmt.Fprintln(out, "Cleaning up existing database files...")
	for _, file := range []string{path, path + "-shm", path + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", file, err)
		}
	}
	return nil
}

func printSummary(out io.Writer, res bookstore.SeedResult) {
	fmt.Fprintf(out, "Sample data seeded successfully: %d books, %d customers.\n", len(res.Books), len(res.Customers))

	fmt.Fprintln(out, "\nBooks:")
	fmt.Fprintf(out, "%-4s %-30s %-22s %-15s %8s\n", "ID", "Title", "Author", "Genre", "Price")
	fmt.Fprintln(out, strings.Repeat("-", 83))
	for _, b := range res.Books {
		fmt.Fprintf(out, "%-4d %-30s %-22s %-15s %8s\n", b.ID, truncateString(b.Title, 30), truncateString(b.Author, 22), truncateString(b.Genre, 15), b.Price)
	}

	fmt.Fprintln(out, "\nCustomers:")
	fmt.Fprintf(out, "%-4s %-20s %-30s %s\n", "ID", "Name", "Contact", "Preferences")
	fmt.Fprintln(out, strings.Repeat("-", 83))
	for _, c := range res.Customers {
		fmt.Fprintf(out, "%-4d %-20s %-30s %s\n", c.ID, truncateString(c.Name, 20), truncateString(c.ContactDetails, 30), c.Preferences)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
