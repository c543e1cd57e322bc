package bookstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Database provides high-level helpers around a relational connection.
// Every exported mutation runs as one transaction.
type Database struct {
	db      *sql.DB
	dialect dialect
	log     *slog.Logger

	addBookStmt     *sql.Stmt
	addCustomerStmt *sql.Stmt
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewDatabase opens (or creates) the store behind dsn, applies the schema,
// and prepares common statements.
func NewDatabase(dsn string, log *slog.Logger) (*Database, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	d, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if d.driver == sqliteDialect.driver {
		// Ensure directory exists so first-run succeeds.
		if path := sqlitePath(source); path != "" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("create db dir: %w", err)
				}
			}
		}
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if d.driver == sqliteDialect.driver {
		// One session at a time; also keeps :memory: databases on one connection.
		db.SetMaxOpenConns(1)
	}

	database := &Database{db: db, dialect: d, log: log}
	if err := database.applySchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.addBookStmt != nil {
		d.addBookStmt.Close()
	}
	if d.addCustomerStmt != nil {
		d.addCustomerStmt.Close()
	}
	return d.db.Close()
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back on any error or panic.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

const schemaVersion = 1

func (d *Database) applySchema() error {
	for _, pragma := range d.dialect.pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	ctx := context.Background()
	return d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range d.dialect.schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx, d.q(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`), strconv.Itoa(schemaVersion))
		if err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		d.log.Debug("schema applied", "driver", d.dialect.driver, "version", schemaVersion)
		return nil
	})
}

// SchemaVersion reports the version recorded in the meta table.
func (d *Database) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := d.db.QueryRowContext(ctx, d.q(`SELECT value FROM meta WHERE key=?`), "schema_version").Scan(&v)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addBookStmt, err = d.db.Prepare(d.q(`INSERT INTO books(title,author,genre,price) VALUES(?,?,?,?) RETURNING id`)); err != nil {
		return fmt.Errorf("prepare add book: %w", err)
	}
	if d.addCustomerStmt, err = d.db.Prepare(d.q(`INSERT INTO customers(name,contact_details,preferences) VALUES(?,?,?) RETURNING id`)); err != nil {
		return fmt.Errorf("prepare add customer: %w", err)
	}
	return nil
}

func (d *Database) q(query string) string { return d.dialect.rebind(query) }

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

const bookColumns = `id,title,author,COALESCE(genre,''),price,availability`

func scanBook(scanner interface{ Scan(dest ...any) error }) (*Book, error) {
	var b Book
	if err := scanner.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Availability); err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *Database) insertBook(ctx context.Context, tx *sql.Tx, nb NewBook) (*Book, error) {
	var id int64
	err := tx.StmtContext(ctx, d.addBookStmt).
		QueryRowContext(ctx, nb.Title, nb.Author, nb.Genre, int64(nb.Price)).
		Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return &Book{ID: id, Title: nb.Title, Author: nb.Author, Genre: nb.Genre, Price: nb.Price}, nil
}

// AddBook inserts a new book.
func (d *Database) AddBook(ctx context.Context, nb NewBook) (*Book, error) {
	var b *Book
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = d.insertBook(ctx, tx, nb)
		return err
	})
	return b, err
}

// findBookByTitle returns the first book, in insertion order, with the
// exact title. It returns sql.ErrNoRows when none matches.
func (d *Database) findBookByTitle(ctx context.Context, q queryer, title string) (*Book, error) {
	row := q.QueryRowContext(ctx, d.q(`SELECT `+bookColumns+` FROM books WHERE title=? ORDER BY id LIMIT 1`), title)
	return scanBook(row)
}

// GetBook fetches a book by id.
func (d *Database) GetBook(ctx context.Context, id int64) (*Book, error) {
	b, err := scanBook(d.db.QueryRowContext(ctx, d.q(`SELECT `+bookColumns+` FROM books WHERE id=?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return b, err
}

// FindBook fetches the first book with the given title.
func (d *Database) FindBook(ctx context.Context, title string) (*Book, error) {
	b, err := d.findBookByTitle(ctx, d.db, title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %q: %w", title, ErrNotFound)
	}
	return b, err
}

// ListBooks returns every book ordered by id.
func (d *Database) ListBooks(ctx context.Context) ([]*Book, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// UpdateBook applies u to the first book titled title and returns the
// updated row.
func (d *Database) UpdateBook(ctx context.Context, title string, u BookUpdate) (*Book, error) {
	var b *Book
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = d.findBookByTitle(ctx, tx, title)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("book %q: %w", title, ErrNotFound)
		}
		if err != nil {
			return err
		}

		u.apply(b)
		_, err = tx.ExecContext(ctx, d.q(`UPDATE books SET title=?, author=?, genre=?, price=? WHERE id=?`),
			b.Title, b.Author, b.Genre, int64(b.Price), b.ID)
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook removes the first book titled title and returns it.
// Books that orders still reference are kept and ErrInUse is returned.
func (d *Database) DeleteBook(ctx context.Context, title string) (*Book, error) {
	var b *Book
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = d.findBookByTitle(ctx, tx, title)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("book %q: %w", title, ErrNotFound)
		}
		if err != nil {
			return err
		}

		var referenced bool
		if err := tx.QueryRowContext(ctx, d.q(`SELECT EXISTS(SELECT 1 FROM orders WHERE book_id=?)`), b.ID).Scan(&referenced); err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("book %q: %w", title, ErrInUse)
		}

		if _, err := tx.ExecContext(ctx, d.q(`DELETE FROM books WHERE id=?`), b.ID); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

const customerColumns = `id,name,COALESCE(contact_details,''),COALESCE(preferences,'')`

func scanCustomer(scanner interface{ Scan(dest ...any) error }) (*Customer, error) {
	var c Customer
	if err := scanner.Scan(&c.ID, &c.Name, &c.ContactDetails, &c.Preferences); err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *Database) insertCustomer(ctx context.Context, tx *sql.Tx, nc NewCustomer) (*Customer, error) {
	var id int64
	err := tx.StmtContext(ctx, d.addCustomerStmt).
		QueryRowContext(ctx, nc.Name, nc.ContactDetails, nc.Preferences).
		Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &Customer{ID: id, Name: nc.Name, ContactDetails: nc.ContactDetails, Preferences: nc.Preferences}, nil
}

// AddCustomer inserts a new customer.
func (d *Database) AddCustomer(ctx context.Context, nc NewCustomer) (*Customer, error) {
	var c *Customer
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = d.insertCustomer(ctx, tx, nc)
		return err
	})
	return c, err
}

func (d *Database) findCustomerByName(ctx context.Context, q queryer, name string) (*Customer, error) {
	row := q.QueryRowContext(ctx, d.q(`SELECT `+customerColumns+` FROM customers WHERE name=? ORDER BY id LIMIT 1`), name)
	return scanCustomer(row)
}

// FindCustomer fetches the first customer with the given name.
func (d *Database) FindCustomer(ctx context.Context, name string) (*Customer, error) {
	c, err := d.findCustomerByName(ctx, d.db, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %q: %w", name, ErrNotFound)
	}
	return c, err
}

// ListCustomers returns every customer ordered by id.
func (d *Database) ListCustomers(ctx context.Context) ([]*Customer, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer applies u to the first customer called name.
func (d *Database) UpdateCustomer(ctx context.Context, name string, u CustomerUpdate) (*Customer, error) {
	var c *Customer
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = d.findCustomerByName(ctx, tx, name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("customer %q: %w", name, ErrNotFound)
		}
		if err != nil {
			return err
		}

		u.apply(c)
		_, err = tx.ExecContext(ctx, d.q(`UPDATE customers SET name=?, contact_details=?, preferences=? WHERE id=?`),
			c.Name, c.ContactDetails, c.Preferences, c.ID)
		if err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// CreateOrder resolves the customer and book and records an order whose
// total is quantity × the book's current price. Both lookups and the insert
// share one transaction.
func (d *Database) CreateOrder(ctx context.Context, customerName, bookTitle string, quantity int) (*OrderView, error) {
	var o *OrderView
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		customer, err := d.findCustomerByName(ctx, tx, customerName)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		book, err := d.findBookByTitle(ctx, tx, bookTitle)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if customer == nil || book == nil {
			return fmt.Errorf("customer %q, book %q: %w", customerName, bookTitle, ErrReferenceMissing)
		}

		total, err := book.Price.Times(quantity)
		if err != nil {
			return err
		}
		var id int64
		err = tx.QueryRowContext(ctx,
			d.q(`INSERT INTO orders(quantity,total_price,book_id,customer_id) VALUES(?,?,?,?) RETURNING id`),
			quantity, int64(total), book.ID, customer.ID).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		o = &OrderView{
			Order: Order{
				ID:         id,
				Quantity:   quantity,
				TotalPrice: total,
				BookID:     book.ID,
				CustomerID: customer.ID,
			},
			CustomerName: customer.Name,
			BookTitle:    book.Title,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns every order with its customer name and book title.
// Rows whose customer or book is gone report empty names.
func (d *Database) ListOrders(ctx context.Context) ([]*OrderView, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT o.id, o.quantity, o.total_price, o.book_id, o.customer_id,
               COALESCE(c.name,''), COALESCE(b.title,'')
        FROM orders o
        LEFT JOIN customers c ON c.id = o.customer_id
        LEFT JOIN books b ON b.id = o.book_id
        ORDER BY o.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*OrderView{}
	for rows.Next() {
		var o OrderView
		if err := rows.Scan(&o.ID, &o.Quantity, &o.TotalPrice, &o.BookID, &o.CustomerID, &o.CustomerName, &o.BookTitle); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// CountOrders returns the number of order rows.
func (d *Database) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
