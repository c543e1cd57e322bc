package bookstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"), nil)
	require.NoError(t, err, "new db")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_CreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.db")
	db, err := NewDatabase(path, nil)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)
}

func TestNewDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := NewDatabase(path, nil)
	require.NoError(t, err)
	_, err = db.AddBook(ctx, NewBook{Title: "Dune", Author: "Frank Herbert", Price: 999})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(path, nil)
	require.NoError(t, err)
	defer db.Close()

	books, err := db.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestNewDatabase_InMemory(t *testing.T) {
	db, err := NewDatabase(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.AddCustomer(ctx, NewCustomer{Name: "Alice"})
	require.NoError(t, err)

	customers, err := db.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestNewDatabase_RejectsUnknownScheme(t *testing.T) {
	_, err := NewDatabase("mysql://localhost/books", nil)
	require.Error(t, err)
}

func TestAddAndGetBook(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	b, err := db.AddBook(ctx, NewBook{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Price: 2499})
	require.NoError(t, err)
	assert.NotZero(t, b.ID)

	got, err := db.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, &Book{ID: b.ID, Title: "1984", Author: "George Orwell", Genre: "Dystopian", Price: 2499}, got)
	assert.Equal(t, 0, got.Availability)

	_, err = db.GetBook(ctx, b.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindBook_FirstMatchWins(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	first, err := db.AddBook(ctx, NewBook{Title: "Twin", Author: "A", Price: 100})
	require.NoError(t, err)
	_, err = db.AddBook(ctx, NewBook{Title: "Twin", Author: "B", Price: 200})
	require.NoError(t, err)

	got, err := db.FindBook(ctx, "Twin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	updated, err := db.UpdateBook(ctx, "Twin", BookUpdate{Author: "A2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	deleted, err := db.DeleteBook(ctx, "Twin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	left, err := db.FindBook(ctx, "Twin")
	require.NoError(t, err)
	assert.Equal(t, "B", left.Author)
}

func TestFindBook_ExactMatchOnly(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	_, err := db.AddBook(ctx, NewBook{Title: "Emma", Author: "Jane Austen", Price: 100})
	require.NoError(t, err)

	_, err = db.FindBook(ctx, "emma")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.FindBook(ctx, "Emm")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBook_NotFoundLeavesRows(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	_, err := db.AddBook(ctx, NewBook{Title: "Kept", Author: "Someone", Price: 500})
	require.NoError(t, err)

	_, err = db.UpdateBook(ctx, "Missing", BookUpdate{Title: "Changed"})
	require.ErrorIs(t, err, ErrNotFound)

	books, err := db.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Kept", books[0].Title)
}

func TestCreateOrder_InsertsSnapshotTotal(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	book, err := db.AddBook(ctx, NewBook{Title: "1984", Author: "George Orwell", Price: 2499})
	require.NoError(t, err)
	customer, err := db.AddCustomer(ctx, NewCustomer{Name: "Alice Johnson"})
	require.NoError(t, err)

	o, err := db.CreateOrder(ctx, "Alice Johnson", "1984", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, Cents(7497), o.TotalPrice)
	assert.Equal(t, book.ID, o.BookID)
	assert.Equal(t, customer.ID, o.CustomerID)

	// A later price change does not touch the stored total.
	_, err = db.UpdateBook(ctx, "1984", BookUpdate{Price: 9999})
	require.NoError(t, err)

	orders, err := db.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, Cents(7497), orders[0].TotalPrice)
	assert.Equal(t, "Alice Johnson", orders[0].CustomerName)
	assert.Equal(t, "1984", orders[0].BookTitle)
}

func TestCreateOrder_MissingReferenceWritesNothing(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	_, err := db.AddBook(ctx, NewBook{Title: "1984", Author: "George Orwell", Price: 2499})
	require.NoError(t, err)
	_, err = db.AddCustomer(ctx, NewCustomer{Name: "Alice Johnson"})
	require.NoError(t, err)

	cases := []struct {
		name     string
		customer string
		book     string
	}{
		{"unknown customer", "Nobody", "1984"},
		{"unknown book", "Alice Johnson", "Unwritten"},
		{"both unknown", "Nobody", "Unwritten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.CreateOrder(ctx, tc.customer, tc.book, 1)
			require.ErrorIs(t, err, ErrReferenceMissing)

			n, err := db.CountOrders(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestDeleteBook_RestrictedByOrders(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	_, err := db.AddBook(ctx, NewBook{Title: "Ordered", Author: "X", Price: 1000})
	require.NoError(t, err)
	_, err = db.AddCustomer(ctx, NewCustomer{Name: "Buyer"})
	require.NoError(t, err)
	_, err = db.CreateOrder(ctx, "Buyer", "Ordered", 1)
	require.NoError(t, err)

	_, err = db.DeleteBook(ctx, "Ordered")
	require.ErrorIs(t, err, ErrInUse)

	books, err := db.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestListOrders_Empty(t *testing.T) {
	db := tempDB(t)

	orders, err := db.ListOrders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := db.insertBook(ctx, tx, NewBook{Title: "Ghost", Author: "Nobody", Price: 1}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	books, err := db.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}
