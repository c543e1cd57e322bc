package bookstore

import (
	"context"
	"database/sql"
)

// SampleBooks is the demo inventory inserted by Seed.
var SampleBooks = []NewBook{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction", Price: 1999},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction", Price: 2999},
	{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Price: 2499},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", Genre: "Coming-of-age", Price: 2299},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Price: 1899},
}

// SampleCustomers is the demo customer list inserted by Seed.
var SampleCustomers = []NewCustomer{
	{Name: "Alice Johnson", ContactDetails: "Email: alice@example.com", Preferences: "Sci-Fi"},
	{Name: "Bob Smith", ContactDetails: "Phone: 555-1234", Preferences: "Mystery"},
	{Name: "Charlie Brown", ContactDetails: "Email: charlie@example.com", Preferences: "Thriller"},
	{Name: "David Miller", ContactDetails: "Phone: 555-5678", Preferences: "Fantasy"},
	{Name: "Eve Wilson", ContactDetails: "Email: eve@example.com", Preferences: "Historical Fiction"},
}

// SeedResult reports what one Seed run inserted.
type SeedResult struct {
	Books     []*Book
	Customers []*Customer
}

// Seed inserts the sample books and customers in one transaction.
// It does not check for existing rows: every run adds another full set.
func (d *Database) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, nb := range SampleBooks {
			b, err := d.insertBook(ctx, tx, nb)
			if err != nil {
				return err
			}
			res.Books = append(res.Books, b)
		}
		for _, nc := range SampleCustomers {
			c, err := d.insertCustomer(ctx, tx, nc)
			if err != nil {
				return err
			}
			res.Customers = append(res.Customers, c)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

// Seed inserts the sample data set.
func (m *Manager) Seed(ctx context.Context) (SeedResult, error) {
	res, err := m.db.Seed(ctx)
	if err != nil {
		return res, err
	}
	m.log.Debug("sample data seeded", "books", len(res.Books), "customers", len(res.Customers))
	return res, nil
}
