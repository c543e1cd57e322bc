package bookstore

import (
	"context"
	"errors"
	"log/slog"
)

// Manager is a thin façade over the Database that validates input and logs
// each outcome, keeping CLI code simple.
type Manager struct {
	db  *Database
	log *slog.Logger
}

// NewManager opens (or creates) the store behind dsn.
func NewManager(dsn string, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	db, err := NewDatabase(dsn, log)
	if err != nil {
		return nil, err
	}
	return &Manager{db: db, log: log}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error { return m.db.Close() }

// Database exposes the underlying store for callers that need direct reads.
func (m *Manager) Database() *Database { return m.db }

// ------------------ Books ------------------

// AddBook validates nb and stores it.
func (m *Manager) AddBook(ctx context.Context, nb NewBook) (*Book, error) {
	if err := validateInput(nb); err != nil {
		return nil, err
	}
	b, err := m.db.AddBook(ctx, nb)
	if err != nil {
		return nil, err
	}
	m.log.Debug("book added", "id", b.ID, "title", b.Title)
	return b, nil
}

func (m *Manager) ListBooks(ctx context.Context) ([]*Book, error) { return m.db.ListBooks(ctx) }

// UpdateBook changes the first book titled title. Empty fields in u keep
// their current values.
func (m *Manager) UpdateBook(ctx context.Context, title string, u BookUpdate) (*Book, error) {
	if err := validateInput(u); err != nil {
		return nil, err
	}
	b, err := m.db.UpdateBook(ctx, title, u)
	if err != nil {
		m.logMiss(err, "update book", "title", title)
		return nil, err
	}
	m.log.Debug("book updated", "id", b.ID, "title", b.Title)
	return b, nil
}

// DeleteBook removes the first book titled title.
func (m *Manager) DeleteBook(ctx context.Context, title string) (*Book, error) {
	b, err := m.db.DeleteBook(ctx, title)
	if err != nil {
		m.logMiss(err, "delete book", "title", title)
		return nil, err
	}
	m.log.Debug("book deleted", "id", b.ID, "title", b.Title)
	return b, nil
}

// ------------------ Customers ------------------

// AddCustomer validates nc and stores it.
func (m *Manager) AddCustomer(ctx context.Context, nc NewCustomer) (*Customer, error) {
	if err := validateInput(nc); err != nil {
		return nil, err
	}
	c, err := m.db.AddCustomer(ctx, nc)
	if err != nil {
		return nil, err
	}
	m.log.Debug("customer added", "id", c.ID, "name", c.Name)
	return c, nil
}

func (m *Manager) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return m.db.ListCustomers(ctx)
}

// UpdateCustomer changes the first customer called name.
func (m *Manager) UpdateCustomer(ctx context.Context, name string, u CustomerUpdate) (*Customer, error) {
	c, err := m.db.UpdateCustomer(ctx, name, u)
	if err != nil {
		m.logMiss(err, "update customer", "name", name)
		return nil, err
	}
	m.log.Debug("customer updated", "id", c.ID, "name", c.Name)
	return c, nil
}

// ------------------ Orders ------------------

// TrackOrder records that customerName bought quantity copies of bookTitle.
// Nothing is written unless both exist.
func (m *Manager) TrackOrder(ctx context.Context, customerName, bookTitle string, quantity int) (*OrderView, error) {
	req := orderRequest{CustomerName: customerName, BookTitle: bookTitle, Quantity: quantity}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	o, err := m.db.CreateOrder(ctx, customerName, bookTitle, quantity)
	if err != nil {
		m.logMiss(err, "track order", "customer", customerName, "book", bookTitle)
		return nil, err
	}
	m.log.Debug("order placed", "id", o.ID, "customer_id", o.CustomerID, "book_id", o.BookID, "total", o.TotalPrice.String())
	return o, nil
}

func (m *Manager) ListOrders(ctx context.Context) ([]*OrderView, error) { return m.db.ListOrders(ctx) }

// logMiss records lookup failures at info; storage errors are left to the caller.
func (m *Manager) logMiss(err error, op string, args ...any) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrReferenceMissing), errors.Is(err, ErrInUse):
		m.log.Info(op+" skipped", append(args, "reason", err.Error())...)
	}
}
