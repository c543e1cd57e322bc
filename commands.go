package main

import (
	"errors"
	"fmt"

	"bookstore-manager/bookstore"

	"github.com/spf13/cobra"
)

// ------------------ Books ------------------

func (a *app) addBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-book",
		Short: "Add a new book to the inventory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				nb  bookstore.NewBook
				err error
			)
			if nb.Title, err = a.text(cmd, "title", "Book Title", true); err != nil {
				return err
			}
			if nb.Author, err = a.text(cmd, "author", "Author", true); err != nil {
				return err
			}
			if nb.Genre, err = a.text(cmd, "genre", "Genre", false); err != nil {
				return err
			}
			if nb.Price, err = a.price(cmd, "price", "Price", true); err != nil {
				return err
			}

			if _, err := a.mgr.AddBook(cmd.Context(), nb); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Book '%s' added to the inventory.\n", nb.Title)
			return nil
		},
	}
	cmd.Flags().String("title", "", "Title of the book")
	cmd.Flags().String("author", "", "Author of the book")
	cmd.Flags().String("genre", "", "Genre of the book")
	cmd.Flags().String("price", "", "Price of the book")
	return cmd
}

func (a *app) listBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-books",
		Short: "List all books in the inventory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := a.mgr.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(a.out, "No books in the inventory.")
				return nil
			}
			for _, b := range books {
				fmt.Fprintf(a.out, "%s by %s, Genre: %s, Price: $%s\n", b.Title, b.Author, b.Genre, b.Price)
			}
			return nil
		},
	}
}

func (a *app) updateBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-book",
		Short: "Update information for a specific book.",
		Long: "Update information for a specific book.\n\n" +
			"The first book with a matching title is changed. Empty new values keep the current value.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				u   bookstore.BookUpdate
				err error
			)
			title, err := a.text(cmd, "title", "Book Title", true)
			if err != nil {
				return err
			}
			if u.Title, err = a.text(cmd, "new-title", "New Title", false); err != nil {
				return err
			}
			if u.Author, err = a.text(cmd, "new-author", "New Author", false); err != nil {
				return err
			}
			if u.Genre, err = a.text(cmd, "new-genre", "New Genre", false); err != nil {
				return err
			}
			if u.Price, err = a.price(cmd, "new-price", "New Price", false); err != nil {
				return err
			}

			_, err = a.mgr.UpdateBook(cmd.Context(), title, u)
			switch {
			case errors.Is(err, bookstore.ErrNotFound):
				fmt.Fprintf(a.out, "Book '%s' not found.\n", title)
			case err != nil:
				return err
			default:
				fmt.Fprintf(a.out, "Book '%s' updated.\n", title)
			}
			return nil
		},
	}
	cmd.Flags().String("title", "", "Title of the book to update")
	cmd.Flags().String("new-title", "", "New title for the book")
	cmd.Flags().String("new-author", "", "New author for the book")
	cmd.Flags().String("new-genre", "", "New genre for the book")
	cmd.Flags().String("new-price", "", "New price for the book")
	return cmd
}

func (a *app) deleteBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-book",
		Short: "Delete a book from the inventory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, err := a.text(cmd, "title", "Book Title", true)
			if err != nil {
				return err
			}

			_, err = a.mgr.DeleteBook(cmd.Context(), title)
			switch {
			case errors.Is(err, bookstore.ErrNotFound):
				fmt.Fprintf(a.out, "Book '%s' not found.\n", title)
			case errors.Is(err, bookstore.ErrInUse):
				fmt.Fprintf(a.out, "Book '%s' has orders and cannot be deleted.\n", title)
			case err != nil:
				return err
			default:
				fmt.Fprintf(a.out, "Book '%s' deleted from the inventory.\n", title)
			}
			return nil
		},
	}
	cmd.Flags().String("title", "", "Title of the book to delete")
	return cmd
}

// ------------------ Customers ------------------

func (a *app) addCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-customer",
		Short: "Add a new customer to the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				nc  bookstore.NewCustomer
				err error
			)
			if nc.Name, err = a.text(cmd, "name", "Customer Name", true); err != nil {
				return err
			}
			if nc.ContactDetails, err = a.text(cmd, "contact-details", "Contact Details", false); err != nil {
				return err
			}
			if nc.Preferences, err = a.text(cmd, "preferences", "Preferences", false); err != nil {
				return err
			}

			if _, err := a.mgr.AddCustomer(cmd.Context(), nc); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Customer '%s' added to the database.\n", nc.Name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Name of the customer")
	cmd.Flags().String("contact-details", "", "Contact details of the customer")
	cmd.Flags().String("preferences", "", "Customer preferences")
	return cmd
}

func (a *app) listCustomersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-customers",
		Short: "List all customers in the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customers, err := a.mgr.ListCustomers(cmd.Context())
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Fprintln(a.out, "No customers registered.")
				return nil
			}
			for _, c := range customers {
				fmt.Fprintf(a.out, "Customer: %s, Contact: %s, Preferences: %s\n", c.Name, c.ContactDetails, c.Preferences)
			}
			return nil
		},
	}
}

func (a *app) updateCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-customer",
		Short: "Update information for a specific customer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				u   bookstore.CustomerUpdate
				err error
			)
			name, err := a.text(cmd, "name", "Customer Name", true)
			if err != nil {
				return err
			}
			if u.Name, err = a.text(cmd, "new-name", "New Name", false); err != nil {
				return err
			}
			if u.ContactDetails, err = a.text(cmd, "new-contact-details", "New Contact Details", false); err != nil {
				return err
			}
			if u.Preferences, err = a.text(cmd, "new-preferences", "New Preferences", false); err != nil {
				return err
			}

			_, err = a.mgr.UpdateCustomer(cmd.Context(), name, u)
			switch {
			case errors.Is(err, bookstore.ErrNotFound):
				fmt.Fprintf(a.out, "Customer '%s' not found.\n", name)
			case err != nil:
				return err
			default:
				fmt.Fprintf(a.out, "Customer '%s' updated.\n", name)
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Name of the customer to update")
	cmd.Flags().String("new-name", "", "New name for the customer")
	cmd.Flags().String("new-contact-details", "", "New contact details for the customer")
	cmd.Flags().String("new-preferences", "", "New preferences for the customer")
	return cmd
}

// ------------------ Orders ------------------

func (a *app) trackOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track-order",
		Short: "Record a new customer order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customerName, err := a.text(cmd, "customer-name", "Customer Name", true)
			if err != nil {
				return err
			}
			bookTitle, err := a.text(cmd, "book-title", "Book Title", true)
			if err != nil {
				return err
			}
			qty, err := a.quantity(cmd, "quantity", "Quantity")
			if err != nil {
				return err
			}

			o, err := a.mgr.TrackOrder(cmd.Context(), customerName, bookTitle, qty)
			switch {
			case errors.Is(err, bookstore.ErrReferenceMissing):
				fmt.Fprintln(a.out, "Customer or book not found.")
			case err != nil:
				return err
			default:
				fmt.Fprintf(a.out, "Order placed by %s for %d copies of '%s'. Total Price: $%s\n",
					customerName, qty, bookTitle, o.TotalPrice)
			}
			return nil
		},
	}
	cmd.Flags().String("customer-name", "", "Name of the customer placing the order")
	cmd.Flags().String("book-title", "", "Title of the book in the order")
	cmd.Flags().Int("quantity", 0, "Quantity of books in the order")
	return cmd
}

func (a *app) listOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-orders",
		Short: "List all customer orders.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := a.mgr.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(a.out, "No orders recorded.")
				return nil
			}
			for _, o := range orders {
				fmt.Fprintf(a.out, "Order ID: %d, Customer: %s, Book: %s, Quantity: %d, Total Price: $%s\n",
					o.ID, o.CustomerName, o.BookTitle, o.Quantity, o.TotalPrice)
			}
			return nil
		},
	}
}

// ------------------ Bootstrap ------------------

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample books and customers.",
		Long: "Insert the sample books and customers.\n\n" +
			"Existing rows are not checked, so every run adds another five books and five customers.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --seed already ran the seeder in PersistentPreRunE.
			if a.cfg.Seed {
				return nil
			}
			if _, err := a.mgr.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Sample data seeded successfully.")
			return nil
		},
	}
}
