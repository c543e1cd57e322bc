package bookstore

// Book is a title held in the store's inventory.
// Availability is stored for compatibility with existing databases and is
// never written after the default 0 (0 unavailable, 1 available).
type Book struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Genre        string `json:"genre"`
	Price        Cents  `json:"price"`
	Availability int    `json:"availability"`
}

// Customer is a registered buyer. Name is the lookup key for updates and orders.
type Customer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ContactDetails string `json:"contact_details"`
	Preferences    string `json:"preferences"`
}

// Order links one customer to one book. TotalPrice is fixed when the order is
// placed and does not follow later price changes.
type Order struct {
	ID         int64 `json:"id"`
	Quantity   int   `json:"quantity"`
	TotalPrice Cents `json:"total_price"`
	BookID     int64 `json:"book_id"`
	CustomerID int64 `json:"customer_id"`
}

// OrderView is an Order resolved with the names it links to.
type OrderView struct {
	Order
	CustomerName string `json:"customer_name"`
	BookTitle    string `json:"book_title"`
}

// NewBook holds the fields for add-book.
type NewBook struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genre"`
	Price  Cents  `json:"price" validate:"gte=0"`
}

// NewCustomer holds the fields for add-customer.
type NewCustomer struct {
	Name           string `json:"name" validate:"required"`
	ContactDetails string `json:"contact_details"`
	Preferences    string `json:"preferences"`
}

// BookUpdate carries replacement values for update-book. Empty strings and a
// zero price mean "keep the current value"; fields cannot be cleared.
type BookUpdate struct {
	Title  string `json:"new_title"`
	Author string `json:"new_author"`
	Genre  string `json:"new_genre"`
	Price  Cents  `json:"new_price" validate:"gte=0"`
}

// apply merges the non-empty replacement values into b.
func (u BookUpdate) apply(b *Book) {
	b.Title = keep(u.Title, b.Title)
	b.Author = keep(u.Author, b.Author)
	b.Genre = keep(u.Genre, b.Genre)
	if u.Price != 0 {
		b.Price = u.Price
	}
}

// CustomerUpdate carries replacement values for update-customer, with the
// same keep-on-empty policy as BookUpdate.
type CustomerUpdate struct {
	Name           string `json:"new_name"`
	ContactDetails string `json:"new_contact_details"`
	Preferences    string `json:"new_preferences"`
}

func (u CustomerUpdate) apply(c *Customer) {
	c.Name = keep(u.Name, c.Name)
	c.ContactDetails = keep(u.ContactDetails, c.ContactDetails)
	c.Preferences = keep(u.Preferences, c.Preferences)
}

// orderRequest is validated before track-order touches the store.
type orderRequest struct {
	CustomerName string `json:"customer_name"`
	BookTitle    string `json:"book_title"`
	Quantity     int    `json:"quantity" validate:"gte=1"`
}

func keep(replacement, current string) string {
	if replacement == "" {
		return current
	}
	return replacement
}
