package database

// DefaultLimit is the page size used when a caller does not ask for one.
const DefaultLimit = 100

// Page is an offset/limit window over a table in insertion order.
type Page struct {
	Offset int
	Limit  int
}
