package venue

// Venue represents a row in the estadio table.
type Venue struct {
	ID       int64
	Name     string
	Capacity int
	City     string
	Country  string
}
