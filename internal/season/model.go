package season

// Season represents a row in the temporada table.
type Season struct {
	ID        int64
	StartYear int
	EndYear   int
	Name      string
}
