package membership

// Membership links a team to a season it takes part in. It is a row in the
// equipo_temporada table and is identified by both columns together.
type Membership struct {
	TeamID   int64
	SeasonID int64
}

// Key identifies a single membership.
type Key struct {
	TeamID   int64
	SeasonID int64
}

