package validation

import "github.com/shopspring/decimal"

// Request bodies use pointers so that an absent field is told apart from a
// zero value. Integers stored in INTEGER columns are capped at the int4
// maximum.

// VenueRequest is the body of POST and PUT on venues.
type VenueRequest struct {
	Name     *string `json:"nombre" validate:"required,max=255"`
	Capacity *int    `json:"capacidad" validate:"required,gt=0,lte=2147483647"`
	City     *string `json:"ciudad" validate:"required,max=255"`
	Country  *string `json:"pais" validate:"required,max=255"`
}

// TeamRequest is the body of POST and PUT on teams.
type TeamRequest struct {
	Name      *string          `json:"nombre" validate:"required,max=255"`
	VenueID   *int64           `json:"estadio_id" validate:"required,gt=0"`
	FoundedOn *string          `json:"fecha_fundacion" validate:"required,datetime=2006-01-02"`
	Budget    *decimal.Decimal `json:"presupuesto" validate:"required"`
}

// SeasonRequest is the body of POST and PUT on seasons.
type SeasonRequest struct {
	StartYear *int    `json:"año_inicio" validate:"required,gt=0,lte=2147483647"`
	EndYear   *int    `json:"año_fin" validate:"required,gt=0,lte=2147483647"`
	Name      *string `json:"nombre_temporada" validate:"required,max=255"`
}

// MembershipRequest is the body of POST and PUT on team-season links.
type MembershipRequest struct {
	TeamID   *int64 `json:"equipo_id" validate:"required,gt=0"`
	SeasonID *int64 `json:"temporada_id" validate:"required,gt=0"`
}
