package query

// Supported spatial reference systems for a [LocationQuery].
const (
	// SRIDWGS84 represents spatial data using longitude and latitude
	// coordinates on the Earth's surface as defined in the WGS84 standard.
	SRIDWGS84 = 4326
	// SRIDRDNew represents the Dutch Amersfoort / RD New projection,
	// whose coordinates are meters rather than degrees.
	SRIDRDNew = 28992
)

// LocationQuery restricts a listing to panoramas captured within
// Radius meters of a point.
//
// Latitude and Longitude are degrees under WGS84, or the projection's
// y and x coordinates under RD New. Degree-range checks apply only to
// WGS84; RD New coordinates are projected meters and have no fixed
// bounds.
type LocationQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius" validate:"min=0"`
	SRID      int     `json:"srid" validate:"oneof=4326 28992"`
}
