package client

import (
	"time"
)

// DefaultBaseURL is the public listing endpoint of the City of
// Amsterdam panorama API.
const DefaultBaseURL = "https://api.data.amsterdam.nl/panorama/panoramas/"

// ImageSize selects one of the equirectangular size variants published
// for every panorama.
type ImageSize string

const (
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeFull   ImageSize = "full"
)

// Link is a single hypermedia link as served by the API. A null href
// decodes to the empty string, meaning the link is absent.
type Link struct {
	Href string `json:"href"`
}

// PointGeometry is the GeoJSON point recorded for a panorama.
// Coordinates are ordered longitude, latitude, altitude.
type PointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PanoramaLinks holds the navigation links attached to a single
// panorama record.
type PanoramaLinks struct {
	Self                  Link `json:"self"`
	EquirectangularFull   Link `json:"equirectangular_full"`
	EquirectangularMedium Link `json:"equirectangular_medium"`
	EquirectangularSmall  Link `json:"equirectangular_small"`
	CubicImgPreview       Link `json:"cubic_img_preview"`
	Thumbnail             Link `json:"thumbnail"`
	Adjacencies           Link `json:"adjacencies"`
}

// Panorama is one geotagged 360° image record. Values are decoded
// straight from a response body and should be treated as read-only.
type Panorama struct {
	Links PanoramaLinks `json:"_links"`

	ID        string        `json:"pano_id"`
	Timestamp time.Time     `json:"timestamp"`
	Filename  string        `json:"filename"`
	Geometry  PointGeometry `json:"geometry"`

	CubicImgBaseURL string `json:"cubic_img_baseurl"`
	CubicImgPattern string `json:"cubic_img_pattern"`

	SurfaceType string `json:"surface_type"`

	MissionDistance int    `json:"mission_distance"`
	MissionType     string `json:"mission_type"`
	MissionYear     string `json:"mission_year"`

	Roll    float64 `json:"roll"`
	Pitch   float64 `json:"pitch"`
	Heading float64 `json:"heading"`

	Tags []string `json:"tags"`
}

// ImageURL returns the download URL for the requested size variant.
// It fails with a *MissingVariantError, before any network activity,
// when the variant was not present in the original response.
func (p *Panorama) ImageURL(size ImageSize) (string, error) {
	var link Link
	switch size {
	case SizeFull:
		link = p.Links.EquirectangularFull
	case SizeMedium:
		link = p.Links.EquirectangularMedium
	case SizeSmall:
		link = p.Links.EquirectangularSmall
	}

	if link.Href == "" {
		return "", &MissingVariantError{
			PanoramaID: p.ID,
			Size:       size,
			Err:        ErrMissingVariant,
		}
	}

	return link.Href, nil
}

// ThumbnailURL returns the panorama's thumbnail link, or the empty
// string when the server omitted it.
func (p *Panorama) ThumbnailURL() string {
	return p.Links.Thumbnail.Href
}

// CubicPreviewURL returns the cubic projection preview link, or the
// empty string when the server omitted it.
func (p *Panorama) CubicPreviewURL() string {
	return p.Links.CubicImgPreview.Href
}

// PageLinks holds the navigation links of a listing page. Previous
// and Next act as opaque cursors: their href encodes the full query
// state server-side and is passed through unmodified.
type PageLinks struct {
	Self     Link `json:"self"`
	Previous Link `json:"previous"`
	Next     Link `json:"next"`
}

// EmbeddedPanoramas mirrors the HAL _embedded envelope of a listing
// page.
type EmbeddedPanoramas struct {
	Panoramas []Panorama `json:"panoramas"`
}

// PagedPanoramasResponse is one page of a panorama listing.
type PagedPanoramasResponse struct {
	Links    PageLinks         `json:"_links"`
	Count    int               `json:"count"`
	Embedded EmbeddedPanoramas `json:"_embedded"`
}

// Panoramas returns the records on this page.
func (p *PagedPanoramasResponse) Panoramas() []Panorama {
	return p.Embedded.Panoramas
}

// HasNextPage reports whether the server advertised a further page.
func (p *PagedPanoramasResponse) HasNextPage() bool {
	return p.Links.Next.Href != ""
}

// HasPreviousPage reports whether the server advertised an earlier page.
func (p *PagedPanoramasResponse) HasPreviousPage() bool {
	return p.Links.Previous.Href != ""
}
