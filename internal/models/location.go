package models

// LocationGroup is a set of postings sharing one location.
type LocationGroup struct {
	LocationID   int64        `json:"locationId"`
	LocationName string       `json:"locationName"`
	Latitude     FlexFloat    `json:"latitude"`
	Longitude    FlexFloat    `json:"longitude"`
	JobCount     int          `json:"jobCount"`
	JobPosts     []JobPosting `json:"jobPosts"`
}

// HasCoordinates reports whether the backend placed the group itself.
func (g LocationGroup) HasCoordinates() bool {
	return g.Latitude.Valid && g.Longitude.Valid && (g.Latitude.Value != 0 || g.Longitude.Value != 0)
}

// FilterOptions holds every facet list returned by the filter-options endpoint.
type FilterOptions struct {
	Countries     []string `json:"countries"`
	ContractTypes []string `json:"contractTypes"`
	ContractTimes []string `json:"contractTimes"`
	WorkLocations []string `json:"workLocations"`
	Companies     []string `json:"companies"`
	Locations     []string `json:"locations"`
	Skills        []string `json:"skills"`
	Languages     []string `json:"languages"`
}
