package dto

type PlaceResponse struct {
	PlaceID     int     `json:"place_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type SearchPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
