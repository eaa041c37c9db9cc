package models

// SpotImage is one photo attached to a tourism spot.
type SpotImage struct {
	URL     string `bson:"url" json:"url"`
	Caption string `bson:"caption" json:"caption"`
	IsMain  bool   `bson:"is_main" json:"is_main"`
}

// TourismSpot is an entry in the local guide catalog.
type TourismSpot struct {
	ID          int         `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Category    string      `bson:"category" json:"category"`
	Description string      `bson:"description" json:"description"`
	Distance    string      `bson:"distance" json:"distance"`
	Address     string      `bson:"address" json:"address"`
	Hours       string      `bson:"hours" json:"hours"`
	Website     string      `bson:"website" json:"website"`
	Images      []SpotImage `bson:"images" json:"images"`
}

// SpotFilter narrows and pages a tourism spot listing.
type SpotFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// SpotPage is one page of tourism spot results.
type SpotPage struct {
	Spots    []TourismSpot `json:"spots"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
