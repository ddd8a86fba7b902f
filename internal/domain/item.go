package domain

type ListingType string

const (
	ListingTypeRent ListingType = "RENT"
	ListingTypeSell ListingType = "SELL"
)

type ItemSort string

const (
	ItemSortRecency   ItemSort = ""
	ItemSortPriceAsc  ItemSort = "price_asc"
	ItemSortPriceDesc ItemSort = "price_desc"
)

type Item struct {
	ID          int32       `json:"id"`
	OwnerID     int32       `json:"owner_id"`
	Owner       *PublicProfile `json:"owner,omitempty"` // populated on catalog reads
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PartNumber  string      `json:"part_number"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	ListingType ListingType `json:"listing_type"`
	PriceDay    int32       `json:"price_day"`
	PriceWeek   int32       `json:"price_week"`
	PriceMonth  int32       `json:"price_month"`
	Location    string      `json:"location"`
	ImageURL    string      `json:"image_url"`
	CreatedOn   string      `json:"created_on"`
	UpdatedOn   string      `json:"updated_on"`
}

// ItemFilter captures the catalog query-string filters.
type ItemFilter struct {
	OwnerID     int32
	Location    string
	Category    string
	Search      string
	ListingType ListingType
	Sort        ItemSort
}
