package model

// Product represents a photo product in the catalogue.
type Product struct {
	ID             string       `json:"id"`
	Description    *string      `json:"description"`
	AltDescription *string      `json:"alt_description"`
	Likes          *int         `json:"likes" validate:"required"`
	URLs           ProductURLs  `json:"urls"`
	Links          ProductLinks `json:"links"`
	User           ProductUser  `json:"user"`
	Tags           []Tag        `json:"tags" validate:"dive"`
}

// ProductURLs holds the rendition URLs of a product image.
type ProductURLs struct {
	Regular string `json:"regular" validate:"required"`
	Small   string `json:"small" validate:"required"`
	Thumb   string `json:"thumb" validate:"required"`
}

// ProductLinks holds the API and web links of a product.
type ProductLinks struct {
	Self string `json:"self" validate:"required"`
	HTML string `json:"html" validate:"required"`
}

// ProductUser is the author of a product.
type ProductUser struct {
	ID           string  `json:"id" validate:"required"`
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     *string `json:"last_name,omitempty"`
	Username     string  `json:"username" validate:"required"`
	PortfolioURL *string `json:"portfolio_url,omitempty"`
}

// Tag labels a product.
type Tag struct {
	Title string `json:"title" validate:"required"`
}

// ApplyDefaults fills in fields that have a default value.
func (p *Product) ApplyDefaults() {
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
}

// HasTag reports whether the product carries a tag with exactly the given title.
func (p *Product) HasTag(title string) bool {
	for _, t := range p.Tags {
		if t.Title == title {
			return true
		}
	}
	return false
}

// ProductPatch is a partial update of a product. Keys absent from the
// request are left untouched; present keys replace the stored value as a
// whole, and an explicit null clears it.
type ProductPatch struct {
	Description    Optional[string]       `json:"description"`
	AltDescription Optional[string]       `json:"alt_description"`
	Likes          Optional[int]          `json:"likes"`
	URLs           Optional[ProductURLs]  `json:"urls"`
	Links          Optional[ProductLinks] `json:"links"`
	User           Optional[ProductUser]  `json:"user"`
	Tags           Optional[[]Tag]        `json:"tags"`
}

// Apply overwrites each present field of the patch onto p.
func (pp *ProductPatch) Apply(p *Product) {
	setNullable(pp.Description, &p.Description)
	setNullable(pp.AltDescription, &p.AltDescription)
	setNullable(pp.Likes, &p.Likes)
	setValue(pp.URLs, &p.URLs)
	setValue(pp.Links, &p.Links)
	setValue(pp.User, &p.User)
	setValue(pp.Tags, &p.Tags)
}

// ProductFilter selects a page of products.
type ProductFilter struct {
	Offset int
	Limit  int
	// Tag, when set, matches products with a tag whose title equals it exactly.
	Tag *string
}
