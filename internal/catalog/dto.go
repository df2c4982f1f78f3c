package catalog

type moneyDTO struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageDTO struct {
	ID      string  `json:"id"`
	AltText *string `json:"altText"`
	URL     string  `json:"url"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

type selectedOptionDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantDTO struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	AvailableForSale bool                `json:"availableForSale"`
	Price            moneyDTO            `json:"price"`
	CompareAtPrice   *moneyDTO           `json:"compareAtPrice"`
	SelectedOptions  []selectedOptionDTO `json:"selectedOptions"`
}

type productDTO struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Handle           string   `json:"handle"`
	Description      string   `json:"description"`
	AvailableForSale bool     `json:"availableForSale"`
	Tags             []string `json:"tags"`
	Vendor           string   `json:"vendor"`
	ProductType      string   `json:"productType"`
	Images           struct {
		Edges []struct {
			Node imageDTO `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantDTO `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	PriceRange struct {
		MinVariantPrice moneyDTO `json:"minVariantPrice"`
		MaxVariantPrice moneyDTO `json:"maxVariantPrice"`
	} `json:"priceRange"`
}

type pageInfoDTO struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type productEdgeDTO struct {
	Node   productDTO `json:"node"`
	Cursor string     `json:"cursor"`
}

type productConnectionDTO struct {
	Edges    []productEdgeDTO `json:"edges"`
	PageInfo pageInfoDTO      `json:"pageInfo"`
}

type productsData struct {
	Products productConnectionDTO `json:"products"`
}

type productData struct {
	ProductByHandle *productDTO `json:"productByHandle"`
}

type collectionProductsData struct {
	CollectionByHandle *struct {
		ID          string               `json:"id"`
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Products    productConnectionDTO `json:"products"`
	} `json:"collectionByHandle"`
}
