package catalog

import "github.com/nikolayk812/storefront/internal/storefront"

const productFragment = `
fragment ProductFragment on Product {
	id
	title
	handle
	description
	availableForSale
	tags
	vendor
	productType
	images(first: 10) {
		edges {
			node { id altText url width height }
		}
	}
	variants(first: 250) {
		edges {
			node {
				id
				title
				availableForSale
				price { amount currencyCode }
				compareAtPrice { amount currencyCode }
				selectedOptions { name value }
			}
		}
	}
	priceRange {
		minVariantPrice { amount currencyCode }
		maxVariantPrice { amount currencyCode }
	}
}`

var getProductsOp = storefront.MustOperation(productFragment + `
query GetProducts($first: Int!, $after: String, $query: String) {
	products(first: $first, after: $after, query: $query) {
		edges {
			node { ...ProductFragment }
			cursor
		}
		pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
	}
}`)

var getProductOp = storefront.MustOperation(productFragment + `
query GetProduct($handle: String!) {
	productByHandle(handle: $handle) { ...ProductFragment }
}`)

var getCollectionProductsOp = storefront.MustOperation(productFragment + `
query GetCollectionProducts($handle: String!, $first: Int!, $after: String) {
	collectionByHandle(handle: $handle) {
		id
		title
		description
		products(first: $first, after: $after) {
			edges {
				node { ...ProductFragment }
				cursor
			}
			pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
		}
	}
}`)
