// Package product implements the catalog Product aggregate: identity by SKU, a
// URL slug, pricing in minor units and the stock counter that checkout and
// cancellation move.
package product
