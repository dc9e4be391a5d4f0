// Package catalog holds the in-memory, ordered set of product records and
// the query and mutation operations a session performs on it.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Sort criteria accepted by SortBy.
const (
	SortByPrice    = "price"
	SortByQuantity = "quantity"
)

// Catalog is an ordered collection of records. Order is load or insertion
// order until SortBy reorders it.
type Catalog struct {
	records []types.Record
}

// New creates a Catalog holding a copy of records.
func New(records []types.Record) *Catalog {
	return &Catalog{records: slices.Clone(records)}
}

// Records returns a copy of all records in current order.
func (c *Catalog) Records() []types.Record {
	return slices.Clone(c.records)
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Get returns the first record with the given id.
func (c *Catalog) Get(id int) (types.Record, bool) {
	i := c.index(id)
	if i < 0 {
		return types.Record{}, false
	}
	return c.records[i], true
}

// Search returns records whose name contains keyword, ignoring case.
// An empty keyword matches every record.
func (c *Catalog) Search(keyword string) []types.Record {
	needle := strings.ToLower(keyword)
	return c.filter(func(r types.Record) bool {
		return strings.Contains(strings.ToLower(r.Name), needle)
	})
}

// SortBy stably reorders records ascending by price or quantity. Any other
// criterion leaves the order untouched; the result reports whether the
// criterion was recognized.
func (c *Catalog) SortBy(criterion string) bool {
	switch criterion {
	case SortByPrice:
		slices.SortStableFunc(c.records, func(a, b types.Record) int {
			return a.Price.Cmp(b.Price)
		})
	case SortByQuantity:
		slices.SortStableFunc(c.records, func(a, b types.Record) int {
			return cmp.Compare(a.Quantity, b.Quantity)
		})
	default:
		return false
	}
	return true
}

// FilterByPriceRange returns records with lo <= price <= hi. An inverted
// range matches nothing.
func (c *Catalog) FilterByPriceRange(lo, hi decimal.Decimal) []types.Record {
	return c.filter(func(r types.Record) bool {
		return r.Price.GreaterThanOrEqual(lo) && r.Price.LessThanOrEqual(hi)
	})
}

// Add appends a new record and returns its id, one more than the largest id
// currently held (so an id freed by deleting the top record is reused).
// The price is stored normalized to types.PricePlaces.
func (c *Catalog) Add(name, category string, price decimal.Decimal, quantity int) int {
	id := c.maxID() + 1
	c.records = append(c.records, types.Record{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    types.NormalizePrice(price),
		Quantity: quantity,
	})
	return id
}

// UpdateQuantity sets the quantity of the first record with id. It reports
// false, changing nothing, when no such record exists.
func (c *Catalog) UpdateQuantity(id, quantity int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.records[i].Quantity = quantity
	return true
}

// Remove deletes every record with id and reports whether any was removed.
func (c *Catalog) Remove(id int) bool {
	before := len(c.records)
	c.records = slices.DeleteFunc(c.records, func(r types.Record) bool {
		return r.ID == id
	})
	return len(c.records) < before
}

func (c *Catalog) index(id int) int {
	return slices.IndexFunc(c.records, func(r types.Record) bool {
		return r.ID == id
	})
}

func (c *Catalog) maxID() int {
	top := 0
	for _, r := range c.records {
		top = max(top, r.ID)
	}
	return top
}

func (c *Catalog) filter(keep func(types.Record) bool) []types.Record {
	out := []types.Record{}
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
