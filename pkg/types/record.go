package types

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Delimiter separates fields in a record line. Field values are not escaped,
// so a name or category containing it cannot be stored faithfully.
const Delimiter = ","

// Header is the fixed first line of a record file.
const Header = "id,name,category,price,quantity"

// recordFields is the number of fields in a record line.
const recordFields = 5

// PricePlaces is the number of fractional digits a stored price carries.
const PricePlaces = 2

// NormalizePrice rounds price to PricePlaces, half away from zero, matching
// the rounding Line applies when writing.
func NormalizePrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PricePlaces)
}

// Record is a single product entry.
type Record struct {
	ID       int             // Unique within a catalog, assigned on add.
	Name     string          // Product name.
	Category string          // Free-form label, may be empty.
	Price    decimal.Decimal // Unit price.
	Quantity int             // Units in stock.
}

// ParseLine converts one delimited line into a Record. The price is
// normalized with NormalizePrice.
// Returns a *ParseError if the line does not hold exactly five fields or if a
// numeric field does not parse.
func ParseLine(line string) (Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != recordFields {
		return Record{}, &ParseError{Input: line}
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, &ParseError{Input: fields[0], Field: "id", Err: err}
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return Record{}, &ParseError{Input: fields[3], Field: "price", Err: err}
	}
	quantity, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, &ParseError{Input: fields[4], Field: "quantity", Err: err}
	}

	return Record{
		ID:       id,
		Name:     fields[1],
		Category: fields[2],
		Price:    NormalizePrice(price),
		Quantity: quantity,
	}, nil
}

// Line serializes the record as a delimited line without a trailing newline.
// Price is written with exactly two fractional digits.
func (r Record) Line() string {
	return strings.Join([]string{
		strconv.Itoa(r.ID),
		r.Name,
		r.Category,
		r.Price.StringFixed(PricePlaces),
		strconv.Itoa(r.Quantity),
	}, Delimiter)
}

// Equal reports whether two records hold the same values. Prices compare by
// numeric value, so 1.5 and 1.50 are equal.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID &&
		r.Name == other.Name &&
		r.Category == other.Category &&
		r.Price.Equal(other.Price) &&
		r.Quantity == other.Quantity
}
