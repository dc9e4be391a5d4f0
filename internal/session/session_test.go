package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// memStore records what the session saves.
type memStore struct {
	saved   []types.Record
	path    string
	saves   int
	saveErr error
}

func (m *memStore) EnsureDirectory(string) error { return nil }

func (m *memStore) Load(string) ([]types.Record, error) { return m.saved, nil }

func (m *memStore) Save(records []types.Record, path string) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = records
	m.path = path
	return nil
}

func seedCatalog() *catalog.Catalog {
	return catalog.New([]types.Record{
		{ID: 1, Name: "Widget", Category: "Hardware", Price: decimal.RequireFromString("9.99"), Quantity: 42},
		{ID: 2, Name: "Gadget", Category: "Electronics", Price: decimal.RequireFromString("19.50"), Quantity: 7},
	})
}

func run(t *testing.T, cat *catalog.Catalog, store *memStore, input string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	s := New(cat, store, "products.csv", strings.NewReader(input), out, zerolog.Nop())
	err := s.Run()
	return out.String(), err
}

func TestRunSaveAndExit(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, "8\n")

	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, "products.csv", store.path)
	assert.Len(t, store.saved, 2)
	assert.Contains(t, out, "Saved 2 products")
}

func TestRunViewAllEmpty(t *testing.T) {
	out, err := run(t, catalog.New(nil), &memStore{}, "1\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, noProducts)
}

func TestRunViewAllShowsRecords(t *testing.T) {
	out, err := run(t, seedCatalog(), &memStore{}, "1\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "19.50")
}

func TestRunInvalidChoiceLoops(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, "9\nhello\n8\n")

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Invalid choice."))
	assert.Equal(t, 1, store.saves)
}

func TestRunInputClosedDoesNotSave(t *testing.T) {
	store := &memStore{}
	_, err := run(t, seedCatalog(), store, "1\n")

	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, 0, store.saves)
}

func TestRunAddAssignsNextID(t *testing.T) {
	store := &memStore{}
	out, err := run(t, catalog.New(nil), store, "2\nPen\nOffice\n1.50\n100\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Product added with ID 1.")
	require.Len(t, store.saved, 1)
	want := types.Record{ID: 1, Name: "Pen", Category: "Office", Price: decimal.RequireFromString("1.5"), Quantity: 100}
	assert.True(t, want.Equal(store.saved[0]), "got %+v", store.saved[0])
}

func TestRunAddRepromptsOnBadInput(t *testing.T) {
	store := &memStore{}
	input := strings.Join([]string{
		"2",
		"",          // empty name
		"Pen, blue", // delimiter in name
		"Pen",
		"Office",
		"cheap", // not a number
		"-1",    // negative price
		"1.50",
		"lots", // not a number
		"-5",   // negative quantity
		"100",
		"8",
	}, "\n") + "\n"

	out, err := run(t, catalog.New(nil), store, input)

	require.NoError(t, err)
	assert.Contains(t, out, "Value must not be empty")
	assert.Contains(t, out, "Value must not contain a comma")
	assert.Equal(t, 2, strings.Count(out, "Invalid number, try again."))
	assert.Contains(t, out, "Price must not be negative")
	assert.Contains(t, out, "Quantity must not be negative")
	require.Len(t, store.saved, 1)
	assert.Equal(t, 100, store.saved[0].Quantity)
}

func TestRunUpdateStock(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, "3\n2\n70\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Stock updated.")
	assert.Equal(t, 70, store.saved[1].Quantity)
}

func TestRunUpdateStockUnknownIDSkipsQuantityPrompt(t *testing.T) {
	store := &memStore{}
	// If the quantity were prompted for, "8" would be consumed as the quantity
	// and the session would hit end of input.
	out, err := run(t, seedCatalog(), store, "3\n99\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Product not found.")
	assert.NotContains(t, out, "New quantity:")
	assert.Equal(t, 42, store.saved[0].Quantity)
	assert.Equal(t, 7, store.saved[1].Quantity)
}

func TestRunDelete(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, "4\n1\n4\n1\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Product deleted.")
	assert.Contains(t, out, "Product not found.")
	require.Len(t, store.saved, 1)
	assert.Equal(t, 2, store.saved[0].ID)
}

func TestRunSearch(t *testing.T) {
	out, err := run(t, seedCatalog(), &memStore{}, "5\ngadg\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Gadget")
	assert.NotContains(t, out, "Widget")
}

func TestRunSortPersistsOrder(t *testing.T) {
	store := &memStore{}
	_, err := run(t, seedCatalog(), store, "6\nquantity\n8\n")

	require.NoError(t, err)
	require.Len(t, store.saved, 2)
	assert.Equal(t, 2, store.saved[0].ID)
	assert.Equal(t, 1, store.saved[1].ID)
}

func TestRunSortUnknownCriterion(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, "6\nname\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Unknown sort criterion")
	assert.Equal(t, 1, store.saved[0].ID)
}

func TestRunFilterByPrice(t *testing.T) {
	out, err := run(t, seedCatalog(), &memStore{}, "7\n10\n20\n7\n20\n10\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Gadget")
	assert.NotContains(t, out, "Widget")
	assert.Contains(t, out, noProducts, "inverted range shows no products")
}

func TestRunSaveError(t *testing.T) {
	cause := types.NewIOError("write", "products.csv", errors.New("disk full"))
	store := &memStore{saveErr: cause}
	_, err := run(t, seedCatalog(), store, "8\n")

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr), "expected *IOError, got %v", err)
	assert.Equal(t, 1, store.saves)
}

func TestRunAddRoundsPriceConsistently(t *testing.T) {
	store := &memStore{}
	out, err := run(t, catalog.New(nil), store, "2\nPen\nOffice\n1.505\n1\n7\n1.51\n1.51\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Pen", "filter on the displayed price finds the product")
	assert.NotContains(t, out, noProducts)
	require.Len(t, store.saved, 1)

	reloaded, err := types.ParseLine(store.saved[0].Line())
	require.NoError(t, err)
	assert.True(t, store.saved[0].Equal(reloaded), "saved %+v, reloaded %+v", store.saved[0], reloaded)
	assert.True(t, reloaded.Price.Equal(decimal.RequireFromString("1.51")))
}

func TestRunTrimsChoiceAndCriterion(t *testing.T) {
	store := &memStore{}
	out, err := run(t, seedCatalog(), store, " 6 \n quantity \n8\n")

	require.NoError(t, err)
	assert.NotContains(t, out, "Unknown sort criterion")
	assert.Equal(t, 2, store.saved[0].ID)
}

func TestRunSurvivesOverlongLine(t *testing.T) {
	store := &memStore{}
	long := strings.Repeat("x", 100*1024)
	out, err := run(t, seedCatalog(), store, long+"\n8\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Invalid choice.")
	assert.Equal(t, 1, store.saves)
}
