// Package session runs the interactive inventory menu. A Session owns the
// catalog for the length of one run and writes it back through the store on
// save-and-exit.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// ErrInputClosed is returned by Run when input ends before save-and-exit.
// Nothing is saved in that case.
var ErrInputClosed = errors.New("input closed before save")

// maxInputLine bounds a single line of user input.
const maxInputLine = 1 << 20

// Menu choices.
const (
	choiceViewAll     = "1"
	choiceAdd         = "2"
	choiceUpdateStock = "3"
	choiceDelete      = "4"
	choiceSearch      = "5"
	choiceSort        = "6"
	choiceFilterPrice = "7"
	choiceSaveExit    = "8"
)

const menu = `
=== INVENTORY MANAGER ===
1. View all
2. Add product
3. Update stock
4. Delete product
5. Search products
6. Sort products
7. Filter by price
8. Save & exit
`

// Session is a single-user menu loop over one catalog.
type Session struct {
	catalog *catalog.Catalog
	store   types.Store
	path    string
	in      *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger
}

// New creates a Session that reads commands from in, writes results to out,
// and saves cat to path through store on exit.
func New(cat *catalog.Catalog, store types.Store, path string, in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)
	return &Session{
		catalog: cat,
		store:   store,
		path:    path,
		in:      scanner,
		out:     out,
		log:     log.With().Str("session", newSessionID()).Logger(),
	}
}

// Run loops until the save-and-exit choice, then saves the catalog.
// It returns the save error, ErrInputClosed if input ends first, or a read
// error from the input.
func (s *Session) Run() error {
	s.log.Info().Str("path", s.path).Int("records", s.catalog.Len()).Msg("session started")

	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("Choose: ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case choiceViewAll:
			err = s.show(s.catalog.Records())
		case choiceAdd:
			err = s.add()
		case choiceUpdateStock:
			err = s.updateStock()
		case choiceDelete:
			err = s.remove()
		case choiceSearch:
			err = s.search()
		case choiceSort:
			err = s.sort()
		case choiceFilterPrice:
			err = s.filterPrice()
		case choiceSaveExit:
			return s.save()
		default:
			s.println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) add() error {
	name, err := s.promptText("Name: ", false)
	if err != nil {
		return err
	}
	category, err := s.promptText("Category: ", true)
	if err != nil {
		return err
	}
	price, err := s.promptPrice("Price: ")
	if err != nil {
		return err
	}
	quantity, err := s.promptQuantity("Quantity: ")
	if err != nil {
		return err
	}

	id := s.catalog.Add(name, category, price, quantity)
	s.log.Debug().Int("id", id).Str("name", name).Msg("product added")
	s.println(fmt.Sprintf("Product added with ID %d.", id))
	return nil
}

func (s *Session) updateStock() error {
	id, err := s.promptInt("Product ID: ")
	if err != nil {
		return err
	}
	if _, ok := s.catalog.Get(id); !ok {
		s.println("Product not found.")
		return nil
	}
	quantity, err := s.promptQuantity("New quantity: ")
	if err != nil {
		return err
	}

	s.catalog.UpdateQuantity(id, quantity)
	s.log.Debug().Int("id", id).Int("quantity", quantity).Msg("stock updated")
	s.println("Stock updated.")
	return nil
}

func (s *Session) remove() error {
	id, err := s.promptInt("Product ID to delete: ")
	if err != nil {
		return err
	}
	if !s.catalog.Remove(id) {
		s.println("Product not found.")
		return nil
	}
	s.log.Debug().Int("id", id).Msg("product deleted")
	s.println("Product deleted.")
	return nil
}

func (s *Session) search() error {
	keyword, err := s.prompt("Keyword: ")
	if err != nil {
		return err
	}
	return s.show(s.catalog.Search(keyword))
}

func (s *Session) sort() error {
	criterion, err := s.prompt("Sort by (price/quantity): ")
	if err != nil {
		return err
	}
	criterion = strings.TrimSpace(criterion)
	if !s.catalog.SortBy(criterion) {
		s.log.Debug().Str("criterion", criterion).Msg("unrecognized sort criterion")
		s.println("Unknown sort criterion, order unchanged.")
	}
	return s.show(s.catalog.Records())
}

func (s *Session) filterPrice() error {
	lo, err := s.promptPrice("Min price: ")
	if err != nil {
		return err
	}
	hi, err := s.promptPrice("Max price: ")
	if err != nil {
		return err
	}
	return s.show(s.catalog.FilterByPriceRange(lo, hi))
}

func (s *Session) save() error {
	records := s.catalog.Records()
	if err := s.store.Save(records, s.path); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("save failed")
		return fmt.Errorf("save products: %w", err)
	}
	s.log.Info().Str("path", s.path).Int("records", len(records)).Msg("session saved")
	s.println(fmt.Sprintf("Saved %d products to %s.", len(records), s.path))
	return nil
}

func (s *Session) show(records []types.Record) error {
	return renderRecords(s.out, records)
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
