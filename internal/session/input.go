package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// prompt writes label and reads one line of input.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return s.in.Text(), nil
}

// promptText re-prompts until the input holds no field delimiter and, unless
// allowEmpty, is not blank. The record file has no escaping, so a delimiter
// would corrupt the line on the next load.
func (s *Session) promptText(label string, allowEmpty bool) (string, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return "", err
		}
		switch {
		case strings.Contains(line, types.Delimiter):
			s.println("Value must not contain a comma, try again.")
		case !allowEmpty && strings.TrimSpace(line) == "":
			s.println("Value must not be empty, try again.")
		default:
			return line, nil
		}
	}
}

// promptInt re-prompts until the input parses as an integer.
func (s *Session) promptInt(label string) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := parseInt(line)
		if err == nil {
			return n, nil
		}
		s.rejectNumber(err)
	}
}

// promptQuantity re-prompts until the input is a non-negative integer.
func (s *Session) promptQuantity(label string) (int, error) {
	for {
		n, err := s.promptInt(label)
		if err != nil {
			return 0, err
		}
		if n >= 0 {
			return n, nil
		}
		s.println("Quantity must not be negative, try again.")
	}
}

// promptPrice re-prompts until the input is a non-negative decimal.
func (s *Session) promptPrice(label string) (decimal.Decimal, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		price, err := parsePrice(line)
		if err != nil {
			s.rejectNumber(err)
			continue
		}
		if price.IsNegative() {
			s.println("Price must not be negative, try again.")
			continue
		}
		return price, nil
	}
}

func (s *Session) rejectNumber(err error) {
	var perr *types.ParseError
	if errors.As(err, &perr) {
		s.log.Debug().Err(err).Str("input", perr.Input).Msg("rejected numeric input")
	}
	s.println("Invalid number, try again.")
}

func parseInt(line string) (int, error) {
	text := strings.TrimSpace(line)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &types.ParseError{Input: text, Field: "integer", Err: err}
	}
	return n, nil
}

func parsePrice(line string) (decimal.Decimal, error) {
	text := strings.TrimSpace(line)
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &types.ParseError{Input: text, Field: "price", Err: err}
	}
	return d, nil
}

// newSessionID returns a UUID v7, falling back to v4 if v7 generation fails.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
