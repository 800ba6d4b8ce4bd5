// internal/catalog/catalog.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"approval-workers/internal/approval"
	"approval-workers/internal/common/validation"
)

const (
	BusinessFallbackURL = "https://www.citi.com/credit-cards/business"
	PersonalFallbackURL = "https://www.citi.com/credit-cards"
)

var (
	//go:embed data/cards.json
	builtinCards []byte

	//go:embed data/cards.schema.json
	cardsSchema []byte

	documentSchema = validation.MustCompile(cardsSchema)

	builtinOnce    sync.Once
	builtinCatalog *Catalog

	citibankPrefix = regexp.MustCompile(`(?i)^citibank\s+`)
	whitespace     = regexp.MustCompile(`\s+`)
	nameSymbols    = strings.NewReplacer("®", "", "™", "", "℠", "")
)

type document struct {
	Cards []Card `json:"cards"`
}

// Catalog is an immutable, ordered set of cards indexed by id and name.
type Catalog struct {
	cards  []Card
	byID   map[string]int
	byName map[string]int
}

// New builds a catalog, rejecting empty or duplicate ids.
func New(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards:  make([]Card, 0, len(cards)),
		byID:   make(map[string]int, len(cards)),
		byName: make(map[string]int, len(cards)),
	}
	for _, card := range cards {
		id := strings.ToLower(strings.TrimSpace(card.ID))
		if id == "" {
			return nil, fmt.Errorf("card %q has no id", card.CardName)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.byID[id] = len(c.cards)
		if name := NormalizeName(card.CardName); name != "" {
			if _, seen := c.byName[name]; !seen {
				c.byName[name] = len(c.cards)
			}
		}
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// Parse validates a catalog document against the card schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	result, err := documentSchema.ValidateBytes(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("catalog validation failed: %s", result.Summary())
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Cards)
}

// LoadFile reads and validates a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := Parse(builtinCards)
		if err != nil {
			panic(fmt.Sprintf("builtin card catalog is invalid: %v", err))
		}
		builtinCatalog = c
	})
	return builtinCatalog
}

func (c *Catalog) Len() int { return len(c.cards) }

// All returns the cards in catalog order.
func (c *Catalog) All() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByID looks a card up by id, ignoring case.
func (c *Catalog) ByID(id string) (Card, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

func (c *Catalog) BySegment(segment Segment) []Card {
	return c.filter(func(card Card) bool { return card.Segment == segment })
}

func (c *Catalog) ByDifficulty(d approval.Difficulty) []Card {
	return c.filter(func(card Card) bool { return card.DifficultyRating == d })
}

// MatchByName finds the card whose normalized name equals the normalized input.
func (c *Catalog) MatchByName(name string) (Card, bool) {
	key := NormalizeName(name)
	if key == "" {
		return Card{}, false
	}
	if i, ok := c.byName[key]; ok {
		return c.cards[i], true
	}
	return Card{}, false
}

// Subset returns a catalog limited to the given ids, in catalog order.
// Unknown ids are ignored; an empty list keeps every card.
func (c *Catalog) Subset(ids []string) *Catalog {
	if len(ids) == 0 {
		return c
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[strings.ToLower(strings.TrimSpace(id))] = true
	}
	sub, _ := New(c.filter(func(card Card) bool { return keep[strings.ToLower(card.ID)] }))
	return sub
}

// DetailsURL resolves the product page for a card by id, then by name.
// Empty id and name yield "".
func (c *Catalog) DetailsURL(id, name string) string {
	return c.resolveURL(id, name, func(card Card) string { return card.DetailsURL })
}

// ApplyURL resolves the application page for a card by id, then by name.
func (c *Catalog) ApplyURL(id, name string) string {
	return c.resolveURL(id, name, func(card Card) string { return card.ApplyURL })
}

func (c *Catalog) resolveURL(id, name string, pick func(Card) string) string {
	if strings.TrimSpace(id) == "" && strings.TrimSpace(name) == "" {
		return ""
	}

	card, ok := c.ByID(id)
	if !ok {
		card, ok = c.matchLoosely(name)
	}
	if !ok {
		return BusinessFallbackURL
	}
	if u := pick(card); u != "" {
		return u
	}
	if card.Segment == SegmentPersonal {
		return PersonalFallbackURL
	}
	return BusinessFallbackURL
}

// matchLoosely is MatchByName that also ignores trademark symbols.
func (c *Catalog) matchLoosely(name string) (Card, bool) {
	if card, ok := c.MatchByName(name); ok {
		return card, true
	}
	key := NormalizeName(nameSymbols.Replace(name))
	if key == "" {
		return Card{}, false
	}
	for _, card := range c.cards {
		if NormalizeName(nameSymbols.Replace(card.CardName)) == key {
			return card, true
		}
	}
	return Card{}, false
}

func (c *Catalog) filter(keep func(Card) bool) []Card {
	out := []Card{}
	for _, card := range c.cards {
		if keep(card) {
			out = append(out, card)
		}
	}
	return out
}

// NormalizeName lowercases a card name, drops a leading "Citibank" and
// collapses runs of whitespace.
func NormalizeName(name string) string {
	n := citibankPrefix.ReplaceAllString(strings.ToLower(name), "")
	return whitespace.ReplaceAllString(strings.TrimSpace(n), " ")
}
