package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Card is a single entry in a deck file. The front and back contents are
// opaque strings; audio references are optional.
type Card struct {
	ID         string `json:"id"         validate:"required"`
	Front      string `json:"front"      validate:"required"`
	Back       string `json:"back"       validate:"required"`
	AudioFront string `json:"audioFront"`
	AudioBack  string `json:"audioBack"`
}

// Deck is a parsed deck file: a small header plus the card list. The deck
// ID is derived from the file name, not from the document, so two files
// cannot claim the same id.
type Deck struct {
	ID                   string `json:"-"`
	Name                 string `json:"name"        validate:"required"`
	Description          string `json:"description"`
	AllowDirectionChange bool   `json:"allowDirectionChange"`
	Cards                []Card `json:"cards"       validate:"required,min=1,dive"`
}

// ErrNoDecks indicates that the deck directory contained no deck files.
var ErrNoDecks = errors.New("no deck files found")

var validate = validator.New()

// LoadFile parses and validates a single deck file. The deck ID is the
// file's base name without the .json extension.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}

	base := filepath.Base(path)
	d.ID = strings.TrimSuffix(base, filepath.Ext(base))

	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("invalid deck file %s: %w", path, err)
	}

	// Card ids must be unique within a file; the store would otherwise
	// silently collapse duplicates during seeding.
	seen := make(map[string]struct{}, len(d.Cards))
	for _, c := range d.Cards {
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("invalid deck file %s: duplicate card id %q", path, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return &d, nil
}

// LoadDir loads every *.json file in dir as a deck, sorted by deck ID.
// Returns ErrNoDecks when the directory holds no deck files.
func LoadDir(dir string) ([]*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory %s: %w", dir, err)
	}

	var decks []*Deck
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		d, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}

	if len(decks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDecks, dir)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].ID < decks[j].ID })
	return decks, nil
}
