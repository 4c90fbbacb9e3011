package instrument

import (
	"errors"
	"fmt"
	"strings"
)

// Construct is a top-level grouping of questionnaire items.
type Construct string

const (
	HATI  Construct = "HATI"
	AKAL  Construct = "AKAL"
	JASAD Construct = "JASAD"
)

const (
	MinScore = 1
	MaxScore = 4
)

var (
	ErrEmptyCatalog       = errors.New("instrument catalog has no items")
	ErrEmptyStatement     = errors.New("item statement is empty")
	ErrDuplicateStatement = errors.New("item statement is not unique")
	ErrInvalidDefault     = errors.New("default score is outside 1-4")
)

// Item is one questionnaire statement. ID is assigned in catalog order starting at 1
// and never changes; Statement is display text.
type Item struct {
	ID           int       `json:"id" yaml:"id"`
	Construct    Construct `json:"construct" yaml:"construct"`
	Subdimension string    `json:"subdimension" yaml:"subdimension"`
	Statement    string    `json:"statement" yaml:"statement"`
	Score        int       `json:"score" yaml:"score"`
}

// ValidScore reports whether s is on the 1-4 scale.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

type group struct {
	construct    Construct
	subdimension string
	statements   []string
}

// Builder collects (construct, subdimension) groups in declaration order.
type Builder struct {
	defaultScore int
	groups       []group
}

func NewBuilder(defaultScore int) *Builder {
	return &Builder{defaultScore: defaultScore}
}

// Add appends statements under construct/subdimension. Calls may repeat a pair;
// the statements are still appended in call order.
func (b *Builder) Add(construct Construct, subdimension string, statements ...string) *Builder {
	b.groups = append(b.groups, group{
		construct:    construct,
		subdimension: subdimension,
		statements:   statements,
	})
	return b
}

func (b *Builder) Build() (*Catalog, error) {
	if !ValidScore(b.defaultScore) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDefault, b.defaultScore)
	}

	c := &Catalog{
		defaultScore: b.defaultScore,
		byStatement:  make(map[string]int),
	}
	for _, g := range b.groups {
		for _, s := range g.statements {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("%w (%s/%s)", ErrEmptyStatement, g.construct, g.subdimension)
			}
			if _, dup := c.byStatement[s]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateStatement, s)
			}
			id := len(c.items) + 1
			c.items = append(c.items, Item{
				ID:           id,
				Construct:    g.construct,
				Subdimension: g.subdimension,
				Statement:    s,
				Score:        b.defaultScore,
			})
			c.byStatement[s] = id
		}
	}
	if len(c.items) == 0 {
		return nil, ErrEmptyCatalog
	}
	for _, it := range c.items {
		if !containsConstruct(c.constructs, it.Construct) {
			c.constructs = append(c.constructs, it.Construct)
		}
	}
	return c, nil
}

// MustBuild is Build for static definitions.
func (b *Builder) MustBuild() *Catalog {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// Catalog is the immutable, ordered item template. Items carry the default score.
type Catalog struct {
	items        []Item
	byStatement  map[string]int
	constructs   []Construct
	defaultScore int
}

func (c *Catalog) Len() int { return len(c.items) }

func (c *Catalog) DefaultScore() int { return c.defaultScore }

// Items returns a copy of the catalog in definition order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item with the given id.
func (c *Catalog) Item(id int) (Item, bool) {
	if id < 1 || id > len(c.items) {
		return Item{}, false
	}
	return c.items[id-1], true
}

// IDOf resolves a statement to its item id.
func (c *Catalog) IDOf(statement string) (int, bool) {
	id, ok := c.byStatement[strings.TrimSpace(statement)]
	return id, ok
}

// Constructs lists constructs in order of first appearance.
func (c *Catalog) Constructs() []Construct {
	out := make([]Construct, len(c.constructs))
	copy(out, c.constructs)
	return out
}

func (c *Catalog) HasConstruct(k Construct) bool {
	return containsConstruct(c.constructs, k)
}

// Subdimensions lists the sub-dimensions of a construct in catalog order.
func (c *Catalog) Subdimensions(k Construct) []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range c.items {
		if it.Construct != k || seen[it.Subdimension] {
			continue
		}
		seen[it.Subdimension] = true
		out = append(out, it.Subdimension)
	}
	return out
}

// Filter returns the items of one construct. An empty construct returns all items.
func (c *Catalog) Filter(k Construct) []Item {
	if k == "" {
		return c.Items()
	}
	var out []Item
	for _, it := range c.items {
		if it.Construct == k {
			out = append(out, it)
		}
	}
	return out
}

func containsConstruct(list []Construct, k Construct) bool {
	for _, v := range list {
		if v == k {
			return true
		}
	}
	return false
}
