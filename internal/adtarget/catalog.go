package adtarget

import (
	"slices"
	"strings"

	"pitchside/internal/textutil"
)

// Kinds of merchandise.
const (
	KindJersey  = "jersey"
	KindGeneric = "generic"
)

// Generic item keys.
const (
	ItemBall    = "ball"
	ItemCleats  = "cleats"
	ItemScarf   = "scarf"
)

// Merchandise is a single advertisable product.
type Merchandise struct {
	Key         string  `json:"key"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Team        string  `json:"team,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Catalog holds player jerseys and generic items. Player lookups run in
// insertion order.
type Catalog struct {
	players []Merchandise
	generic map[string]Merchandise
}

// DefaultCatalog returns the built-in demonstration catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		players: []Merchandise{
			{Key: "messi", Kind: KindJersey, Name: "Lionel Messi", Team: "Inter Miami", Price: 89.99, Description: "Official Inter Miami Messi #10 Jersey", ImageURL: "https://via.placeholder.com/200x250/ff69b4/ffffff?text=Messi+Jersey"},
			{Key: "ronaldo", Kind: KindJersey, Name: "Cristiano Ronaldo", Team: "Al Nassr", Price: 79.99, Description: "Official Al Nassr Ronaldo #7 Jersey", ImageURL: "https://via.placeholder.com/200x250/ffd700/000000?text=Ronaldo+Jersey"},
			{Key: "mbappe", Kind: KindJersey, Name: "Kylian Mbappé", Team: "Real Madrid", Price: 94.99, Description: "Official Real Madrid Mbappé #9 Jersey", ImageURL: "https://via.placeholder.com/200x250/ffffff/000000?text=Mbappe+Jersey"},
			{Key: "haaland", Kind: KindJersey, Name: "Erling Haaland", Team: "Manchester City", Price: 89.99, Description: "Official Manchester City Haaland #9 Jersey", ImageURL: "https://via.placeholder.com/200x250/87ceeb/000000?text=Haaland+Jersey"},
		},
		generic: map[string]Merchandise{
			ItemBall:   {Key: ItemBall, Kind: KindGeneric, Name: "Premium Soccer Ball", Price: 29.99, Description: "Professional Match Quality Soccer Ball", ImageURL: "https://via.placeholder.com/200x250/32cd32/ffffff?text=Soccer+Ball"},
			ItemCleats: {Key: ItemCleats, Kind: KindGeneric, Name: "Soccer Cleats", Price: 119.99, Description: "Premium Performance Soccer Cleats", ImageURL: "https://via.placeholder.com/200x250/ff4500/ffffff?text=Soccer+Cleats"},
			ItemScarf:  {Key: ItemScarf, Kind: KindGeneric, Name: "Team Scarf", Price: 24.99, Description: "Official Team Supporter Scarf", ImageURL: "https://via.placeholder.com/200x250/800080/ffffff?text=Team+Scarf"},
		},
	}
}

// Player returns the jersey stored under key.
func (c *Catalog) Player(key string) (Merchandise, bool) {
	idx := slices.IndexFunc(c.players, func(m Merchandise) bool { return m.Key == key })
	if idx < 0 {
		return Merchandise{}, false
	}
	return c.players[idx], true
}

// Generic returns the generic item stored under key.
func (c *Catalog) Generic(key string) (Merchandise, bool) {
	m, ok := c.generic[key]
	return m, ok
}

// Players returns every jersey in lookup order.
func (c *Catalog) Players() []Merchandise {
	return slices.Clone(c.players)
}

// MatchPlayer maps a free-form name onto a catalog key. A name matches when
// it contains the key ("Messi from" -> messi) or is part of the player's full
// name ("Cristiano" -> ronaldo). Comparison ignores case and accents.
func (c *Catalog) MatchPlayer(name string) (string, bool) {
	candidate := textutil.MatchKey(name)
	if candidate == "" {
		return "", false
	}
	for _, m := range c.players {
		if strings.Contains(candidate, m.Key) || strings.Contains(textutil.MatchKey(m.Name), candidate) {
			return m.Key, true
		}
	}
	return "", false
}
