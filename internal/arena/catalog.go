package arena

import (
	"fmt"

	"github.com/abhisek/homebook/internal/content"
)

// Catalog lists the playable games in display order: generated games
// first, then pool games by name.
type Catalog struct {
	games []Game
	byID  map[string]int
}

// NewCatalog builds the catalog from the generated games plus pools. A pool
// whose game ID is already taken is an error.
func NewCatalog(pools ...content.Pool) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int)}
	for _, g := range generatedGames() {
		c.add(g)
	}
	for _, p := range pools {
		if _, dup := c.byID[p.Game]; dup {
			return nil, fmt.Errorf("pool %q: game id already registered", p.Game)
		}
		c.add(poolGame(p))
	}
	return c, nil
}

func (c *Catalog) add(g Game) {
	c.byID[g.ID] = len(c.games)
	c.games = append(c.games, g)
}

// Games returns every game in display order.
func (c *Catalog) Games() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// Lookup returns the game with id.
func (c *Catalog) Lookup(id string) (Game, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// IDs returns every game ID in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.games))
	for i, g := range c.games {
		ids[i] = g.ID
	}
	return ids
}
