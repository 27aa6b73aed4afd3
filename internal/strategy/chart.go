package strategy

// Columns are dealer upcards 2..9, ten, ace.
type row [10]Code

const (
	hardMin = 7
	hardMax = 18
	softMin = 12
	softMax = 20
	pairMin = 2
	pairMax = 11
)

// Chart is one basic-strategy table. Hard and soft rows are indexed by player
// total, pair rows by the value of one card of the pair (ace = 11).
type Chart struct {
	Name string
	Hard [hardMax - hardMin + 1]row
	Soft [softMax - softMin + 1]row
	Pair [pairMax - pairMin + 1]row
}

// Category is the chart section a hand is looked up in.
type Category int

const (
	Hard Category = iota
	Soft
	Pair
)

func (c Category) String() string {
	switch c {
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return "hard"
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func column(upcard int) int {
	return clamp(upcard, 2, 11) - 2
}

// Lookup returns the code for a category, player key and dealer upcard value.
// Keys outside the chart are clamped to its edges, where the lowest rows
// always hit and the highest always stand.
func (c *Chart) Lookup(cat Category, key, upcard int) Code {
	col := column(upcard)
	switch cat {
	case Soft:
		return c.Soft[clamp(key, softMin, softMax)-softMin][col]
	case Pair:
		return c.Pair[clamp(key, pairMin, pairMax)-pairMin][col]
	default:
		return c.Hard[clamp(key, hardMin, hardMax)-hardMin][col]
	}
}

// cell addresses one chart entry for a patch.
type cell struct {
	cat    Category
	key    int
	upcard int
	code   Code
}

// patched returns a copy of the chart with cells overridden.
func (c Chart) patched(name string, cells ...cell) *Chart {
	c.Name = name
	for _, p := range cells {
		col := column(p.upcard)
		switch p.cat {
		case Soft:
			c.Soft[p.key-softMin][col] = p.code
		case Pair:
			c.Pair[p.key-pairMin][col] = p.code
		default:
			c.Hard[p.key-hardMin][col] = p.code
		}
	}
	return &c
}
