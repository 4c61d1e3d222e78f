package trip

// Palette is the fixed repeating trip color palette. The first entries
// match the dashboard's long-standing location colors so existing
// projects keep their look; later entries cover new destinations.
var Palette = []string{
	"#3b82f6", // blue
	"#22c55e", // green
	"#f97316", // orange
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#ec4899", // pink
	"#eab308", // yellow
	"#14b8a6", // teal
}

// PlaceholderColor is the neutral color for trips that never got a
// palette slot (e.g. imported from a foreign project).
const PlaceholderColor = "#94a3b8"

// Colors assigns palette colors to normalized location keys, stably:
// once a key has a color it keeps it for the life of the dataset, across
// any number of re-aggregations. Not safe for concurrent mutation; the
// owning dataset serializes access.
type Colors struct {
	assigned map[string]string
	cursor   int
}

// NewColors creates an empty color assignment.
func NewColors() *Colors {
	return &Colors{assigned: make(map[string]string)}
}

// Get returns the color for key, assigning the next unused palette slot
// on first sight.
func (c *Colors) Get(key string) string {
	if color, ok := c.assigned[key]; ok {
		return color
	}
	color := Palette[c.cursor%len(Palette)]
	c.cursor++
	c.assigned[key] = color
	return color
}

// Set pins an explicit color for key, e.g. when merging a dataset whose
// trips already carry colors. Placeholder colors are not pinned so the
// key still earns a real palette slot.
func (c *Colors) Set(key, color string) {
	if color == "" || color == PlaceholderColor {
		return
	}
	c.assigned[key] = color
}

// Snapshot returns a copy of the current assignments and the palette
// cursor, for persistence.
func (c *Colors) Snapshot() (map[string]string, int) {
	out := make(map[string]string, len(c.assigned))
	for k, v := range c.assigned {
		out[k] = v
	}
	return out, c.cursor
}

// Restore rebuilds a color assignment from persisted state.
func Restore(assigned map[string]string, cursor int) *Colors {
	c := NewColors()
	for k, v := range assigned {
		c.assigned[k] = v
	}
	if cursor > 0 {
		c.cursor = cursor
	}
	return c
}

// Assigned reports the color for key without assigning one.
func (c *Colors) Assigned(key string) (string, bool) {
	color, ok := c.assigned[key]
	return color, ok
}

// Len returns the number of keys with an assigned color.
func (c *Colors) Len() int {
	return len(c.assigned)
}
