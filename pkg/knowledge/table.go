package knowledge

// Table is the static in-memory knowledge source. Entries keep their
// insertion order; the ranker relies on it for deterministic tie-breaking.
// A Table is read-only after construction and safe for concurrent use.
type Table struct {
	entries []Entry
	byTopic map[string]int
}

// NewTable builds a table from the given entries, preserving order.
func NewTable(entries []Entry) *Table {
	byTopic := make(map[string]int, len(entries))
	for i, e := range entries {
		byTopic[e.Topic] = i
	}
	return &Table{entries: entries, byTopic: byTopic}
}

// Entries returns the entries in insertion order. Callers must not mutate.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Lookup returns the entry for a topic, if present.
func (t *Table) Lookup(topic string) (Entry, bool) {
	if i, ok := t.byTopic[topic]; ok {
		return t.entries[i], true
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// DefaultTable returns the built-in agricultural knowledge table.
func DefaultTable() *Table {
	return NewTable([]Entry{
		{
			Topic:      "aphids",
			Crops:      []string{"mustard", "wheat", "cotton"},
			Solution:   "Spray neem oil solution (5ml per liter) or use imidacloprid 17.8% SL @ 0.5ml/liter. Apply during early morning or evening.",
			Severity:   SeverityMedium,
			Category:   CategoryPest,
			Symptoms:   []string{"curled leaves", "sticky honeydew", "yellowing"},
			Prevention: []string{"regular monitoring", "beneficial insects", "proper spacing"},
		},
		{
			Topic:      "leaf spot",
			Crops:      []string{"tomato", "potato"},
			Solution:   "Remove infected leaves. Spray mancozeb 75% WP @ 2g/liter or copper oxychloride @ 3g/liter at 10-day intervals.",
			Severity:   SeverityHigh,
			Category:   CategoryDisease,
			Symptoms:   []string{"brown spots", "leaf yellowing", "defoliation"},
			Prevention: []string{"crop rotation", "proper drainage", "resistant varieties"},
		},
		{
			Topic:      "whitefly",
			Crops:      []string{"cotton", "tomato"},
			Solution:   "Use thiamethoxam 25% WG @ 0.2g/liter or spray neem-based pesticides. Ensure coverage on leaf undersides.",
			Severity:   SeverityMedium,
			Category:   CategoryPest,
			Symptoms:   []string{"white flying insects", "yellowing leaves", "sooty mold"},
			Prevention: []string{"yellow sticky traps", "reflective mulch", "companion planting"},
		},
		{
			Topic:      "fruit borer",
			Crops:      []string{"brinjal", "tomato"},
			Solution:   "Install pheromone traps. Spray spinosad 45% SC @ 0.3ml/liter or use Bacillus thuringiensis.",
			Severity:   SeverityHigh,
			Category:   CategoryPest,
			Symptoms:   []string{"holes in fruits", "larvae inside", "fruit drop"},
			Prevention: []string{"pheromone traps", "clean cultivation", "timely harvest"},
		},
		{
			Topic:      "fertilizer",
			Crops:      []string{"maize", "wheat", "rice"},
			Solution:   "Apply DAP (Diammonium Phosphate) @ 50kg/acre during flowering. Supplement with potash for better yield.",
			Severity:   SeverityLow,
			Category:   CategoryNutrition,
			Symptoms:   []string{"poor growth", "yellowing", "low yield"},
			Prevention: []string{"soil testing", "balanced nutrition", "organic matter"},
		},
		{
			Topic:       "pm kisan",
			Crops:       []string{"all"},
			Solution:    "Visit PM Kisan portal (pmkisan.gov.in), register with Aadhaar, land records, and bank details.",
			Severity:    SeverityLow,
			Category:    CategoryScheme,
			Benefits:    []string{"₹6000 per year", "3 installments", "direct transfer"},
			Eligibility: []string{"small farmers", "marginal farmers", "up to 2 hectares"},
		},
	})
}
