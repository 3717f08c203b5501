package knowledge

// Category groups entries by the kind of advisory they carry.
type Category string

const (
	CategoryPest      Category = "pest"
	CategoryDisease   Category = "disease"
	CategoryNutrition Category = "nutrition"
	CategoryScheme    Category = "scheme"
	CategoryOrganic   Category = "organic"
)

// Severity indicates how urgent the underlying problem usually is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Entry is a single topic in the advisory knowledge table.
// Optional fields are nil slices when not applicable (e.g. scheme entries
// carry Benefits/Eligibility instead of Symptoms/Prevention).
type Entry struct {
	Topic       string
	Crops       []string
	Solution    string
	Severity    Severity
	Category    Category
	Symptoms    []string
	Prevention  []string
	Benefits    []string
	Eligibility []string
}
