package normalizer

// keywordMatch is one (keyword, value) pair in an ordered lookup
// table. The tables are slices, not maps: multiple keywords can match
// the same text, so scan order has to be fixed for the first match
// to be deterministic.
type keywordMatch struct {
	Keyword string
	Value   string
}

const (
	defaultRegion   = "Αττική"
	defaultCategory = "Cultural"
	fallbackColor   = "#7F8C8D"
	defaultCapacity = 100
)

// regionTable maps location/venue keywords to Greek regions.
var regionTable = []keywordMatch{
	{"athens", "Αττική"},
	{"attiki", "Αττική"},
	{"attica", "Αττική"},
	{"thessaloniki", "Κεντρική Μακεδονία"},
	{"macedonia", "Κεντρική Μακεδονία"},
	{"crete", "Κρήτη"},
	{"patras", "Δυτική Ελλάδα"},
	{"ioannina", "Ήπειρος"},
	{"iwannina", "Ήπειρος"},
	{"larissa", "Θεσσαλία"},
	{"volos", "Θεσσαλία"},
	{"heraklion", "Κρήτη"},
	{"rhodes", "Νότιο Αιγαίο"},
	{"corfu", "Ιόνια Νησιά"},
	{"mykonos", "Νότιο Αιγαίο"},
	{"santorini", "Νότιο Αιγαίο"},
}

// categoryTable maps raw category keywords (Greek and English) to the
// fixed category set.
var categoryTable = []keywordMatch{
	{"theater", "Theater"},
	{"theatre", "Theater"},
	{"θέατρο", "Theater"},
	{"music", "Music"},
	{"μουσική", "Music"},
	{"concert", "Concert"},
	{"συναυλία", "Concert"},
	{"cinema", "Cinema"},
	{"κινηματογράφος", "Cinema"},
	{"movie", "Cinema"},
	{"sports", "Sports"},
	{"αθλητισμός", "Sports"},
	{"dance", "Dance"},
	{"χορός", "Dance"},
	{"exhibition", "Exhibition"},
	{"έκθεση", "Exhibition"},
	{"festival", "Festival"},
	{"φεστιβάλ", "Festival"},
	{"conference", "Conference"},
	{"συνέδριο", "Conference"},
	{"cultural", "Cultural"},
	{"πολιτιστικό", "Cultural"},
}

// categoryColors carries the display color for each category.
var categoryColors = map[string]string{
	"Cultural":   "#F39C12",
	"Theater":    "#9B59B6",
	"Music":      "#E74C3C",
	"Sports":     "#3498DB",
	"Cinema":     "#1ABC9C",
	"Festival":   "#E67E22",
	"Exhibition": "#95A5A6",
	"Conference": "#34495E",
	"Dance":      "#9B59B6",
	"Concert":    "#E74C3C",
	"Other":      "#7F8C8D",
}

// freeTokens mark a price string as free admission.
var freeTokens = []string{"free", "δωρεάν", "ελεύθερη"}

// sourceNames maps adapter keys to their display names.
var sourceNames = map[string]string{
	"culture_gov":  "Culture.gov.gr",
	"visitgreece":  "VisitGreece.gr",
	"pigolampides": "Pigolampides.gr",
	"more_events":  "More.com",
}
