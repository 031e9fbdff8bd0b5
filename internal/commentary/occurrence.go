package commentary

// Category classifies an Occurrence.
type Category int

const (
	CategoryTimestamp Category = iota
	CategoryEventType
	CategoryPersonEntity
	CategoryOrgEntity
)

func (c Category) String() string {
	switch c {
	case CategoryTimestamp:
		return "timestamp"
	case CategoryEventType:
		return "event_type"
	case CategoryPersonEntity:
		return "person"
	case CategoryOrgEntity:
		return "org"
	default:
		return "unknown"
	}
}

// Label returns the entity label used by entity recognizers (PERSON, ORG).
func (c Category) Label() string {
	switch c {
	case CategoryPersonEntity:
		return "PERSON"
	case CategoryOrgEntity:
		return "ORG"
	default:
		return ""
	}
}

// Occurrence is a single matched span of commentary text. Start and End are
// character offsets into the analyzed text, End exclusive.
type Occurrence struct {
	Text     string
	Category Category
	Start    int
	End      int
	// Payload holds the event tag for event occurrences and the matched text
	// for everything else.
	Payload string
}

// near reports whether o falls inside the proximity window around anchor:
// either its start is within window of the anchor's start or its end is
// within window of the anchor's end.
func (o Occurrence) near(anchor Occurrence, window int) bool {
	return abs(o.Start-anchor.Start) <= window || abs(o.End-anchor.End) <= window
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
