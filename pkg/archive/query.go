package archive

// MatchAnyTerm is the sentinel search term meaning "no term constraint".
// The upstream archive treats "." as match-any.
const MatchAnyTerm = "."

// EpochDate is the default after-date lower bound (no filtering).
const EpochDate = "1970-01-01"

// Active status filter values accepted by the archive.
const (
	StatusAll      = "ALL"
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Query describes one traversal of the ads archive. It is built once per
// request by the query builder and never mutated afterwards.
type Query struct {
	AccessToken   string
	Fields        []string
	SearchTerm    string
	Countries     []string
	SearchPageIDs []string
	ActiveStatus  string
	AfterDate     string
	PageLimit     int
	RetryLimit    int
}
