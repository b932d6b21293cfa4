package activity

// DefaultQueryLimit caps query results when no limit is supplied.
const DefaultQueryLimit = 100

// QueryOptions provides filtering and pagination options for querying records.
// User and ActivityType are exact, case-sensitive matches. StartTime and
// EndTime are compared lexicographically against the record timestamp; both
// boundaries include exact matches.
type QueryOptions struct {
	User         string
	ActivityType string
	StartTime    string
	EndTime      string
	Limit        int
	Offset       int
}

// Normalized applies pagination defaults: a zero Limit means unset and becomes
// DefaultQueryLimit; negative Limit or Offset clamp to zero (a negative limit
// yields an empty result).
func (o QueryOptions) Normalized() QueryOptions {
	if o.Limit == 0 {
		o.Limit = DefaultQueryLimit
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
