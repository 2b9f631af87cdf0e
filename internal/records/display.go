package records

// RangeSeparator joins the two ends of a salary or time range.
const RangeSeparator = " – "

// PostingDisplay holds the resolved fields of one posting card.
type PostingDisplay struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	JobType   string `json:"job_type"`
	Detail    string `json:"detail"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Address   string `json:"address"`
	Salary    string `json:"salary"`
}

// Time renders the working hours as "start – end".
func (d PostingDisplay) Time() string {
	return d.StartTime + RangeSeparator + d.EndTime
}

// SearchDisplay holds the resolved fields of one search card.
type SearchDisplay struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	JobType   string `json:"job_type"`
	Skills    string `json:"skills"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Address   string `json:"address"`
	MinSalary string `json:"min_salary"`
	MaxSalary string `json:"max_salary"`
}

// Time renders the requested hours as "start – end".
func (d SearchDisplay) Time() string {
	return d.StartTime + RangeSeparator + d.EndTime
}

// PostingAddress is job_address when set, otherwise the location triple.
func PostingAddress(p JobPosting) string {
	if p.JobAddress != nil {
		return *p.JobAddress
	}
	return p.Location.String()
}

// PostingSalary resolves the salary text of a posting. A start/range pair
// wins when either end is set; otherwise the flat salary is used.
func PostingSalary(p JobPosting) string {
	if p.StartSalary != nil || p.RangeSalary != nil {
		return optionalOrPlaceholder(p.StartSalary) + RangeSeparator + optionalOrPlaceholder(p.RangeSalary)
	}
	return optionalOrPlaceholder(p.Salary)
}

// DerivePosting resolves the display fields of a posting. index is the
// 0-based position among the owner's postings.
func DerivePosting(p JobPosting, index int) PostingDisplay {
	return PostingDisplay{
		Index:     index,
		ID:        idOrOrdinal(p.JobID, p.Ordinal),
		JobType:   orPlaceholder(p.JobType),
		Detail:    orPlaceholder(p.JobDetail),
		Date:      orPlaceholder(p.JobDate),
		StartTime: orPlaceholder(p.StartTime),
		EndTime:   orPlaceholder(p.EndTime),
		Address:   PostingAddress(p),
		Salary:    PostingSalary(p),
	}
}

// DeriveSearch resolves the display fields of a search. Searches have no
// flat address, so the location triple is always used.
func DeriveSearch(s JobSearch, index int) SearchDisplay {
	return SearchDisplay{
		Index:     index,
		ID:        idOrOrdinal(s.FindJobID, s.Ordinal),
		JobType:   orPlaceholder(s.JobType),
		Skills:    orPlaceholder(s.Skills),
		Date:      orPlaceholder(s.JobDate),
		StartTime: orPlaceholder(s.StartTime),
		EndTime:   orPlaceholder(s.EndTime),
		Address:   s.Location.String(),
		MinSalary: optionalOrPlaceholder(s.StartSalary),
		MaxSalary: optionalOrPlaceholder(s.RangeSalary),
	}
}
