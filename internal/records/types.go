package records

import "strconv"

// Placeholder is shown for any field that has no value.
const Placeholder = "-"

// Column names of the post_job and find_job sheets after normalization.
const (
	colJobID       = "job_id"
	colFindJobID   = "findjob_id"
	colJobType     = "job_type"
	colJobDetail   = "job_detail"
	colSkills      = "skills"
	colJobDate     = "job_date"
	colStartTime   = "start_time"
	colEndTime     = "end_time"
	colJobAddress  = "job_address"
	colProvince    = "province"
	colDistrict    = "district"
	colSubdistrict = "subdistrict"
	colStartSalary = "start_salary"
	colRangeSalary = "range_salary"
	colSalary      = "salary"
)

// Location is the province/district/subdistrict triple every record carries.
type Location struct {
	Province    string `json:"province"`
	District    string `json:"district"`
	Subdistrict string `json:"subdistrict"`
}

// String renders the location as "province/district/subdistrict".
func (l Location) String() string {
	return l.Province + "/" + l.District + "/" + l.Subdistrict
}

// JobPosting is a job offer submitted by a user to the post_job sheet.
type JobPosting struct {
	Ordinal     int      `json:"-"`
	JobID       string   `json:"job_id"`
	JobType     string   `json:"job_type"`
	JobDetail   string   `json:"job_detail"`
	JobDate     string   `json:"job_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	JobAddress  *string  `json:"job_address,omitempty"`
	Location    Location `json:"location"`
	StartSalary *string  `json:"start_salary,omitempty"`
	RangeSalary *string  `json:"range_salary,omitempty"`
	Salary      *string  `json:"salary,omitempty"`
	Email       string   `json:"email"`
}

// JobSearch is a request for work submitted by a user to the find_job sheet.
type JobSearch struct {
	Ordinal     int      `json:"-"`
	FindJobID   string   `json:"findjob_id"`
	JobType     string   `json:"job_type"`
	Skills      string   `json:"skills"`
	JobDate     string   `json:"job_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Location    Location `json:"location"`
	StartSalary *string  `json:"start_salary,omitempty"`
	RangeSalary *string  `json:"range_salary,omitempty"`
	Email       string   `json:"email"`
}

// ParsePosting reads a JobPosting from a normalized row. ordinal is the
// 1-based position of the row among the owner's postings.
func ParsePosting(r Row, ordinal int) JobPosting {
	return JobPosting{
		Ordinal:     ordinal,
		JobID:       r.Get(colJobID),
		JobType:     r.Get(colJobType),
		JobDetail:   r.Get(colJobDetail),
		JobDate:     r.Get(colJobDate),
		StartTime:   r.Get(colStartTime),
		EndTime:     r.Get(colEndTime),
		JobAddress:  r.Present(colJobAddress),
		Location:    parseLocation(r),
		StartSalary: r.Optional(colStartSalary),
		RangeSalary: r.Optional(colRangeSalary),
		Salary:      r.Optional(colSalary),
		Email:       r.Get(EmailColumn),
	}
}

// ParseSearch reads a JobSearch from a normalized row. ordinal is the
// 1-based position of the row among the owner's searches.
func ParseSearch(r Row, ordinal int) JobSearch {
	return JobSearch{
		Ordinal:     ordinal,
		FindJobID:   r.Get(colFindJobID),
		JobType:     r.Get(colJobType),
		Skills:      r.Get(colSkills),
		JobDate:     r.Get(colJobDate),
		StartTime:   r.Get(colStartTime),
		EndTime:     r.Get(colEndTime),
		Location:    parseLocation(r),
		StartSalary: r.Optional(colStartSalary),
		RangeSalary: r.Optional(colRangeSalary),
		Email:       r.Get(EmailColumn),
	}
}

func parseLocation(r Row) Location {
	return Location{
		Province:    r.Get(colProvince),
		District:    r.Get(colDistrict),
		Subdistrict: r.Get(colSubdistrict),
	}
}

// orPlaceholder returns s, or Placeholder when s is empty.
func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// optionalOrPlaceholder dereferences s, or returns Placeholder when nil.
func optionalOrPlaceholder(s *string) string {
	if s == nil {
		return Placeholder
	}
	return *s
}

// idOrOrdinal returns id, or the ordinal as text when the sheet has no id.
func idOrOrdinal(id string, ordinal int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(ordinal)
}
