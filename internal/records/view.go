package records

import "fmt"

// View is everything the My Jobs page shows for one user.
type View struct {
	Email    string           `json:"email"`
	Postings []PostingDisplay `json:"postings"`
	Searches []SearchDisplay  `json:"searches"`
}

// HasPostings reports whether the user has posted any job.
func (v *View) HasPostings() bool {
	return v != nil && len(v.Postings) > 0
}

// HasSearches reports whether the user has searched for any job.
func (v *View) HasSearches() bool {
	return v != nil && len(v.Searches) > 0
}

// OwnedPostings normalizes the post_job table, keeps the owner's rows and
// parses them in sheet order.
func OwnedPostings(postTable *Table, email string) []JobPosting {
	owned := FilterByOwner(NormalizeHeaders(postTable), email)
	postings := make([]JobPosting, 0, owned.Len())
	for i := range owned.Rows {
		postings = append(postings, ParsePosting(owned.Row(i), i+1))
	}
	return postings
}

// OwnedSearches normalizes the find_job table, keeps the owner's rows and
// parses them in sheet order.
func OwnedSearches(findTable *Table, email string) []JobSearch {
	owned := FilterByOwner(NormalizeHeaders(findTable), email)
	searches := make([]JobSearch, 0, owned.Len())
	for i := range owned.Rows {
		searches = append(searches, ParseSearch(owned.Row(i), i+1))
	}
	return searches
}

// BuildView derives the display records for email from the raw post_job and
// find_job tables. It never fails: absent values become Placeholder and a
// user without records gets empty slices.
func BuildView(postTable, findTable *Table, email string) *View {
	postings := OwnedPostings(postTable, email)
	searches := OwnedSearches(findTable, email)

	view := &View{
		Email:    email,
		Postings: make([]PostingDisplay, 0, len(postings)),
		Searches: make([]SearchDisplay, 0, len(searches)),
	}
	for i, p := range postings {
		view.Postings = append(view.Postings, DerivePosting(p, i))
	}
	for i, s := range searches {
		view.Searches = append(view.Searches, DeriveSearch(s, i))
	}
	return view
}

// SelectionKind names the record type a Selection points at.
type SelectionKind string

// KindPosting marks a selected job posting.
const KindPosting SelectionKind = "posting"

// Selection identifies the record a user picked for the matching page.
// Index is the 0-based position among the owner's records of that kind.
type Selection struct {
	Kind     SelectionKind `json:"kind"`
	Index    int           `json:"index"`
	RecordID string        `json:"record_id"`
}

// ErrSelectionOutOfRange indicates a selection index with no matching record
type ErrSelectionOutOfRange struct {
	Index int
	Count int
}

func (e *ErrSelectionOutOfRange) Error() string {
	return fmt.Sprintf("selection index %d out of range (have %d records)", e.Index, e.Count)
}

// SelectPosting resolves the posting at index in view.
func SelectPosting(view *View, index int) (Selection, error) {
	count := 0
	if view != nil {
		count = len(view.Postings)
	}
	if index < 0 || index >= count {
		return Selection{}, &ErrSelectionOutOfRange{Index: index, Count: count}
	}
	return Selection{
		Kind:     KindPosting,
		Index:    index,
		RecordID: view.Postings[index].ID,
	}, nil
}
