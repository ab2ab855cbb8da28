package rowstore

import "fmt"

// ID identifies a row for the lifetime of a Store. IDs start at 1 and are
// never reused.
type ID int

// Row is one labeled row. Rows are replaced, not edited, when their label
// changes; Selected is the only field the store writes in place.
type Row struct {
	ID       ID
	Label    string
	Selected bool
}

func (r Row) String() string {
	if r.Selected {
		return fmt.Sprintf("%d %s *", r.ID, r.Label)
	}
	return fmt.Sprintf("%d %s", r.ID, r.Label)
}
