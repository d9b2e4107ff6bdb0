package dataset

import "fmt"

// NotFoundError reports a lookup for a school or region that does not
// exist in the dataset.
type NotFoundError struct {
	Kind string // "school" or "region"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in dataset", e.Kind, e.ID)
}

// EmptyDatasetError reports a load where no valid rows survived
// validation. Individual row rejections are never fatal; an entirely
// empty result is.
type EmptyDatasetError struct {
	Total    int // raw rows seen
	Rejected int // rows rejected by validation
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no valid rows in dataset (%d rows seen, %d rejected)", e.Total, e.Rejected)
}
