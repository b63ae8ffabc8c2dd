// Package course holds the catalog record consumed by the indexing pipeline.
package course

import "time"

// Course is a single catalog record as read from the catalog store.
// Level may be blank: it is an optional attribute of the source schema.
type Course struct {
	ID            int64
	Name          string
	Description   string
	CategoryID    int64
	SubCategoryID int64
	Language      string
	Source        string
	Instructor    string
	Level         string
	IsValid       bool
	ModifiedAt    time.Time
}
