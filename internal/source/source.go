package source

import (
	"context"
	"time"
)

// Record is one row of the browsed data set. Seq orders records, Key is a
// stable unique identifier, Body is the displayed content and may span
// multiple lines
type Record struct {
	Seq       int64
	Key       string
	Body      string
	CreatedAt time.Time
}

// Page is one fetched slice of records. HasMore signals whether another
// page exists after this one
type Page struct {
	Records []Record
	HasMore bool
}

// Pager loads ordered pages of records. page is zero-based
type Pager interface {
	Load(ctx context.Context, page, size int) (Page, error)
}
