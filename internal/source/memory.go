package source

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/google/uuid"
)

// MemorySource serves pages from records held in memory. Records are kept
// in a red-black tree keyed by sequence number so they can be added in any
// order and always page out in order. Load runs on the program's command
// goroutines, hence the lock
type MemorySource struct {
	mu      sync.Mutex
	records *redblacktree.Tree
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		records: redblacktree.NewWith(utils.Int64Comparator),
	}
}

// Add inserts records, which may arrive out of sequence order
func (s *MemorySource) Add(records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records.Put(r.Seq, r)
	}
}

func (s *MemorySource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Size()
}

func (s *MemorySource) Load(ctx context.Context, page, size int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if page < 0 || size <= 0 {
		return Page{}, fmt.Errorf("invalid page %d with size %d", page, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	skip := page * size
	var records []Record
	i := 0
	it := s.records.Iterator()
	for it.Next() && len(records) < size {
		if i >= skip {
			records = append(records, it.Value().(Record))
		}
		i++
	}
	return Page{
		Records: records,
		HasMore: skip+size < s.records.Size(),
	}, nil
}

var sampleWords = []string{
	"signal", "packet", "window", "offset", "stream", "buffer", "cursor",
	"replay", "ledger", "bucket", "thread", "anchor", "beacon", "vector",
	"margin", "branch", "filter", "digest", "socket", "marker",
}

// GenerateRecords produces n sample records with deterministic bodies of
// varying shapes: most are single lines, some span multiple lines and some
// are long enough to wrap, so estimated heights get exercised
func GenerateRecords(n int) []Record {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := make([]Record, 0, max(0, n))
	for i := 1; i <= n; i++ {
		records = append(records, Record{
			Seq:       int64(i),
			Key:       uuid.NewString(),
			Body:      generateBody(i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	return records
}

func generateBody(seq int) string {
	numWords := 3 + seq%11
	words := make([]string, 0, numWords)
	for w := 0; w < numWords; w++ {
		words = append(words, sampleWords[(seq+w*7)%len(sampleWords)])
	}
	body := strings.Join(words, " ")
	if seq%13 == 0 {
		body = strings.Repeat(body+" ", 4)
		body = strings.TrimSpace(body)
	}
	if seq%7 == 0 {
		body += "\ndetail: " + sampleWords[seq%len(sampleWords)]
	}
	return body
}
