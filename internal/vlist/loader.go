package vlist

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/google/uuid"
)

type loadState int

const (
	loadIdle loadState = iota
	loadFetching
)

// FetchFunc returns one page of items. page is zero-based and managed by the
// Loader; hasMore signals whether another page exists after this one
type FetchFunc func(ctx context.Context, page int) (items []Renderable, hasMore bool, err error)

// LoadedMsg is delivered when a fetch settles, successfully or not. ID ties
// the message to the request that produced it so late arrivals from an
// abandoned loader are ignored
type LoadedMsg struct {
	ID      string
	Items   []Renderable
	HasMore bool
	Err     error
}

// Loader bridges scrolling to asynchronous page fetching. It is a two-state
// machine, idle or fetching, and that state is the only re-entrancy guard:
// at most one fetch is in flight, and scroll events arriving while fetching
// do not start another. A failed fetch returns the loader to idle so the
// next qualifying scroll retries
type Loader struct {
	ctx        context.Context
	fetch      FetchFunc
	state      loadState
	hasMore    bool
	page       int
	threshold  int
	inFlightID string
}

// NewLoader creates a loader that triggers a fetch once fewer than
// thresholdRows rows remain below the viewport
func NewLoader(ctx context.Context, fetch FetchFunc, thresholdRows int) *Loader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Loader{
		ctx:       ctx,
		fetch:     fetch,
		hasMore:   true,
		threshold: max(0, thresholdRows),
	}
}

func (l *Loader) Fetching() bool {
	return l != nil && l.state == loadFetching
}

func (l *Loader) HasMore() bool {
	return l != nil && l.hasMore
}

// Page returns the zero-based index of the next page to fetch
func (l *Loader) Page() int {
	if l == nil {
		return 0
	}
	return l.page
}

// LoadCmd starts fetching the next page unless a fetch is already in flight
// or the source is exhausted. It returns nil when no fetch was started
func (l *Loader) LoadCmd() tea.Cmd {
	if l == nil || l.fetch == nil || l.state == loadFetching || !l.hasMore {
		return nil
	}
	l.state = loadFetching
	id := uuid.NewString()
	l.inFlightID = id
	ctx, page, fetch := l.ctx, l.page, l.fetch
	return func() tea.Msg {
		items, hasMore, err := fetch(ctx, page)
		return LoadedMsg{ID: id, Items: items, HasMore: hasMore, Err: err}
	}
}

// MaybeLoad starts a fetch when the remaining rows below the viewport have
// dropped below the threshold
func (l *Loader) MaybeLoad(rowsBelow int) tea.Cmd {
	if l == nil || rowsBelow > l.threshold {
		return nil
	}
	return l.LoadCmd()
}

// Settle transitions the loader back to idle. It returns false when the
// message does not match the in-flight request, in which case the caller
// must ignore the message entirely
func (l *Loader) Settle(msg LoadedMsg) bool {
	if l == nil || l.state != loadFetching || msg.ID != l.inFlightID {
		return false
	}
	l.state = loadIdle
	l.inFlightID = ""
	if msg.Err != nil {
		return true
	}
	l.page++
	l.hasMore = msg.HasMore
	return true
}
