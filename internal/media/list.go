// Package media keeps the ordered media gallery of an ad: validation of incoming
// files, drag-and-drop reordering and the main-item bookkeeping.
//
// A List is not safe for concurrent use; callers build one per request from the
// persisted rows, mutate it and persist the result.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

var (
	ErrTooManyItems    = errors.New("too many media items")
	ErrItemNotFound    = errors.New("media item not found")
	ErrIndexOutOfRange = errors.New("media index out of range")
	ErrNoFiles         = errors.New("no files to add")
)

// Item is one entry of the gallery.
type Item struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AltText     string `json:"alt_text"`
	IsMain      bool   `json:"is_main"`
	Type        Type   `json:"type"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	Position    int    `json:"position"`

	// Key names the stored object behind URL when the list owns one.
	Key string `json:"-"`
	// Local items were created for preview and still hold the incoming file.
	Local bool  `json:"local,omitempty"`
	File  *File `json:"-"`
}

// File is an incoming upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type Limits struct {
	MaxItems     int
	MaxImageSize int64
	MaxVideoSize int64
	AllowMain    bool
}

// UploadFunc persists files and returns the hosted items in the same order.
type UploadFunc func(ctx context.Context, files []File) ([]Item, error)

// Releaser frees the backing object of an item that left the list.
type Releaser interface {
	Release(ctx context.Context, item Item) error
}

type ReleaserFunc func(ctx context.Context, item Item) error

func (f ReleaserFunc) Release(ctx context.Context, item Item) error { return f(ctx, item) }

type Option func(*List)

// WithUploader routes accepted files through fn instead of local preview items.
func WithUploader(fn UploadFunc) Option {
	return func(l *List) { l.upload = fn }
}

func WithReleaser(r Releaser) Option {
	return func(l *List) { l.releaser = r }
}

// List is an ordered media gallery.
type List struct {
	limits   Limits
	items    []Item
	upload   UploadFunc
	releaser Releaser
}

func NewList(limits Limits, opts ...Option) *List {
	l := &List{limits: limits}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the contents with persisted items. Items are expected in position
// order; a main item that is not first is moved to the front.
func (l *List) Load(items []Item) {
	l.items = make([]Item, len(items))
	copy(l.items, items)

	if l.limits.AllowMain {
		for i := range l.items {
			if l.items[i].IsMain && i > 0 {
				l.items = moveItem(l.items, i, 0)
				break
			}
		}
	}
	l.normalize()
}

func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int { return len(l.items) }

// Main returns the main item, if the list has one.
func (l *List) Main() (Item, bool) {
	for _, it := range l.items {
		if it.IsMain {
			return it, true
		}
	}
	return Item{}, false
}

// Add validates files and appends the accepted ones. Per-file problems come back
// as rejections; a batch that would overflow MaxItems is refused as a whole.
func (l *List) Add(ctx context.Context, files []File) ([]Item, []Rejection, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}

	var rejected []Rejection
	candidates := make([]File, 0, len(files))
	for _, f := range files {
		if _, ok := TypeOf(f.ContentType); !ok {
			rejected = append(rejected, Rejection{Name: f.Name, Reason: unsupportedTypeMessage(f)})
			continue
		}
		candidates = append(candidates, f)
	}

	if l.limits.MaxItems > 0 && len(l.items)+len(candidates) > l.limits.MaxItems {
		return nil, rejected, fmt.Errorf("%w: at most %d files are allowed", ErrTooManyItems, l.limits.MaxItems)
	}

	accepted := make([]File, 0, len(candidates))
	for _, f := range candidates {
		if reason := l.checkSize(f); reason != "" {
			rejected = append(rejected, Rejection{Name: f.Name, Reason: reason})
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) == 0 {
		return nil, rejected, nil
	}

	var added []Item
	if l.upload != nil {
		uploaded, err := l.upload(ctx, accepted)
		if err != nil {
			return nil, rejected, fmt.Errorf("upload media: %w", err)
		}
		added = uploaded
	} else {
		added = make([]Item, 0, len(accepted))
		for i := range accepted {
			added = append(added, localItem(accepted[i]))
		}
	}

	for i := range added {
		if added[i].ID == "" {
			added[i].ID = uuid.NewString()
		}
		added[i].IsMain = false
	}

	start := len(l.items)
	l.items = append(l.items, added...)
	l.normalize()

	return l.Items()[start:], rejected, nil
}

// Move is the drag-end reorder: the item at from ends up at to.
func (l *List) Move(from, to int) error {
	if from < 0 || from >= len(l.items) || to < 0 || to >= len(l.items) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	l.items = moveItem(l.items, from, to)
	l.normalize()
	return nil
}

// MoveByID moves the dragged item to the slot of the item it was dropped on.
func (l *List) MoveByID(activeID, overID string) error {
	from := l.indexOf(activeID)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, activeID)
	}
	to := l.indexOf(overID)
	if to < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, overID)
	}
	return l.Move(from, to)
}

// MakeMain moves the item to the front of the gallery.
func (l *List) MakeMain(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return l.Move(i, 0)
}

// Remove drops the item and releases whatever it owns. The removed item is
// returned so callers can clean up after persisting.
func (l *List) Remove(ctx context.Context, id string) (Item, error) {
	i := l.indexOf(id)
	if i < 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.normalize()

	if l.releaser != nil && (removed.Local || removed.Key != "") {
		if err := l.releaser.Release(ctx, removed); err != nil {
			return removed, fmt.Errorf("release media %s: %w", removed.ID, err)
		}
	}
	return removed, nil
}

func (l *List) SetAltText(id, text string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	l.items[i].AltText = text
	return nil
}

func (l *List) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// normalize is the only place that assigns IsMain and Position.
func (l *List) normalize() {
	for i := range l.items {
		l.items[i].Position = i
		l.items[i].IsMain = l.limits.AllowMain && i == 0
	}
}

func moveItem(items []Item, from, to int) []Item {
	moved := items[from]
	out := make([]Item, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	out = append(out[:to], append([]Item{moved}, out[to:]...)...)
	return out
}

func localItem(f File) Item {
	t, _ := TypeOf(f.ContentType)
	id := uuid.NewString()
	file := f
	return Item{
		ID:          id,
		URL:         "blob:" + id,
		AltText:     f.Name,
		Type:        t,
		ContentType: f.ContentType,
		Size:        f.Size,
		Local:       true,
		File:        &file,
	}
}
