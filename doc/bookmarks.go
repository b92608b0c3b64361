package doc

import (
	"sort"
	"strconv"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const fbkfSize = 4

// Bookmark is a named CP range.
type Bookmark struct {
	Name    string
	Anchor  string // sanitized name used for output anchors
	StartCP uint32
	LimitCP uint32
}

// BookmarkTable holds the bookmarks sorted by start CP.
type BookmarkTable struct {
	marks    []Bookmark
	byName   map[string]int
	byAnchor map[string]int
}

func parseBookmarks(names, bkf, bkl []byte, diag *Diagnostics, log *zap.Logger) *BookmarkTable {
	bt := &BookmarkTable{byName: make(map[string]int), byAnchor: make(map[string]int)}
	if len(names) == 0 || len(bkf) == 0 {
		return bt
	}
	st, err := bintable.ParseStringtable(names)
	if err != nil {
		diag.BadTables++
		log.Debug("Bookmark names unreadable", zap.Error(err))
		return bt
	}
	starts, err := bintable.ParsePlcf(bkf, fbkfSize)
	if err != nil {
		diag.BadTables++
		log.Debug("Bookmark starts unreadable", zap.Error(err))
		return bt
	}
	limits, err := bintable.ParsePlcf(bkl, 0)
	if err != nil {
		diag.BadTables++
		log.Debug("Bookmark limits unreadable", zap.Error(err))
		return bt
	}

	for i := 0; i < starts.Len() && i < len(st.Strings); i++ {
		name := st.Strings[i]
		if name == "" || name == "_GoBack" {
			continue
		}
		b := Bookmark{Name: name, StartCP: starts.Pos[i]}
		b.LimitCP = b.StartCP
		if ibkl := int(bintable.U16At(starts.Data(i), 0)); ibkl < len(limits.Pos) {
			b.LimitCP = limits.Pos[ibkl]
		}
		b.Anchor = slug.Make(name)
		if b.Anchor == "" {
			b.Anchor = "bookmark"
		}
		if _, taken := bt.byAnchor[b.Anchor]; taken {
			b.Anchor = slug.Make(b.Anchor + "-" + strconv.Itoa(i))
		}
		bt.marks = append(bt.marks, b)
		bt.byAnchor[b.Anchor] = len(bt.marks) - 1
	}
	sort.SliceStable(bt.marks, func(i, j int) bool { return bt.marks[i].StartCP < bt.marks[j].StartCP })
	for i, b := range bt.marks {
		bt.byName[b.Name] = i
		bt.byAnchor[b.Anchor] = i
	}
	return bt
}

// Bookmarks returns all bookmarks in CP order.
func (bt *BookmarkTable) Bookmarks() []Bookmark { return bt.marks }

// Lookup returns the bookmark with the given name or anchor.
func (bt *BookmarkTable) Lookup(name string) (Bookmark, bool) {
	if i, ok := bt.byName[name]; ok {
		return bt.marks[i], true
	}
	if i, ok := bt.byAnchor[name]; ok {
		return bt.marks[i], true
	}
	return Bookmark{}, false
}

// Resolve returns the start CP of a bookmark; unknown names resolve to the
// top of the document.
func (bt *BookmarkTable) Resolve(name string) uint32 {
	if b, ok := bt.Lookup(name); ok {
		return b.StartCP
	}
	return 0
}

// startingIn returns the anchors of bookmarks starting in [start, limit).
func (bt *BookmarkTable) startingIn(start, limit uint32) []string {
	i := sort.Search(len(bt.marks), func(i int) bool { return bt.marks[i].StartCP >= start })
	var out []string
	for ; i < len(bt.marks) && bt.marks[i].StartCP < limit; i++ {
		out = append(out, bt.marks[i].Anchor)
	}
	return out
}
