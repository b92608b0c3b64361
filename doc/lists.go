package doc

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const (
	maxListLevels = 9
	lstfSize      = 28
	lvlfSize      = 28
	lfoSize       = 16
)

// Number formats (nfc).
const (
	NfcDecimal     = 0
	NfcUpperRoman  = 1
	NfcLowerRoman  = 2
	NfcUpperLetter = 3
	NfcLowerLetter = 4
	NfcOrdinal     = 5
	NfcLeadingZero = 22
	NfcBullet      = 23
	NfcNone        = 255
)

// ListLevel is one level of a list definition (LVL).
type ListLevel struct {
	StartAt      int32
	Nfc          uint8
	Jc           uint8
	Legal        bool
	NoRestart    bool
	RestartLimit uint8
	Follow       uint8 // 0 tab, 1 space, 2 nothing

	// Numbers holds the 1-based positions in Text of the level placeholders.
	Numbers [maxListLevels]uint8
	// Text is the level text template; code units below 9 at the positions
	// in Numbers stand for the number of that level.
	Text []uint16

	PapGrpprl []byte
	ChpGrpprl []byte
}

// Ordered reports whether the level is numbered rather than bulleted.
func (l *ListLevel) Ordered() bool { return l.Nfc != NfcBullet && l.Nfc != NfcNone }

// ListData is an abstract list definition (LSTF plus its levels).
type ListData struct {
	Lsid       int32
	Tplc       int32
	Simple     bool
	Hybrid     bool
	StyleIstds [maxListLevels]uint16
	Levels     []*ListLevel
}

// LevelOverride overrides the start value or the whole definition of one
// level for a list override (LFOLVL).
type LevelOverride struct {
	Level      uint8
	StartAt    int32
	HasStart   bool
	Formatting bool
	Lvl        *ListLevel
}

// ListOverride binds a list definition with per-level overrides (LFO). It
// collects the paragraphs numbered through it during analysis.
type ListOverride struct {
	Lsid      int32
	List      *ListData
	Overrides []LevelOverride

	Paragraphs []PartID
}

// override returns the level override that applies to level n. Simple lists
// take any override regardless of its level.
func (o *ListOverride) override(n int) *LevelOverride {
	for i := range o.Overrides {
		lo := &o.Overrides[i]
		if int(lo.Level) == n || (o.List != nil && o.List.Simple) {
			return lo
		}
	}
	return nil
}

// GetLevel returns the definition of level n, or nil when neither the
// override nor the list defines it.
func (o *ListOverride) GetLevel(n int) *ListLevel {
	if lo := o.override(n); lo != nil && lo.Formatting && lo.Lvl != nil {
		return lo.Lvl
	}
	if o.List == nil || len(o.List.Levels) == 0 {
		return nil
	}
	if n >= len(o.List.Levels) {
		n = len(o.List.Levels) - 1
	}
	return o.List.Levels[n]
}

// GetStartAt returns the start value of level n.
func (o *ListOverride) GetStartAt(n int) int32 {
	if lo := o.override(n); lo != nil {
		switch {
		case lo.HasStart:
			return lo.StartAt
		case lo.Formatting && lo.Lvl != nil:
			return lo.Lvl.StartAt
		}
	}
	if l := o.GetLevel(n); l != nil {
		return l.StartAt
	}
	return 1
}

// GetRestartAfter returns the deepest level after which level n restarts:
// numbering a level at or above it resets n. Level 0 never restarts.
func (o *ListOverride) GetRestartAfter(n int) int {
	if l := o.GetLevel(n); l != nil && l.NoRestart {
		return int(l.RestartLimit) - 1
	}
	return n - 1
}

// ListTable holds the list definitions and overrides of a document.
type ListTable struct {
	Lists     []*ListData
	Overrides []*ListOverride
}

// Override returns the override for a 1-based ilfo; 0, negative and out of
// range values mean the paragraph is not numbered.
func (lt *ListTable) Override(ilfo int16) (*ListOverride, bool) {
	if lt == nil || ilfo <= 0 || int(ilfo) > len(lt.Overrides) {
		return nil, false
	}
	return lt.Overrides[ilfo-1], true
}

// parseLists decodes the PlfLst at the start of b together with the LVLs
// that follow it, and the PlfLfo in lfo.
func parseLists(b, lfo []byte, diag *Diagnostics, log *zap.Logger) *ListTable {
	lt := &ListTable{}
	c := bintable.NewCursor(b)
	cLst, err := c.I16()
	if err != nil || cLst < 0 {
		return lt
	}
	for i := 0; i < int(cLst); i++ {
		raw, err := c.Bytes(lstfSize)
		if err != nil {
			diag.BadTables++
			log.Debug("List definitions truncated", zap.Int("index", i))
			return lt
		}
		ld := &ListData{
			Lsid:   int32(bintable.U32At(raw, 0)),
			Tplc:   int32(bintable.U32At(raw, 4)),
			Simple: raw[26]&0x01 != 0,
			Hybrid: raw[26]&0x10 != 0,
		}
		for l := range ld.StyleIstds {
			ld.StyleIstds[l] = bintable.U16At(raw, 8+2*l)
		}
		lt.Lists = append(lt.Lists, ld)
	}
	for _, ld := range lt.Lists {
		n := maxListLevels
		if ld.Simple {
			n = 1
		}
		for l := 0; l < n; l++ {
			lvl, err := parseLvl(c)
			if err != nil {
				diag.BadTables++
				log.Debug("List level truncated", zap.Int32("lsid", ld.Lsid), zap.Int("level", l))
				return lt
			}
			ld.Levels = append(ld.Levels, lvl)
		}
	}
	lt.Overrides = parseOverrides(lfo, lt, diag, log)
	return lt
}

func parseLvl(c *bintable.Cursor) (*ListLevel, error) {
	f, err := c.Bytes(lvlfSize)
	if err != nil {
		return nil, err
	}
	lvl := &ListLevel{
		StartAt:      int32(bintable.U32At(f, 0)),
		Nfc:          f[4],
		Jc:           f[5] & 0x03,
		Legal:        f[5]&0x04 != 0,
		NoRestart:    f[5]&0x08 != 0,
		Follow:       f[15],
		RestartLimit: f[26],
	}
	copy(lvl.Numbers[:], f[6:15])
	if lvl.PapGrpprl, err = c.Bytes(int(f[25])); err != nil {
		return nil, err
	}
	if lvl.ChpGrpprl, err = c.Bytes(int(f[24])); err != nil {
		return nil, err
	}
	cch, err := c.U16()
	if err != nil {
		return nil, err
	}
	raw, err := c.Bytes(2 * int(cch))
	if err != nil {
		return nil, err
	}
	lvl.Text = make([]uint16, cch)
	for i := range lvl.Text {
		lvl.Text[i] = bintable.U16At(raw, 2*i)
	}
	return lvl, nil
}

func parseOverrides(b []byte, lt *ListTable, diag *Diagnostics, log *zap.Logger) []*ListOverride {
	c := bintable.NewCursor(b)
	lfoMac, err := c.U32()
	if err != nil {
		return nil
	}
	byLsid := make(map[int32]*ListData, len(lt.Lists))
	for _, ld := range lt.Lists {
		byLsid[ld.Lsid] = ld
	}

	var out []*ListOverride
	var counts []int
	for i := 0; i < int(lfoMac); i++ {
		raw, err := c.Bytes(lfoSize)
		if err != nil {
			diag.BadTables++
			log.Debug("List overrides truncated", zap.Int("index", i))
			return out
		}
		o := &ListOverride{Lsid: int32(bintable.U32At(raw, 0))}
		o.List = byLsid[o.Lsid]
		out = append(out, o)
		counts = append(counts, int(raw[12]))
	}
	for i, o := range out {
		if _, err := c.U32(); err != nil { // cp
			break
		}
		for j := 0; j < counts[i]; j++ {
			start, err := c.I32()
			if err != nil {
				return out
			}
			flags, err := c.U32()
			if err != nil {
				return out
			}
			lo := LevelOverride{
				Level:      uint8(flags & 0x0F),
				StartAt:    start,
				HasStart:   flags&0x10 != 0,
				Formatting: flags&0x20 != 0,
			}
			if lo.Formatting {
				if lo.Lvl, err = parseLvl(c); err != nil {
					diag.BadTables++
					return out
				}
			}
			o.Overrides = append(o.Overrides, lo)
		}
	}
	return out
}

// ProcessLists assigns list text to every numbered paragraph. Each override
// replays its paragraphs in output order, keeping per-level started flags
// and applying the restart-after rule.
func (d *Document) ProcessLists() {
	for _, o := range d.lists.Overrides {
		ids := append([]PartID(nil), o.Paragraphs...)
		sort.SliceStable(ids, func(i, j int) bool {
			return d.parts.Get(ids[i]).OutputID < d.parts.Get(ids[j]).OutputID
		})

		var counters [maxListLevels]int32
		var started [maxListLevels]bool
		for _, id := range ids {
			p := d.parts.Get(id)
			if d.parts.Find(id) != id {
				continue
			}
			lvl := int(p.ListLevel)
			if started[lvl] {
				counters[lvl]++
			} else {
				counters[lvl] = o.GetStartAt(lvl)
				started[lvl] = true
			}
			for deeper := lvl + 1; deeper < maxListLevels; deeper++ {
				if lvl <= o.GetRestartAfter(deeper) {
					started[deeper] = false
				}
			}
			for l := 0; l < lvl; l++ {
				if !started[l] {
					counters[l] = o.GetStartAt(l)
				}
			}
			p.ListCounters = counters
			p.ListText = formatLevelText(o, lvl, &counters)
		}
	}
}

// formatLevelText expands the level template of level lvl with counters.
func formatLevelText(o *ListOverride, lvl int, counters *[maxListLevels]int32) string {
	l := o.GetLevel(lvl)
	if l == nil {
		return ""
	}
	placeholder := make(map[int]bool, maxListLevels)
	for _, pos := range l.Numbers {
		if pos == 0 {
			break
		}
		placeholder[int(pos)-1] = true
	}

	var sb strings.Builder
	var run []uint16
	flush := func() {
		if len(run) > 0 {
			sb.WriteString(string(utf16.Decode(run)))
			run = run[:0]
		}
	}
	for i, u := range l.Text {
		if placeholder[i] && u < maxListLevels {
			flush()
			ref := o.GetLevel(int(u))
			nfc := uint8(NfcDecimal)
			if ref != nil {
				nfc = ref.Nfc
			}
			if l.Legal && int(u) < lvl {
				nfc = NfcDecimal
			}
			sb.WriteString(FormatNumber(counters[u], nfc))
			continue
		}
		run = append(run, u)
	}
	flush()

	text := sb.String()
	if l.Nfc == NfcBullet {
		text = getBulletChar(text, lvl)
	}
	switch l.Follow {
	case 0:
		text += "\t"
	case 1:
		text += " "
	}
	return text
}

// FormatNumber renders n in number format nfc.
func FormatNumber(n int32, nfc uint8) string {
	switch nfc {
	case NfcUpperRoman:
		return toRoman(n)
	case NfcLowerRoman:
		return strings.ToLower(toRoman(n))
	case NfcUpperLetter:
		return toLetters(n)
	case NfcLowerLetter:
		return strings.ToLower(toLetters(n))
	case NfcOrdinal:
		return ordinal(n)
	case NfcLeadingZero:
		if n >= 0 && n < 10 {
			return "0" + strconv.Itoa(int(n))
		}
		return strconv.Itoa(int(n))
	case NfcBullet, NfcNone:
		return ""
	}
	return strconv.Itoa(int(n))
}

var romanNumerals = []struct {
	value  int32
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int32) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(int(n))
	}
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// toLetters renders 1..26 as A..Z, then AA..ZZ, AAA.. (letters repeat).
func toLetters(n int32) string {
	if n <= 0 {
		return strconv.Itoa(int(n))
	}
	letter := byte('A' + (n-1)%26)
	return strings.Repeat(string(letter), int((n-1)/26)+1)
}

func ordinal(n int32) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(int(n)) + suffix
}

// getBulletChar returns the bullet text for the level, substituting a
// standard bullet when the stored one needs a symbol font.
func getBulletChar(lvlText string, level int) string {
	bullets := []string{"•", "○", "■", "□", "▪", "▫", "►", "◦"}
	if isRenderableBullet(lvlText) {
		return lvlText
	}
	return bullets[level%len(bullets)]
}

// isRenderableBullet reports whether s renders without a symbol font.
// Word stores Symbol and Wingdings bullets in the Private Use Area.
func isRenderableBullet(s string) bool {
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
