package doc

import (
	"strconv"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
	"github.com/tsawler/wordbin/sprm"
)

// StyleType is the stk of a style definition.
type StyleType uint8

const (
	StyleParagraph StyleType = 1
	StyleCharacter StyleType = 2
	StyleTable     StyleType = 3
	StyleNumbering StyleType = 4
)

func (t StyleType) String() string {
	switch t {
	case StyleParagraph:
		return "paragraph"
	case StyleCharacter:
		return "character"
	case StyleTable:
		return "table"
	case StyleNumbering:
		return "numbering"
	}
	return "unknown"
}

const istdNil = 0x0FFF

// Style is one entry of the style sheet.
type Style struct {
	Istd uint16
	Sti  uint16 // built-in style identifier
	ID   string
	Name string
	Type StyleType
	Base int // base style istd, -1 for none
	Next int

	PapGrpprl []byte
	ChpGrpprl []byte
	TapGrpprl []byte

	// History lists the ancestor istds root first, ending with the style itself.
	History []uint16

	// Settings is the host's disposition for the style, set by MapStyles.
	Settings StyleSettings

	pap    sprm.Pap
	chp    sprm.Chp
	cached bool
}

// StyleSheet is the decoded STSH with its per-style property caches.
type StyleSheet struct {
	styles   []*Style
	byID     map[string]*Style
	fonts    [3]uint16
	linked   bool
	log      *zap.Logger
	fallback *Style
}

// parseStyleSheet decodes the STSH.
func parseStyleSheet(b []byte, log *zap.Logger) (*StyleSheet, error) {
	ss := &StyleSheet{log: log, byID: make(map[string]*Style)}
	c := bintable.NewCursor(b)
	cbStshi, err := c.U16()
	if err != nil {
		return nil, wrapCorrupt(CodeShortRead, err, "STSHI length")
	}
	stshi, err := c.Bytes(int(cbStshi))
	if err != nil {
		return nil, wrapCorrupt(CodeShortRead, err, "STSHI")
	}
	cstd := int(bintable.U16At(stshi, 0))
	cbBase := int(bintable.U16At(stshi, 2))
	for i := range ss.fonts {
		ss.fonts[i] = bintable.U16At(stshi, 12+2*i)
	}

	ss.styles = make([]*Style, cstd)
	for istd := 0; istd < cstd; istd++ {
		cbStd, err := c.U16()
		if err != nil {
			log.Debug("Style sheet ends early", zap.Int("istd", istd), zap.Int("cstd", cstd))
			break
		}
		if cbStd == 0 {
			continue
		}
		std, err := c.Bytes(int(cbStd))
		if err != nil {
			log.Debug("Style definition truncated", zap.Int("istd", istd))
			break
		}
		ss.styles[istd] = parseStd(uint16(istd), std, cbBase)
	}
	ss.assignIDs()
	return ss, nil
}

// parseStd decodes one STD: the fixed base, the name and the UPXs.
func parseStd(istd uint16, std []byte, cbBase int) *Style {
	s := &Style{
		Istd: istd,
		Sti:  bintable.U16At(std, 0) & 0x0FFF,
		Type: StyleType(bintable.U16At(std, 2) & 0x000F),
		Base: -1,
		Next: -1,
	}
	if base := bintable.U16At(std, 2) >> 4; base != istdNil {
		s.Base = int(base)
	}
	if next := bintable.U16At(std, 4) >> 4; next != istdNil {
		s.Next = int(next)
	}
	cupx := int(bintable.U16At(std, 4) & 0x000F)

	c := bintable.NewCursor(std)
	c.Seek(cbBase)
	if cch, err := c.U16(); err == nil {
		if raw, err := c.Bytes(2 * int(cch)); err == nil {
			s.Name = bintable.DecodeUTF16(raw)
		}
		c.Skip(2)
	}

	var upx [][]byte
	for i := 0; i < cupx; i++ {
		if c.Offset()%2 != 0 {
			c.Skip(1)
		}
		cb, err := c.U16()
		if err != nil {
			break
		}
		b, err := c.Bytes(int(cb))
		if err != nil {
			break
		}
		upx = append(upx, b)
	}
	get := func(i int) []byte {
		if i < len(upx) {
			return upx[i]
		}
		return nil
	}
	stripIstd := func(b []byte) []byte {
		if len(b) < 2 {
			return nil
		}
		return b[2:]
	}

	switch s.Type {
	case StyleParagraph:
		s.PapGrpprl = stripIstd(get(0))
		s.ChpGrpprl = get(1)
	case StyleCharacter:
		s.ChpGrpprl = get(0)
	case StyleTable:
		s.TapGrpprl = get(0)
		s.PapGrpprl = stripIstd(get(1))
		s.ChpGrpprl = get(2)
	case StyleNumbering:
		s.PapGrpprl = stripIstd(get(0))
	}
	return s
}

// assignIDs derives stable identifiers from the style names.
func (ss *StyleSheet) assignIDs() {
	for _, s := range ss.styles {
		if s == nil {
			continue
		}
		id := slug.Make(s.Name)
		if id == "" {
			id = "style-" + strconv.Itoa(int(s.Istd))
		}
		if _, taken := ss.byID[id]; taken {
			id += "-" + strconv.Itoa(int(s.Istd))
		}
		s.ID = id
		ss.byID[id] = s
	}
}

// Len returns the number of style slots, empty ones included.
func (ss *StyleSheet) Len() int { return len(ss.styles) }

// Styles returns the defined styles in istd order.
func (ss *StyleSheet) Styles() []*Style {
	out := make([]*Style, 0, len(ss.styles))
	for _, s := range ss.styles {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Style returns the style at istd, falling back to style 0 and then to an
// empty paragraph style when the sheet has neither.
func (ss *StyleSheet) Style(istd uint16) *Style {
	if int(istd) < len(ss.styles) && ss.styles[istd] != nil {
		return ss.styles[istd]
	}
	if len(ss.styles) > 0 && ss.styles[0] != nil {
		return ss.styles[0]
	}
	if ss.fallback == nil {
		ss.fallback = &Style{Type: StyleParagraph, ID: "normal", Name: "Normal", Base: -1, Next: -1, History: []uint16{0}}
		ss.fallback.pap, ss.fallback.chp = sprm.DefaultPap(), ss.defaultChp()
		ss.fallback.cached = true
	}
	return ss.fallback
}

// ByID returns the style with the given identifier.
func (ss *StyleSheet) ByID(id string) (*Style, bool) {
	s, ok := ss.byID[id]
	return s, ok
}

// LinkStyleHistories builds the root-first ancestor chain of every style. A
// style that appears twice in its own chain is a structural error.
func (ss *StyleSheet) LinkStyleHistories() error {
	for _, s := range ss.styles {
		if s == nil {
			continue
		}
		var chain []uint16
		seen := make(map[uint16]bool)
		for cur := s; cur != nil; {
			if seen[cur.Istd] {
				return corrupt(CodeStyleCycle, "style %d (%q) is its own ancestor", s.Istd, s.Name)
			}
			seen[cur.Istd] = true
			chain = append(chain, cur.Istd)
			if cur.Base < 0 || cur.Base >= len(ss.styles) {
				break
			}
			cur = ss.styles[cur.Base]
		}
		// reverse to root-first
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
		s.History = chain
	}
	ss.linked = true
	return nil
}

func (ss *StyleSheet) defaultChp() sprm.Chp {
	chp := sprm.DefaultChp()
	chp.Ftc = ss.fonts
	return chp
}

// CacheParagraphStyles resolves the properties of every paragraph and
// character style by replaying its history over the document defaults.
// It must run after LinkStyleHistories.
func (ss *StyleSheet) CacheParagraphStyles(in *sprm.Interpreter) {
	if !ss.linked {
		ss.log.Warn("Style histories not linked, caches left empty")
		return
	}
	for _, s := range ss.styles {
		if s == nil || s.cached {
			continue
		}
		if s.Type != StyleParagraph && s.Type != StyleCharacter {
			continue
		}
		s.pap, s.chp = ss.replay(in, s)
		s.cached = true
	}
}

// replay applies the opcode streams of each ancestor in root-to-leaf order.
// Toggle operands compare against the properties inherited so far.
func (ss *StyleSheet) replay(in *sprm.Interpreter, s *Style) (sprm.Pap, sprm.Chp) {
	pap := sprm.DefaultPap()
	chp := ss.defaultChp()
	for _, istd := range s.History {
		a := ss.styles[istd]
		if s.Type == StyleParagraph {
			in.Apply(a.PapGrpprl, sprm.Targets{Pap: &pap})
		}
		base := chp
		in.ApplyChp(a.ChpGrpprl, &base, &base, &chp)
	}
	pap.Istd = s.Istd
	chp.Istd = s.Istd
	if s.Type == StyleCharacter {
		pap = sprm.DefaultPap()
	}
	return pap, chp
}

// ParagraphStyle returns a copy of the cached paragraph properties of istd.
func (ss *StyleSheet) ParagraphStyle(istd uint16) sprm.Pap {
	return ss.Style(istd).pap.Clone()
}

// CharacterStyle returns the cached character properties of istd.
func (ss *StyleSheet) CharacterStyle(istd uint16) sprm.Chp {
	return ss.Style(istd).chp
}

// characterStyle resolves sprmCIstd targets; only character styles qualify.
func (ss *StyleSheet) characterStyle(istd uint16) (*sprm.Chp, bool) {
	if int(istd) >= len(ss.styles) || ss.styles[istd] == nil {
		return nil, false
	}
	s := ss.styles[istd]
	if s.Type != StyleCharacter || !s.cached {
		return nil, false
	}
	chp := s.chp
	return &chp, true
}

// MapStyles asks the filter once per style for its settings. A nil filter
// leaves every style with the zero settings.
func (ss *StyleSheet) MapStyles(filter StyleFilter) {
	for _, s := range ss.styles {
		if s == nil {
			continue
		}
		if filter != nil {
			s.Settings = filter.StyleSettings(s.ID)
		}
	}
}

// TOCLevel returns the outline level used for table-of-contents purposes:
// the configured level, else the built-in outline level.
func (s *Style) TOCLevel() int {
	if s.Settings.TOCLevel > 0 {
		return s.Settings.TOCLevel
	}
	if s.cached && s.pap.OutlineLvl < 9 {
		return int(s.pap.OutlineLvl) + 1
	}
	if s.Sti >= 1 && s.Sti <= 9 {
		return int(s.Sti)
	}
	return 0
}

// Info returns the host-facing description of the style.
func (s *Style) Info(fonts *FontTable) StyleInfo {
	info := StyleInfo{
		ID:       s.ID,
		Name:     s.Name,
		Type:     s.Type,
		Base:     s.Base,
		TOCLevel: s.TOCLevel(),
	}
	if s.cached {
		info.Paragraph = paragraphFormat(&s.pap)
		info.Paragraph.StyleID = s.ID
		info.Character = characterFormat(&s.chp, fonts)
		info.Character.StyleID = s.ID
	}
	return info
}
