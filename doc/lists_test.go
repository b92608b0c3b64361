package doc

import (
	"testing"
	"unicode/utf16"

	"github.com/tsawler/wordbin/internal/wordtest"
	"github.com/tsawler/wordbin/model"
)

var outline = wordtest.List{
	Lsid: 100,
	Levels: []wordtest.Level{
		wordtest.DefaultLevel(0),
		{StartAt: 1, Text: "\x00.\x01.", Follow: 2},
	},
}

func item(text string, ilfo int16, ilvl uint8) wordtest.Paragraph {
	return wordtest.P(text, wordtest.ListItem(ilfo, ilvl))
}

func TestLists(t *testing.T) {
	tests := []struct {
		name      string
		lists     []wordtest.List
		overrides []wordtest.Override
		paras     []wordtest.Paragraph
		want      string
	}{
		{
			name:      "outline",
			lists:     []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100}},
			paras: []wordtest.Paragraph{
				item("a", 1, 0), item("b", 1, 0), item("c", 1, 1), item("d", 1, 0), item("e", 1, 1),
			},
			want: "1. a\n2. b\n2.1. c\n3. d\n3.1. e\n",
		},
		{
			name:      "start override",
			lists:     []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100, Levels: []wordtest.LevelOverride{{Level: 0, StartAt: 5, HasStart: true}}}},
			paras:     []wordtest.Paragraph{item("a", 1, 0), item("b", 1, 0)},
			want:      "5. a\n6. b\n",
		},
		{
			name:      "separate overrides count separately",
			lists:     []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100}, {Lsid: 100}},
			paras:     []wordtest.Paragraph{item("a", 1, 0), item("b", 2, 0), item("c", 1, 0)},
			want:      "1. a\n1. b\n2. c\n",
		},
		{
			name:      "interrupted by text",
			lists:     []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100}},
			paras:     []wordtest.Paragraph{item("a", 1, 0), wordtest.P("plain"), item("b", 1, 0)},
			want:      "1. a\nplain\n2. b\n",
		},
		{
			name: "symbol bullet",
			lists: []wordtest.List{{Lsid: 7, Simple: true, Levels: []wordtest.Level{
				{Nfc: NfcBullet, Text: "\uf0b7", Follow: 2},
			}}},
			overrides: []wordtest.Override{{Lsid: 7}},
			paras:     []wordtest.Paragraph{item("x", 1, 0)},
			want:      "• x\n",
		},
		{
			name: "text bullet",
			lists: []wordtest.List{{Lsid: 7, Simple: true, Levels: []wordtest.Level{
				{Nfc: NfcBullet, Text: "-", Follow: 2},
			}}},
			overrides: []wordtest.Override{{Lsid: 7}},
			paras:     []wordtest.Paragraph{item("x", 1, 0)},
			want:      "- x\n",
		},
		{
			name: "roman with override definition",
			lists: []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100, Levels: []wordtest.LevelOverride{{
				Level: 0,
				Lvl:   &wordtest.Level{StartAt: 3, Nfc: NfcUpperRoman, Text: "\x00)", Follow: 2},
			}}}},
			paras: []wordtest.Paragraph{item("a", 1, 0), item("b", 1, 0)},
			want:  "III) a\nIV) b\n",
		},
		{
			name:      "unknown override",
			lists:     []wordtest.List{outline},
			overrides: []wordtest.Override{{Lsid: 100}},
			paras:     []wordtest.Paragraph{item("a", 9, 0)},
			want:      "a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, &wordtest.Document{Paragraphs: tt.paras, Lists: tt.lists, Overrides: tt.overrides})
			if got := plainText(t, d); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLists_Model(t *testing.T) {
	d := build(t, &wordtest.Document{
		Paragraphs: []wordtest.Paragraph{
			wordtest.P("Intro"), item("a", 1, 0), item("b", 1, 1), item("c", 1, 0),
		},
		Lists:     []wordtest.List{outline},
		Overrides: []wordtest.Override{{Lsid: 100}},
	})
	lt := d.Lists()
	if len(lt.Lists) != 1 || len(lt.Lists[0].Levels) != maxListLevels || len(lt.Overrides) != 1 {
		t.Fatalf("list table = %d lists, %d overrides", len(lt.Lists), len(lt.Overrides))
	}
	if got := len(lt.Overrides[0].Paragraphs); got != 3 {
		t.Errorf("override paragraphs = %d, want 3", got)
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	if len(doc.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(doc.Elements))
	}
	l, ok := doc.Elements[1].(*model.List)
	if !ok {
		t.Fatalf("Elements[1] = %T, want *model.List", doc.Elements[1])
	}
	if !l.Ordered || len(l.Items) != 3 {
		t.Fatalf("list = ordered %v with %d items", l.Ordered, len(l.Items))
	}
	want := []model.ListItem{
		{Text: "a", Bullet: "1.", Level: 0},
		{Text: "b", Bullet: "1.1.", Level: 1},
		{Text: "c", Bullet: "2.", Level: 0},
	}
	for i, w := range want {
		got := l.Items[i]
		if got.Text != w.Text || got.Bullet != w.Bullet || got.Level != w.Level {
			t.Errorf("Items[%d] = %q %q %d, want %q %q %d", i, got.Text, got.Bullet, got.Level, w.Text, w.Bullet, w.Level)
		}
	}
}

// testLevel builds a list level whose placeholders are the code units below 9.
func testLevel(text string, nfc, follow uint8) *ListLevel {
	l := &ListLevel{StartAt: 1, Nfc: nfc, Follow: follow, Text: utf16.Encode([]rune(text))}
	n := 0
	for i, u := range l.Text {
		if u < maxListLevels {
			l.Numbers[n] = uint8(i + 1)
			n++
		}
	}
	return l
}

func TestFormatLevelText(t *testing.T) {
	roman := testLevel("\x00.", NfcUpperRoman, 2)
	legal := testLevel("\x00.\x01", NfcDecimal, 2)
	legal.Legal = true

	tests := []struct {
		name     string
		levels   []*ListLevel
		lvl      int
		counters [maxListLevels]int32
		want     string
	}{
		{"tab follow", []*ListLevel{testLevel("\x00.", NfcDecimal, 0)}, 0, [maxListLevels]int32{3}, "3.\t"},
		{"space follow", []*ListLevel{testLevel("(\x00)", NfcLowerLetter, 1)}, 0, [maxListLevels]int32{2}, "(b) "},
		{"no follow", []*ListLevel{testLevel("\x00", NfcOrdinal, 2)}, 0, [maxListLevels]int32{1}, "1st"},
		{"parent format", []*ListLevel{roman, testLevel("\x00.\x01", NfcDecimal, 2)}, 1, [maxListLevels]int32{4, 2}, "IV.2"},
		{"legal", []*ListLevel{roman, legal}, 1, [maxListLevels]int32{4, 2}, "4.2"},
		{"literal digits", []*ListLevel{testLevel("Step \x00", NfcDecimal, 2)}, 0, [maxListLevels]int32{7}, "Step 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &ListOverride{List: &ListData{Levels: tt.levels}}
			if got := formatLevelText(o, tt.lvl, &tt.counters); got != tt.want {
				t.Errorf("formatLevelText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListOverride_Levels(t *testing.T) {
	base := testLevel("\x00.", NfcDecimal, 2)
	base.StartAt = 2
	deep := testLevel("\x01)", NfcLowerLetter, 2)
	deep.NoRestart = true
	deep.RestartLimit = 0
	repl := testLevel("\x00]", NfcUpperLetter, 2)
	repl.StartAt = 10

	third := testLevel("\x00.\x01.\x02", NfcDecimal, 2)

	o := &ListOverride{
		List: &ListData{Levels: []*ListLevel{base, deep, third}},
		Overrides: []LevelOverride{
			{Level: 0, Formatting: true, Lvl: repl},
		},
	}
	if got := o.GetLevel(0); got != repl {
		t.Error("GetLevel(0) did not return the override definition")
	}
	if got := o.GetStartAt(0); got != 10 {
		t.Errorf("GetStartAt(0) = %d, want 10", got)
	}
	if got := o.GetLevel(5); got != third {
		t.Error("GetLevel(5) did not clamp to the deepest defined level")
	}
	if got := o.GetRestartAfter(1); got != -1 {
		t.Errorf("GetRestartAfter(1) = %d, want -1", got)
	}
	if got := o.GetRestartAfter(2); got != 1 {
		t.Errorf("GetRestartAfter(2) = %d, want 1", got)
	}

	o.Overrides = []LevelOverride{{Level: 1, StartAt: 4, HasStart: true}}
	if got := o.GetStartAt(1); got != 4 {
		t.Errorf("GetStartAt(1) = %d, want 4", got)
	}
	if got := o.GetStartAt(0); got != 2 {
		t.Errorf("GetStartAt(0) = %d, want 2", got)
	}

	empty := &ListOverride{}
	if empty.GetLevel(0) != nil || empty.GetStartAt(0) != 1 {
		t.Error("override without a list should have no levels and start at 1")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int32
		nfc  uint8
		want string
	}{
		{1, NfcDecimal, "1"},
		{4, NfcUpperRoman, "IV"},
		{1994, NfcLowerRoman, "mcmxciv"},
		{0, NfcUpperRoman, "0"},
		{3, NfcLowerLetter, "c"},
		{28, NfcUpperLetter, "BB"},
		{1, NfcOrdinal, "1st"},
		{12, NfcOrdinal, "12th"},
		{22, NfcOrdinal, "22nd"},
		{103, NfcOrdinal, "103rd"},
		{3, NfcLeadingZero, "03"},
		{12, NfcLeadingZero, "12"},
		{5, NfcBullet, ""},
		{5, NfcNone, ""},
		{9, 60, "9"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n, tt.nfc); got != tt.want {
			t.Errorf("FormatNumber(%d, %d) = %q, want %q", tt.n, tt.nfc, got, tt.want)
		}
	}
}

func TestGetBulletChar(t *testing.T) {
	tests := []struct {
		text  string
		level int
		want  string
	}{
		{"-", 0, "-"},
		{"\uf0b7", 0, "•"},
		{"", 1, "○"},
		{"", 2, "■"},
		{"\x01", 8, "•"},
	}
	for _, tt := range tests {
		if got := getBulletChar(tt.text, tt.level); got != tt.want {
			t.Errorf("getBulletChar(%q, %d) = %q, want %q", tt.text, tt.level, got, tt.want)
		}
	}
}
