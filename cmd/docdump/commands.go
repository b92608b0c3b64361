package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin"
	"github.com/tsawler/wordbin/doc"
	"github.com/tsawler/wordbin/model"
	"github.com/tsawler/wordbin/ole"
)

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", errors.New("exactly one FILE argument is required")
	}
	return cmd.Args().First(), nil
}

func extractor(cmd *cli.Command) (*wordbin.Extractor, error) {
	path, err := fileArg(cmd)
	if err != nil {
		return nil, err
	}
	return wordbin.Open(path).WithProfile(state.profile).WithLogger(state.log), nil
}

// openDocument decodes the document named on the command line. The compound
// file is released once the streams are read.
func openDocument(cmd *cli.Command) (*doc.Document, error) {
	path, err := fileArg(cmd)
	if err != nil {
		return nil, err
	}
	f, err := ole.Open(path, state.log)
	if err != nil {
		return nil, err
	}
	opts := append(state.profile.Options(), doc.WithLogger(state.log))
	d, err := doc.Open(f, opts...)
	if er := f.Close(); er != nil {
		err = multierr.Append(err, er)
	}
	if err != nil {
		if d != nil {
			d.Close()
		}
		return nil, err
	}
	return d, nil
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func runText(_ context.Context, cmd *cli.Command) error {
	e, err := extractor(cmd)
	if err != nil {
		return err
	}
	if mode := cmd.String("track"); mode != "" {
		t, err := doc.ParseTrackChanges(mode)
		if err != nil {
			return err
		}
		e = e.TrackChanges(t)
	}
	if cmd.Bool("no-notes") {
		e = e.ExcludeNotes()
	}
	text, warnings, err := e.Text()
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		state.log.Warn("Document decoded with problems", zap.String("warnings", wordbin.FormatWarnings(warnings)))
	}
	_, err = fmt.Fprint(os.Stdout, text)
	return err
}

func runMarkdown(_ context.Context, cmd *cli.Command) error {
	e, err := extractor(cmd)
	if err != nil {
		return err
	}
	md, _, err := e.ToMarkdown()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, md)
	return err
}

func runTables(_ context.Context, cmd *cli.Command) error {
	e, err := extractor(cmd)
	if err != nil {
		return err
	}
	md, _, err := e.Document()
	if err != nil {
		return err
	}
	return writeTables(os.Stdout, md.ExtractTables(), cmd.Bool("markdown"))
}

// writeTables prints each table under a header naming its position, depth
// and size.
func writeTables(w io.Writer, tables []*model.Table, markdown bool) error {
	for i, t := range tables {
		body := t.ToCSV()
		if markdown {
			body = t.ToMarkdown()
		}
		if _, err := fmt.Fprintf(w, "# table %d, level %d, %dx%d\n%s\n", i+1, t.Level, t.RowCount(), t.ColCount(), body); err != nil {
			return err
		}
	}
	return nil
}

func runInfo(_ context.Context, cmd *cli.Command) error {
	e, err := extractor(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	info, err := e.Info()
	if err != nil {
		return err
	}
	diag, err := e.Diagnostics()
	if err != nil {
		return err
	}
	w := table()
	fmt.Fprintf(w, "nFib\t%#x\n", info.Version)
	fmt.Fprintf(w, "language\t%s\n", info.Language)
	fmt.Fprintf(w, "characters\t%d\n", info.Characters)
	fmt.Fprintf(w, "pieces\t%d\n", info.Pieces)
	fmt.Fprintf(w, "styles\t%d\n", info.Styles)
	fmt.Fprintf(w, "fonts\t%d\n", info.Fonts)
	fmt.Fprintf(w, "lists\t%d\n", info.Lists)
	fmt.Fprintf(w, "bookmarks\t%d\n", info.Bookmarks)
	fmt.Fprintf(w, "footnotes\t%d\n", info.Footnotes)
	fmt.Fprintf(w, "endnotes\t%d\n", info.Endnotes)
	fmt.Fprintf(w, "sections\t%d\n", info.Sections)
	fmt.Fprintf(w, "fast saved\t%v\n", info.Complex)
	for _, msg := range diag.Warnings() {
		fmt.Fprintf(w, "warning\t%s\n", msg)
	}
	return w.Flush()
}

func runFib(_ context.Context, cmd *cli.Command) error {
	d, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer d.Close()
	f := d.Fib()
	w := table()
	fmt.Fprintf(w, "nFib\t%#x\n", f.NFib)
	fmt.Fprintf(w, "lid\t%#04x\n", f.Lid)
	fmt.Fprintf(w, "table stream\t%s\n", f.TableStream())
	fmt.Fprintf(w, "fcMin\t%#x\n", f.FcMin)
	fmt.Fprintf(w, "complex\t%v\n", f.Complex)
	for _, c := range []struct {
		name string
		n    uint32
	}{
		{"ccpText", f.CcpText}, {"ccpFtn", f.CcpFtn}, {"ccpHdd", f.CcpHdd}, {"ccpAtn", f.CcpAtn},
		{"ccpEdn", f.CcpEdn}, {"ccpTxbx", f.CcpTxbx}, {"ccpHdrTxbx", f.CcpHdrTxbx},
	} {
		fmt.Fprintf(w, "%s\t%d\n", c.name, c.n)
	}
	return w.Flush()
}

func runPieces(_ context.Context, cmd *cli.Command) error {
	d, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer d.Close()
	w := table()
	fmt.Fprintln(w, "#\tCP\tlimit\tFC\twidth\tprm")
	for i, p := range d.Pieces().Pieces {
		fmt.Fprintf(w, "%d\t%d\t%d\t%#x\t%d\t%#04x\n", i, p.StartCP, p.LimitCP, p.StartFC, p.Width, uint16(p.Prm))
	}
	return w.Flush()
}

func runStyles(_ context.Context, cmd *cli.Command) error {
	d, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer d.Close()
	styles := d.Styles().Styles()
	byID := make(map[string]*doc.Style, len(styles))
	ids := make([]string, 0, len(styles))
	for _, s := range styles {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	sort.Sort(natural.StringSlice(ids))

	w := table()
	fmt.Fprintln(w, "id\tistd\tsti\ttype\tbase\ttoc\tname")
	for _, id := range ids {
		s := byID[id]
		base := "-"
		if s.Base >= 0 {
			base = strconv.Itoa(s.Base)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%d\t%s\n", s.ID, s.Istd, s.Sti, s.Type, base, s.TOCLevel(), s.Name)
	}
	return w.Flush()
}

func runLists(_ context.Context, cmd *cli.Command) error {
	d, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer d.Close()
	lt := d.Lists()
	w := table()
	for _, l := range lt.Lists {
		fmt.Fprintf(w, "list %d\tsimple=%v\tlevels=%d\n", l.Lsid, l.Simple, len(l.Levels))
		for i, lvl := range l.Levels {
			fmt.Fprintf(w, "  level %d\tnfc=%d\tstart=%d\ttext=%q\n", i, lvl.Nfc, lvl.StartAt, levelTemplate(lvl))
		}
	}
	for i, o := range lt.Overrides {
		fmt.Fprintf(w, "override %d\tlist=%d\toverrides=%d\tparagraphs=%d\n", i+1, o.Lsid, len(o.Overrides), len(o.Paragraphs))
	}
	return w.Flush()
}

// levelTemplate shows level placeholders as %1..%9.
func levelTemplate(l *doc.ListLevel) string {
	var sb strings.Builder
	for _, u := range l.Text {
		if u < 9 {
			sb.WriteString("%" + strconv.Itoa(int(u)+1))
			continue
		}
		sb.WriteRune(rune(u))
	}
	return sb.String()
}

func runBookmarks(_ context.Context, cmd *cli.Command) error {
	d, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer d.Close()
	w := table()
	fmt.Fprintln(w, "name\tanchor\tCP\tlimit")
	for _, b := range d.Bookmarks().Bookmarks() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", b.Name, b.Anchor, b.StartCP, b.LimitCP)
	}
	return w.Flush()
}

func runImages(_ context.Context, cmd *cli.Command) error {
	e, err := extractor(cmd)
	if err != nil {
		return err
	}
	images, _, err := e.Images()
	if err != nil {
		return err
	}
	dir := cmd.String("out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, img := range images {
		name := filepath.Join(dir, fmt.Sprintf("image%03d.%s", i+1, img.Ext))
		if err := os.WriteFile(name, img.Data, 0o644); err != nil {
			return err
		}
		state.log.Info("Picture written", zap.String("file", name), zap.Uint32("cp", img.CP), zap.Int("width", img.Width), zap.Int("height", img.Height))
	}
	return nil
}
