package dirreader

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/marcos/internal/format/table"
	"github.com/dustin/go-humanize"
)

const (
	previewByteLimit = 64 * 1024
	previewTabWidth  = 4
)

// Preview is the textual description of an entry.
type Preview struct {
	Entry     Entry
	Meta      []string
	Lines     []string
	Binary    bool
	Truncated bool
}

// Preview reports metadata for entry and, for text files, up to maxLines
// lines of content. Directories are listed by the caller, not here.
func (r *OS) Preview(entry Entry, maxLines int) (Preview, error) {
	p := Preview{Entry: entry}
	info, err := os.Stat(entry.Path)
	if err != nil {
		return p, wrap(entry.Path, err)
	}
	p.Meta = metaLines(entry, info)
	if entry.Kind != KindFile || maxLines <= 0 {
		return p, nil
	}
	f, err := os.Open(entry.Path)
	if err != nil {
		return p, wrap(entry.Path, err)
	}
	defer f.Close()
	buf, err := io.ReadAll(io.LimitReader(f, previewByteLimit))
	if err != nil {
		return p, wrap(entry.Path, err)
	}
	if info.Size() > int64(len(buf)) {
		p.Truncated = true
	}
	if isBinary(buf) {
		p.Binary = true
		return p, nil
	}
	p.Lines, p.Truncated = splitLines(buf, maxLines, p.Truncated)
	return p, nil
}

func metaLines(entry Entry, info os.FileInfo) []string {
	kind := entry.Kind.String()
	if entry.Symlink {
		kind += " (symlink)"
	}
	rows := [][]string{
		{"type", kind},
		{"mode", info.Mode().String()},
		{"modified", humanize.Time(info.ModTime())},
	}
	if entry.Kind == KindFile {
		rows = append(rows, []string{"size", humanize.IBytes(uint64(info.Size()))})
	}
	return table.Format(rows)
}

func isBinary(buf []byte) bool {
	if bytes.IndexByte(buf, 0) >= 0 {
		return true
	}
	// a multi-byte rune may be cut at the read limit
	for i := 0; i < utf8.UTFMax && len(buf) > 0; i++ {
		if utf8.Valid(buf) {
			return false
		}
		buf = buf[:len(buf)-1]
	}
	return !utf8.Valid(buf)
}

func splitLines(buf []byte, maxLines int, truncated bool) ([]string, bool) {
	text := strings.ReplaceAll(string(buf), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", previewTabWidth))
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, truncated
	}
	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		lines, truncated = lines[:maxLines], true
	}
	for i, line := range lines {
		lines[i] = Printable(line)
	}
	return lines, truncated
}
