package decklist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Entry is one deck-list line: a card name and how many copies to print.
type Entry struct {
	Name  string
	Count int
}

// Deck is an ordered list of entries. Order is preserved from the source
// file because it determines placement order on the printed pages.
type Deck struct {
	Entries []Entry

	// Truncated holds names as written whose lookup key lost a
	// face-separator suffix.
	Truncated []string

	index map[string]int
}

// ParseError reports a malformed deck-list line together with the
// literal text of the line.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed deck entry on line %d: %q", e.Line, e.Text)
}

// NewDeck returns an empty deck
func NewDeck() *Deck {
	return &Deck{index: make(map[string]int)}
}

// Add merges an entry into the deck. A name seen before adds its count
// to the existing entry instead of appending a duplicate.
func (d *Deck) Add(name string, count int) {
	key := FrontFaceName(name)
	if key != strings.TrimSpace(name) {
		d.Truncated = append(d.Truncated, strings.TrimSpace(name))
	}
	name = key
	if i, ok := d.index[name]; ok {
		d.Entries[i].Count += count
		return
	}
	d.index[name] = len(d.Entries)
	d.Entries = append(d.Entries, Entry{Name: name, Count: count})
}

// Size returns the total number of card copies requested
func (d *Deck) Size() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Count
	}
	return total
}

// FrontFaceName truncates a multi-face card name to its front face for
// lookup. "//" is the documented face separator; a single "/" is also
// accepted for compatibility with hand-written lists, even though it can
// match names that legitimately contain a slash.
func FrontFaceName(name string) string {
	if i := strings.Index(name, "//"); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	if i := strings.Index(name, "/"); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

// Load reads a deck list from a file, picking the format by extension:
// ".json" for the structured mapping form, anything else for
// line-oriented text.
func Load(path string) (*Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening deck list %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(file)
	}
	return ParseText(file)
}

// ParseText parses the line-oriented deck-list format. Each entry line is
// "<count>[x] <name>". Blank lines and lines starting with "#" or "//"
// are ignored, and a leading "SB:" sideboard marker is stripped.
func ParseText(r io.Reader) (*Deck, error) {
	deck := NewDeck()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "SB:"))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &ParseError{Line: lineNo, Text: raw}
		}
		count, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(fields[0]), "x"))
		if err != nil || count < 1 {
			return nil, &ParseError{Line: lineNo, Text: raw}
		}
		name := strings.Join(fields[1:], " ")

		deck.Add(name, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading deck list: %w", err)
	}
	return deck, nil
}

// jsonEntry accepts either a bare count or an object with a "count"
// field plus ignorable metadata.
type jsonEntry struct {
	Count int `json:"count"`
}

func (e *jsonEntry) UnmarshalJSON(data []byte) error {
	var count int
	if err := json.Unmarshal(data, &count); err == nil {
		e.Count = count
		return nil
	}
	type alias jsonEntry
	return json.Unmarshal(data, (*alias)(e))
}

// ParseJSON parses the structured mapping form, {"name": count} or
// {"name": {"count": n, ...}}. JSON objects carry no order, so entries
// are loaded in sorted name order for determinism.
func ParseJSON(r io.Reader) (*Deck, error) {
	var raw map[string]jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error parsing deck list: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	deck := NewDeck()
	for _, name := range names {
		count := raw[name].Count
		if count < 1 {
			return nil, &ParseError{Text: fmt.Sprintf("%s: %d", name, count)}
		}
		deck.Add(name, count)
	}
	return deck, nil
}
