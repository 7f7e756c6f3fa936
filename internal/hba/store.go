package hba

import (
	"bufio"
	"fmt"
	"os"
)

// LoadError describes a rule file that could not be loaded, either because
// it was unreadable or because a line failed to parse. Line and Raw are set
// only for parse failures.
type LoadError struct {
	Path string
	Line int
	Raw  string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: %v: %q", e.Path, e.Line, e.Err, e.Raw)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is the ordered entry sequence of one rule file, insertion order
// equal to file order.
type Store struct {
	Path    string
	Entries []Entry
}

// Load reads the rule file at path. The first unparseable line aborts the
// whole load and discards everything parsed so far: a misread line could
// silently change the authorization answer, so partial stores are never
// produced.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	store := &Store{Path: path}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		entry, err := ParseLine(raw)
		if err != nil {
			return nil, &LoadError{Path: path, Line: lineNo, Raw: raw, Err: err}
		}
		store.Entries = append(store.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return store, nil
}
