package record

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
)

// Line is one entry of a JSONL record file.
type Line struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// JSONLStore appends records to a file, one JSON object per line.
type JSONLStore struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// OpenJSONL opens path for appending, creating it if needed.
func OpenJSONL(path string) (*JSONLStore, error) {
	if err := fileutil.EnsureParent(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &JSONLStore{f: f, w: bufio.NewWriter(f)}, nil
}

// SaveMove appends a move record
func (s *JSONLStore) SaveMove(_ context.Context, r game.MoveRecord) error {
	return s.append(game.MoveRecordName, r)
}

// SaveHand appends a hand record
func (s *JSONLStore) SaveHand(_ context.Context, r game.HandRecord) error {
	return s.append(game.HandRecordName, r)
}

func (s *JSONLStore) append(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", name, err)
	}
	line, err := json.Marshal(Line{Name: name, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s line: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return os.ErrClosed
	}
	if _, err := s.w.Write(append(line, '\n')); err != nil {
		return err
	}
	// Every line reaches the file before the next round.
	return s.w.Flush()
}

// Close flushes and closes the file
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	ferr := s.w.Flush()
	cerr := s.f.Close()
	s.f = nil
	if ferr != nil {
		return ferr
	}
	return cerr
}

// ReadJSONL reads every line of a record file.
func ReadJSONL(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []Line
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		var l Line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		lines = append(lines, l)
	}
	return lines, sc.Err()
}
