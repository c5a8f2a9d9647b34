package items

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Mode selects how malformed lines are handled while decoding a log.
type Mode string

const (
	// ModeStrict treats the log as one batch: a single malformed line
	// invalidates the whole log.
	ModeStrict Mode = "strict"
	// ModeLenient streams the log line by line and skips malformed lines.
	ModeLenient Mode = "lenient"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeStrict || m == ModeLenient
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid parse mode %q: must be one of strict, lenient", s)
	}
	return m, nil
}

// maxLineSize bounds a single log record.
const maxLineSize = 16 << 20

var (
	// ErrMalformed is wrapped by every LineError.
	ErrMalformed = errors.New("malformed item record")
	// ErrMissingID is returned for records without an id.
	ErrMissingID = errors.New("record has no id")
)

// LineError describes a malformed log line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// Result is the outcome of decoding a log.
type Result struct {
	Set     *Set
	Events  int
	Skipped []*LineError
}

// Empty returns a Result with no items.
func Empty() Result {
	return Result{Set: NewSet()}
}

// Decode reads newline-delimited item records from r and folds them into a
// Set. Blank lines are ignored. In ModeStrict the first malformed line aborts
// decoding with a *LineError; in ModeLenient it is recorded in Result.Skipped.
func Decode(r io.Reader, mode Mode) (Result, error) {
	if !mode.IsValid() {
		return Empty(), fmt.Errorf("decode items: invalid mode %q", mode)
	}

	var (
		events  []Event
		skipped []*LineError
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		item, err := decodeLine(raw)
		if err != nil {
			lerr := &LineError{Line: line, Err: err}
			if mode == ModeStrict {
				return Empty(), lerr
			}
			skipped = append(skipped, lerr)
			continue
		}

		events = append(events, Event{Line: line, Item: item})
	}

	if err := scanner.Err(); err != nil {
		return Empty(), fmt.Errorf("read items: %w", err)
	}

	return Result{Set: Fold(events), Events: len(events), Skipped: skipped}, nil
}

func decodeLine(raw []byte) (Item, error) {
	if raw[0] != '{' {
		return Item{}, errors.New("not a JSON object")
	}

	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return Item{}, err
	}
	if item.ID == "" {
		return Item{}, ErrMissingID
	}

	return item, nil
}
