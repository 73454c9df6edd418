// Package seedlog parses the text logs written by the LFSR generator.
//
// A log is line oriented. Header lines look like "# KEY=VALUE", every other
// non-blank line is one seed written as a decimal or 0x-prefixed hexadecimal
// literal of any width. Lines that fit neither shape are skipped without
// failing the parse; they are reported in Log.Skipped.
package seedlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/covmap/pkg/codec"
)

// Seed is one recorded generator state.
type Seed struct {
	// Index is the 0-based position in the log, not a value from the file.
	Index int      `json:"index"`
	Value *big.Int `json:"value"`
}

// SkippedLine describes a line dropped during parsing.
type SkippedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Log is the result of one parse.
type Log struct {
	Meta    Metadata
	Seeds   []Seed
	Skipped []SkippedLine
}

const (
	reasonHeaderShape = "header is not KEY=VALUE"
	reasonHeaderKey   = "header key is empty"
	reasonSeedLiteral = "not a non-negative integer literal"
)

// Parse reads a log from r.
func Parse(r io.Reader) (*Log, error) {
	return ParseWithLogger(r, nil)
}

// ParseWithLogger reads a log from r, logging skipped lines at debug level.
func ParseWithLogger(r io.Reader, logger hclog.Logger) (*Log, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	log := &Log{Meta: DefaultMetadata()}
	br := bufio.NewReader(r)
	lineNo := 0

	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			lineNo++
			log.consume(lineNo, raw, logger)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSourceNotFound, lineNo+1, err)
		}
	}

	log.Meta.resolve()
	logger.Debug("Parsed seed log",
		"seeds", len(log.Seeds),
		"fields", len(log.Meta.Fields),
		"skipped", len(log.Skipped))
	return log, nil
}

func (l *Log) consume(lineNo int, raw string, logger hclog.Logger) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, "#") {
		body := strings.TrimSpace(strings.TrimLeft(line, "#"))
		parts := strings.Split(body, "=")
		if len(parts) != 2 {
			l.skip(lineNo, line, reasonHeaderShape, logger)
			return
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			l.skip(lineNo, line, reasonHeaderKey, logger)
			return
		}
		l.Meta.Fields[key] = parseValue(strings.TrimSpace(parts[1]))
		return
	}

	v, ok := ParseLiteral(line)
	if !ok {
		l.skip(lineNo, line, reasonSeedLiteral, logger)
		return
	}
	l.Seeds = append(l.Seeds, Seed{Index: len(l.Seeds), Value: v})
}

func (l *Log) skip(lineNo int, text, reason string, logger hclog.Logger) {
	logger.Debug("Skipping line", "line", lineNo, "reason", reason)
	l.Skipped = append(l.Skipped, SkippedLine{Line: lineNo, Text: text, Reason: reason})
}

// parseValue coerces a header value to a base-10 integer when possible.
func parseValue(s string) Value {
	v := Value{Raw: s}
	if n, ok := new(big.Int).SetString(s, 10); ok {
		v.Int = n
	}
	return v
}

// ParseLiteral parses an unsigned decimal or 0x/0X hexadecimal literal of
// any width. Decimal literals may not carry leading zeros.
func ParseLiteral(s string) (*big.Int, bool) {
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		digits = s[2:]
	}
	if digits == "" {
		return nil, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i], base) {
			return nil, false
		}
	}
	if base == 10 && digits[0] == '0' && strings.Trim(digits, "0") != "" {
		return nil, false
	}
	return new(big.Int).SetString(digits, base)
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// Open opens a log file, decompressing .gz and .bz2 transparently.
// Callers must Close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}

	c, _, ok := codec.ForPath(path)
	if !ok {
		return f, nil
	}

	r, err := c.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	return &stackedCloser{Reader: r, closers: []io.Closer{r, f}}, nil
}

// stackedCloser closes a decoder and then the file beneath it.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ParseFile parses the log at path.
func ParseFile(path string) (*Log, error) {
	return ParseFileWithLogger(path, nil)
}

// ParseFileWithLogger parses the log at path with a custom logger.
func ParseFileWithLogger(path string, logger hclog.Logger) (*Log, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Debug("Failed to close seed log", "path", path, "error", err)
		}
	}()

	log, err := ParseWithLogger(r, logger.With("source", path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return log, nil
}
