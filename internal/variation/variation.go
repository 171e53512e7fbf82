// Package variation handles the external text surfaces of spec.md §6:
// parsing a variation string into a Position, and reading the
// whitespace-separated test-set file format used by the "test"
// subcommand.
package variation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/fourengine/internal/position"
)

// Parse builds the Position reached by v. It returns position.New's
// errors unchanged (position.ErrInvalidVariation,
// position.ErrAlreadyWon); this package declares no error values.
func Parse(v string) (position.Position, error) {
	return position.New(v)
}

// Render returns the canonical textual form of a sequence of 0-indexed
// column drops — the inverse of the per-character parsing Parse does.
// Parse(Render(cols)) reproduces the same Position (R1).
func Render(cols []int) (string, error) {
	var sb strings.Builder
	for _, c := range cols {
		if c < 0 || c >= position.Width {
			return "", fmt.Errorf("%w: column %d out of range", position.ErrInvalidVariation, c)
		}
		sb.WriteByte(byte('1' + c))
	}
	return sb.String(), nil
}

// Case is a single line of a test-set file: a variation and its
// expected score.
type Case struct {
	Variation string
	Want      int
}

// ReadTestSet parses the test-set file format of spec.md §6: each
// non-empty, non-'#' line holds a variation and its expected score
// separated by whitespace; trailing whitespace and CRLF endings are
// tolerated.
func ReadTestSet(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			return nil, fmt.Errorf("test-set line %d: expected \"variation score\", got %q", lineNo, line)
		}
		want, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("test-set line %d: invalid score %q", lineNo, fields[1])
		}
		cases = append(cases, Case{Variation: fields[0], Want: want})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}
