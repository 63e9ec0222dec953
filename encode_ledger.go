package expense

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/expense/date"
)

// Delimiter separates the fields of a record in the flat file.
const Delimiter = '|'

const fieldCount = 4 // id|description|amount|date

// MaxRecordSize is the maximum size of a stored record, in bytes.
// Longer lines are reported as malformed records.
const MaxRecordSize = 1 << 20

// MaxDescriptionSize is the maximum size of a description, in bytes. Once
// escaped, by any codec, it always fits in a record.
const MaxDescriptionSize = 64 << 10

// newRecordScanner returns a line scanner accepting records up to MaxRecordSize.
func newRecordScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, MaxRecordSize)
	return scanner
}

// scanError converts the error of a scanner stopped after line n.
func scanError(err error, n int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &RecordError{Line: n + 1, Err: fmt.Errorf("record longer than %d bytes: %w", MaxRecordSize, err)}
	}
	return fmt.Errorf("error reading from input: %w", err)
}

// descriptionEscaper escapes the characters that would break a record.
// A description without any of them is written verbatim.
var descriptionEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	"\n", `\n`,
	"\r", `\r`,
)

// splitRecord splits a line on unescaped delimiters, unescaping fields.
// An unknown escape sequence is kept as is.
func splitRecord(line string) []string {
	fields := make([]string, 0, fieldCount)
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			switch line[i] {
			case '\\':
				b.WriteByte('\\')
			case Delimiter:
				b.WriteByte(Delimiter)
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte('\\')
				b.WriteByte(line[i])
			}
		case c == Delimiter:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(fields, b.String())
}

// decodeRecord decodes a single line from the ledger file.
func decodeRecord(line string) (Expense, error) {
	fields := splitRecord(line)
	if len(fields) != fieldCount {
		return Expense{}, fmt.Errorf("want %d fields got %d", fieldCount, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Expense{}, fmt.Errorf("invalid id: %w", err)
	}
	amount, err := strconv.Atoi(fields[2])
	if err != nil {
		return Expense{}, fmt.Errorf("invalid amount: %w", err)
	}
	on, err := date.Parse(fields[3])
	if err != nil {
		return Expense{}, err
	}
	return Expense{ID: id, Description: fields[1], Amount: amount, Date: on}, nil
}

// DecodeLedger decodes expenses from a stream of records, one per line.
//
// Empty lines are skipped. On the first malformed line it returns an empty
// ledger and a *RecordError: expenses decoded before that line are discarded.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := newRecordScanner(r)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		e, err := decodeRecord(line)
		if err != nil {
			return NewLedger(), &RecordError{Line: n, Text: line, Err: err}
		}
		ledger.Append(e)
	}

	if err := scanner.Err(); err != nil {
		return NewLedger(), scanError(err, n)
	}
	return ledger, nil
}

// EncodeExpense writes a single expense as a record followed by a newline.
func EncodeExpense(w io.Writer, e Expense) error {
	_, err := fmt.Fprintf(w, "%d%c%s%c%d%c%v\n",
		e.ID, Delimiter,
		descriptionEscaper.Replace(e.Description), Delimiter,
		e.Amount, Delimiter,
		e.Date)
	if err != nil {
		return fmt.Errorf("failed to write expense %d: %w", e.ID, err)
	}
	return nil
}

// EncodeLedger writes all expenses in ledger order, one record per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, e := range ledger.expenses {
		if err := EncodeExpense(w, e); err != nil {
			return err
		}
	}
	return nil
}
