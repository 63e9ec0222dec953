package expense

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DecodeJSONL decodes expenses from a stream of JSONL data, one expense per line.
// It follows the same failure rules as DecodeLedger.
func DecodeJSONL(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := newRecordScanner(r)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var e Expense
		if err := json.Unmarshal(line, &e); err != nil {
			return NewLedger(), &RecordError{Line: n, Text: string(line), Err: err}
		}
		if e.Date.IsZero() {
			return NewLedger(), &RecordError{Line: n, Text: string(line), Err: fmt.Errorf("missing the property %q", "date")}
		}
		ledger.Append(e)
	}

	if err := scanner.Err(); err != nil {
		return NewLedger(), scanError(err, n)
	}
	return ledger, nil
}

// EncodeJSONL writes all expenses in ledger order in JSONL format.
func EncodeJSONL(w io.Writer, ledger *Ledger) error {
	for _, e := range ledger.expenses {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal expense %d: %w", e.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write expense %d: %w", e.ID, err)
		}
	}
	return nil
}
