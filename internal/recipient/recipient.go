package recipient

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Recipient loading errors
var (
	ErrNoRecipients  = errors.New("recipient file contains no rows")
	ErrNoEmailColumn = errors.New("recipient file must contain an 'email' column")
)

// Recipient is one row of the input CSV: the destination address plus every
// column of the row, keyed by header, for template substitution.
type Recipient struct {
	Email  string
	Fields map[string]string
}

// Load reads recipients from a CSV file. The first row is the header and
// must include an "email" column; data rows are returned in file order.
func Load(path string) ([]Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipient file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipient file: %w", err)
	}

	if len(rows) < 2 {
		return nil, ErrNoRecipients
	}

	header := rows[0]
	emailCol := -1
	for i, name := range header {
		if name == "email" {
			emailCol = i
		}
	}
	if emailCol == -1 {
		return nil, ErrNoEmailColumn
	}

	recipients := make([]Recipient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			} else {
				fields[name] = ""
			}
		}
		recipients = append(recipients, Recipient{
			Email:  strings.TrimSpace(fields["email"]),
			Fields: fields,
		})
	}

	return recipients, nil
}
