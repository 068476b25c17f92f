package campaign

import (
	"encoding/csv"
	"fmt"
	"os"
)

// sentAtFormat is RFC 3339 UTC at second precision.
const sentAtFormat = "2006-01-02T15:04:05Z"

// WriteSentLog records the successfully sent recipients as a CSV at path,
// overwriting any previous run's log. Nothing is written, and no file is
// created, when no send succeeded.
func WriteSentLog(path string, results []SendResult) error {
	var sent []SendResult
	for _, res := range results {
		if res.Success {
			sent = append(sent, res)
		}
	}
	if len(sent) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sent log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"email", "sent_at"}); err != nil {
		return fmt.Errorf("failed to write sent log: %w", err)
	}
	for _, res := range sent {
		row := []string{res.Email, res.SentAt.UTC().Format(sentAtFormat)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write sent log: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write sent log: %w", err)
	}

	return nil
}
