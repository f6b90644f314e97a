package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadAll reads every entry currently in the journal file at path, in
// on-disk order. Readers may tail; this is a one-shot read for tooling
// such as recent_changes-style inspection, not a long-lived tail.
func ReadAll(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return entries, fmt.Errorf("journal: decode line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return entries, fmt.Errorf("journal: scan %s: %w", path, err)
	}
	return entries, nil
}
