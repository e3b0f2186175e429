package messagequeue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validate checks whether data is valid JSON conforming to the schema
// associated with the given subject. Unknown subjects only need valid JSON.
func Validate(subject string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON on subject %s", subject)
	}

	if !strings.HasPrefix(subject, SubjectAuditPrefix+".") {
		return nil
	}

	var p AuditEventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", subject, err)
	}
	if p.ID == "" || p.Action == "" {
		return fmt.Errorf("schema validation failed for %s: id and action are required", subject)
	}
	return nil
}
