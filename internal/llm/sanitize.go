package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SanitizeAmounts normalizes a cost-call payload before validation:
// drops null or empty optionals and coerces stray numeric strings to
// numbers (the schema requires numbers, models occasionally quote them).
// Returns the cleaned document and the keys it touched.
func SanitizeAmounts(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var touched []string
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
			touched = append(touched, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				touched = append(touched, k+"(empty)")
				continue
			}
			// Polish decimal comma shows up in OCR-derived strings.
			s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				m[k] = f
				touched = append(touched, k+"(string)")
			} else {
				delete(m, k)
				touched = append(touched, k+"(unparseable)")
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, touched, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, touched, nil
}
