package gamedata

import (
	"encoding/json"
	"fmt"
)

// validator is implemented by data files that check their own invariants
// after decoding.
type validator interface {
	Validate() error
}

// Load reads a JSON file from the embedded filesystem, decodes it into T and
// runs T's Validate method when it has one.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	if v, ok := any(&result).(validator); ok {
		if err := v.Validate(); err != nil {
			return result, fmt.Errorf("validate %s: %w", filename, err)
		}
	}

	return result, nil
}
