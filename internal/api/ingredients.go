package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// IngredientList accepts a JSON array of ingredients or a single scalar.
// Numbers and booleans inside the array keep their literal text; null
// elements become empty entries. A lone scalar is used as the whole phrase,
// with false and zero reading as empty.
type IngredientList []string

func (l *IngredientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] != '[' {
		single, err := scalarText(data)
		if err != nil {
			return err
		}
		*l = IngredientList{single}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ingredientsArr must be an array of strings: %w", err)
	}

	items := make(IngredientList, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		switch {
		case string(item) == "null":
			items = append(items, "")
		case len(item) > 0 && item[0] == '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			items = append(items, s)
		case len(item) > 0 && (item[0] == '{' || item[0] == '['):
			return fmt.Errorf("ingredientsArr[%d] must be a string", i)
		default:
			items = append(items, string(item))
		}
	}
	*l = items
	return nil
}

// scalarText renders a top-level non-array value as the ingredient phrase.
func scalarText(data []byte) (string, error) {
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", err
		}
		if !b {
			return "", nil
		}
		return "true", nil
	case '{':
		return "", errors.New("ingredientsArr must be an array or a single value")
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("ingredientsArr must be an array or a single value: %w", err)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		return "", nil
	}
	return n.String(), nil
}
