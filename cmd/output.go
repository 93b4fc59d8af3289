package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-arrower/kernel/entity"
)

// parseValue returns arg decoded as JSON, or as plain string if it is no valid JSON.
// This way `3` is stored as number and `"3"` or `three` as string.
func parseValue(arg string) any {
	var v any

	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}

	return v
}

// formatValue is the inverse of parseValue.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(b)
}

func printKeyValues(w io.Writer, kvs ...entity.KeyValue) {
	for _, e := range kvs {
		fmt.Fprintf(w, "%s=%s\n", e.ID, formatValue(e.Value))
	}
}
