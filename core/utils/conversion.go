package utils

import (
	"strconv"
	"strings"
)

// ToInt converts numbers decoded from JSON, database rows or text to int.
// Values that do not hold a number yield 0. Floats are truncated.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case interface{ Int64() (int64, error) }:
		i, _ := v.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return i
	default:
		return 0
	}
}

// ToString returns strings and byte slices as text and "" for anything else.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// IntField reads key of an untyped JSON object as an int.
func IntField(m map[string]any, key string) int {
	return ToInt(m[key])
}

// StringField reads key of an untyped JSON object as a string.
func StringField(m map[string]any, key string) string {
	return ToString(m[key])
}
