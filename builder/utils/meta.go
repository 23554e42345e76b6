package utils

import "fmt"

// GetString returns m[k] formatted as a string, or "" when absent.
func GetString(m map[string]interface{}, k string) string {
	if v, ok := m[k]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// GetSlice returns m[k] as a string slice. A single scalar value becomes a
// one-element slice.
func GetSlice(m map[string]interface{}, k string) []string {
	var res []string
	switch v := m[k].(type) {
	case []interface{}:
		for _, i := range v {
			res = append(res, fmt.Sprintf("%v", i))
		}
	case []string:
		res = append(res, v...)
	case string:
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
