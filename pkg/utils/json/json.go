// Package json routes all JSON encoding through sonic with a single import
// point, so the codec can be tuned or replaced in one place.
package json

import (
	"github.com/bytedance/sonic"
)

// Marshal encodes v as JSON.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalString encodes v as a JSON string.
func MarshalString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// UnmarshalString decodes data into v.
func UnmarshalString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}
