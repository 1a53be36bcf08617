package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))

	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, "Invalid JSON payload", Message(err))

	err = json.Unmarshal([]byte(`{"n": "x"}`), &struct {
		N int `json:"n"`
	}{})
	assert.Equal(t, "Invalid JSON payload", Message(err))

	assert.Equal(t, "Missing required fields", Message(errors.New("EOF")))
}
