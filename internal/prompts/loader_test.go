package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKeys(t *testing.T) {
	for _, key := range []string{"preprompt", "main", "message_birthday", "message_belated_birthday"} {
		prompt, err := Get("tailoring.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt, key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("tailoring.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "preprompt")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Happy Birthday, {{.FirstName}}!", map[string]string{"FirstName": "Jane"})
	assert.Equal(t, "Happy Birthday, Jane!", out)
}

func TestFormat_BirthdayMessages(t *testing.T) {
	msg, err := Get("tailoring.json", "message_birthday")
	require.NoError(t, err)
	formatted := Format(msg, map[string]string{"FirstName": "Sam"})
	assert.Contains(t, formatted, "Sam")
	assert.NotContains(t, formatted, "{{.FirstName}}")
}
