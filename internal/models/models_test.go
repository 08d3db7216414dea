package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatState_Helpers(t *testing.T) {
	state := &ChatState{
		TempData: map[string]interface{}{
			"int64":   int64(123),
			"int":     123,
			"float":   123.45,
			"string":  "hello",
			"bool":    true,
			"strings": []interface{}{"yoga", "crossfit", 7},
			"typed":   []string{"pilates"},
		},
	}

	t.Run("NilTempData", func(t *testing.T) {
		nilState := &ChatState{}
		assert.Equal(t, int64(0), nilState.GetInt64("any"))
		assert.Equal(t, "", nilState.GetString("any"))
		assert.Equal(t, 0.0, nilState.GetFloat64("any"))
		assert.Nil(t, nilState.GetStrings("any"))
		assert.False(t, nilState.GetBool("any"))
	})

	t.Run("GetInt64", func(t *testing.T) {
		assert.Equal(t, int64(123), state.GetInt64("int64"))
		assert.Equal(t, int64(123), state.GetInt64("int"))
		assert.Equal(t, int64(123), state.GetInt64("float"))
		assert.Equal(t, int64(0), state.GetInt64("string"))
		assert.Equal(t, int64(0), state.GetInt64("missing"))
	})

	t.Run("GetFloat64", func(t *testing.T) {
		assert.Equal(t, 123.45, state.GetFloat64("float"))
		assert.Equal(t, 123.0, state.GetFloat64("int64"))
		assert.Equal(t, 0.0, state.GetFloat64("string"))
	})

	t.Run("GetString", func(t *testing.T) {
		assert.Equal(t, "hello", state.GetString("string"))
		assert.Equal(t, "", state.GetString("int"))
		assert.Equal(t, "", state.GetString("missing"))
	})

	t.Run("GetStrings", func(t *testing.T) {
		assert.Equal(t, []string{"yoga", "crossfit"}, state.GetStrings("strings"))
		assert.Equal(t, []string{"pilates"}, state.GetStrings("typed"))
		assert.Nil(t, state.GetStrings("string"))
	})

	t.Run("GetBool", func(t *testing.T) {
		assert.True(t, state.GetBool("bool"))
		assert.False(t, state.GetBool("string"))
		assert.False(t, state.GetBool("missing"))
	})
}

func TestSessionRoles(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsClient())
	assert.False(t, nilSession.IsTrainer())

	client := &Session{Role: RoleClient}
	assert.True(t, client.IsClient())
	assert.False(t, client.IsTrainer())

	trainer := &Session{Role: RoleTrainer}
	assert.True(t, trainer.IsTrainer())
	assert.False(t, trainer.IsClient())
}

func TestParseSlotTime(t *testing.T) {
	full, err := ParseSlotTime("2025-05-20T10:30:00")
	assert.NoError(t, err)
	assert.Equal(t, 10, full.Hour())
	assert.Equal(t, 30, full.Minute())

	short, err := ParseSlotTime("2025-05-20T10:30")
	assert.NoError(t, err)
	assert.Equal(t, full, short)

	_, err = ParseSlotTime("not-a-time")
	assert.Error(t, err)
}
