package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "normal"},
		{ModeSearch, "search"},
		{ModeInputTitle, "input_title"},
		{ModeInputDesc, "input_desc"},
		{ModeInputDue, "input_due"},
		{ModeConfirm, "confirm"},
		{ModeHelp, "help"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestMode_IsInputMode(t *testing.T) {
	assert.True(t, ModeSearch.IsInputMode())
	assert.True(t, ModeInputTitle.IsInputMode())
	assert.True(t, ModeInputDesc.IsInputMode())
	assert.True(t, ModeInputDue.IsInputMode())
	assert.False(t, ModeNormal.IsInputMode())
	assert.False(t, ModeConfirm.IsInputMode())
	assert.False(t, ModeHelp.IsInputMode())
}

func TestConfirmAction_String(t *testing.T) {
	assert.Equal(t, "delete", ConfirmDelete.String())
	assert.Equal(t, "clear", ConfirmClear.String())
	assert.Equal(t, "", ConfirmNone.String())
}
