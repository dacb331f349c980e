package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLayoutRegistered(t *testing.T) {
	assert.True(t, LayoutExists("test"))

	found := false
	for _, info := range Layouts() {
		if info.ID == "test" {
			found = true
			assert.Equal(t, "Test cave", info.Title)
		}
	}
	assert.True(t, found)

	m, err := CreateLayout("test", newGraphics(t))
	require.NoError(t, err)
	assert.Equal(t, TestRows, m.Rows())
}

func TestCreateUnknownLayout(t *testing.T) {
	_, err := CreateLayout("nope", newGraphics(t))
	assert.Error(t, err)
	assert.False(t, LayoutExists("nope"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterLayout("test", "again", CreateTestMap)
	})
}
