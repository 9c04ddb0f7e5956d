package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	lang   string
	active bool
	name   string
}

func (r row) Lang() string { return r.lang }
func (r row) Active() bool { return r.active }

func TestPick(t *testing.T) {
	rows := []row{
		{lang: "en", active: true, name: "Dashboard"},
		{lang: "th", active: true, name: "แดชบอร์ด"},
		{lang: "vi", active: false, name: "Bảng điều khiển"},
	}

	tr, ok := Pick(rows, "th")
	assert.True(t, ok)
	assert.Equal(t, "แดชบอร์ด", tr.name)

	// Inactive rows are skipped.
	_, ok = Pick(rows, "vi")
	assert.False(t, ok)

	// No row for the language.
	_, ok = Pick(rows, "de")
	assert.False(t, ok)

	// Empty language never matches.
	_, ok = Pick(rows, "")
	assert.False(t, ok)
}

func TestOverride_FieldLevelFallback(t *testing.T) {
	// A set translated field wins.
	assert.Equal(t, "แดชบอร์ด", Override("แดชบอร์ด", "Dashboard"))
	// An unset translated field falls back to the base value, per field.
	assert.Equal(t, "Dashboard", Override("", "Dashboard"))
}
