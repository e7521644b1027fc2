package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDepositPercent_Filter(t *testing.T) {
	var d Draft

	assert.True(t, d.SetDepositPercent("20"))
	assert.Equal(t, "20", d.DepositPercent)

	// out-of-range input never reaches state
	assert.False(t, d.SetDepositPercent("150"))
	assert.Equal(t, "20", d.DepositPercent)

	assert.False(t, d.SetDepositPercent("-5"))
	assert.False(t, d.SetDepositPercent("abc"))
	assert.Equal(t, "20", d.DepositPercent)

	assert.True(t, d.SetDepositPercent("0"))
	assert.True(t, d.SetDepositPercent("100"))
	assert.True(t, d.SetDepositPercent(""))
	assert.Equal(t, "", d.DepositPercent)
}

func TestNormalizeDeposit_RoundsOnBlur(t *testing.T) {
	d := Draft{DepositPercent: "25.6"}
	d.NormalizeDeposit()
	assert.Equal(t, "26", d.DepositPercent)

	d.DepositPercent = "25.4"
	d.NormalizeDeposit()
	assert.Equal(t, "25", d.DepositPercent)
}

func TestNormalizeDeposit_EmptyStaysEmpty(t *testing.T) {
	d := Draft{DepositPercent: "   "}
	d.NormalizeDeposit()
	assert.Equal(t, "", d.DepositPercent)
}

func TestDepositValue(t *testing.T) {
	d := Draft{DepositPercent: "25.6"}
	v, ok := d.DepositValue()
	assert.True(t, ok)
	assert.Equal(t, 26, v)

	d.DepositPercent = ""
	_, ok = d.DepositValue()
	assert.False(t, ok)
}

func TestAddCustomSpecialty_BlockedWhileLastBlank(t *testing.T) {
	var d Draft

	assert.True(t, d.AddCustomSpecialty())
	assert.False(t, d.AddCustomSpecialty())
	assert.Len(t, d.CustomSpecialties, 1)

	d.CustomSpecialties[0] = "Mariachi"
	assert.True(t, d.AddCustomSpecialty())
	assert.Len(t, d.CustomSpecialties, 2)
}

func TestRemoveCustomSpecialty(t *testing.T) {
	d := Draft{CustomSpecialties: []string{"a", "b", "c"}}
	d.RemoveCustomSpecialty(1)
	assert.Equal(t, []string{"a", "c"}, d.CustomSpecialties)

	// out-of-range indexes are ignored
	d.RemoveCustomSpecialty(5)
	d.RemoveCustomSpecialty(-1)
	assert.Len(t, d.CustomSpecialties, 2)
}

func TestAddCustomService_BlockedWhileLastUntouched(t *testing.T) {
	var d Draft

	assert.True(t, d.AddCustomService())
	assert.False(t, d.AddCustomService())

	d.CustomServices[0].Name = "Ceremony audio"
	assert.True(t, d.AddCustomService())
	assert.Len(t, d.CustomServices, 2)
	assert.True(t, d.CustomServices[1].Custom)
}

func TestAddInclusion_BlockedWhileLastBlank(t *testing.T) {
	var d Draft

	assert.True(t, d.AddInclusion())
	assert.False(t, d.AddInclusion())

	d.Inclusions[0] = "Day-of timeline"
	assert.True(t, d.AddInclusion())
}

func TestServiceEntry_Touched(t *testing.T) {
	assert.False(t, ServiceEntry{}.Touched())
	assert.False(t, ServiceEntry{Name: "  "}.Touched())
	assert.True(t, ServiceEntry{Price: "50"}.Touched())
	assert.True(t, ServiceEntry{Description: "note"}.Touched())
}

func TestMediaItem_Persisted(t *testing.T) {
	assert.True(t, MediaItem{ID: "abc", FilePath: "dj/1/0-1.jpg"}.Persisted())
	assert.False(t, MediaItem{FileName: "new.jpg", Data: []byte{1}}.Persisted())
}
