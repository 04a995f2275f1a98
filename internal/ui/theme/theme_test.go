package theme

import (
	"testing"

	"github.com/dori/kairo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAvailableCoversSettingsThemes(t *testing.T) {
	for _, name := range []string{"blue", "purple", "green", "orange", "pink"} {
		_, ok := ByName(name)
		assert.True(t, ok, name)
	}
	_, ok := ByName("nord")
	assert.False(t, ok)
}

func TestNextWraps(t *testing.T) {
	assert.Equal(t, "purple", Next("blue").Name)
	assert.Equal(t, "blue", Next("pink").Name)
	assert.Equal(t, "blue", Next("unknown").Name)
}

func TestColors(t *testing.T) {
	assert.Equal(t, Blue.PriorityUrgent, Blue.PriorityColor(model.PriorityUrgent))
	assert.Equal(t, Blue.PriorityLow, Blue.PriorityColor(model.Priority("bogus")))
	assert.Equal(t, Blue.StatusActive, Blue.StatusColor(model.StatusProcessing))
	assert.Equal(t, Blue.StatusReview, Blue.StatusColor(model.StatusReviewCorrection))
	assert.Equal(t, Blue.KindPersonal, Blue.KindColor(model.KindPersonal))
	assert.Equal(t, Blue.Error, Blue.SeverityColor(model.SeverityError))
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(Blue)
	SetTheme(Green)
	assert.Equal(t, "green", Current.Theme.Name)
}
