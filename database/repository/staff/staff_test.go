package staffRepo

import (
	"testing"

	"glowslots/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestKeepValidSkipsBrokenProfiles(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	docs := []models.Staff{
		{ID: "amina", VendorID: "salon", Rating: 4},
		{ID: "broken", VendorID: "salon", Rating: 9},
		{ID: "njeri", VendorID: "salon", Rating: 5},
	}

	got := keepValid(zap.New(core), "salon", docs)

	require.Len(t, got, 2)
	assert.Equal(t, "amina", got[0].ID)
	assert.Equal(t, "njeri", got[1].ID)

	entries := logs.FilterMessage("skipping invalid staff record").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].ContextMap()["staffId"])
}

func TestKeepValidEmpty(t *testing.T) {
	assert.Empty(t, keepValid(zap.NewNop(), "salon", nil))
}
