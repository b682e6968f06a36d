package services

import (
	"testing"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestTierForAttendance(t *testing.T) {
	assert.Equal(t, models.TierMember, TierForAttendance(0))
	assert.Equal(t, models.TierMember, TierForAttendance(4))
	assert.Equal(t, models.TierBronze, TierForAttendance(5))
	assert.Equal(t, models.TierBronze, TierForAttendance(14))
	assert.Equal(t, models.TierSilver, TierForAttendance(15))
	assert.Equal(t, models.TierSilver, TierForAttendance(29))
	assert.Equal(t, models.TierGold, TierForAttendance(30))
	assert.Equal(t, models.TierGold, TierForAttendance(100))
}
