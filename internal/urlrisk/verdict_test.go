package urlrisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score    float64
		level    RiskLevel
		phishing bool
	}{
		{score: 0, level: RiskLow},
		{score: 0.39, level: RiskLow},
		{score: 0.4, level: RiskMedium},
		{score: 0.5, level: RiskMedium, phishing: true},
		{score: 0.69, level: RiskMedium, phishing: true},
		{score: 0.7, level: RiskHigh, phishing: true},
		{score: 1, level: RiskHigh, phishing: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.score), "score %v", tt.score)
		assert.Equal(t, tt.phishing, IsPhishing(tt.score), "score %v", tt.score)
	}
}
