package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"phishshield/internal/platform/config"
	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/ports"
)

func TestNewEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := &ports.Assessment{
		ID:         "a-1",
		RequestID:  "req-1",
		Level:      urlrisk.RiskHigh,
		IsPhishing: true,
		AnalyzedAt: at,
		Analysis: &urlrisk.Analysis{
			URL:  "https://pаypal.com",
			Host: "pаypal.com",
			Homograph: &urlrisk.HomographFinding{
				NormalizedDomain: "paypal.com",
				MatchedBrand:     "paypal.com",
			},
			Typosquat: &urlrisk.TyposquatMatch{TargetDomain: "paypal.com", EditType: urlrisk.EditCharSubstitution},
			Assessment: urlrisk.RiskAssessment{
				Score:   0.85,
				Factors: []string{"Homograph attack imitating paypal.com"},
			},
		},
	}

	ev := NewEvent(a)
	assert.Equal(t, EventTypeHighRisk, ev.EventType)
	assert.Equal(t, "paypal.com", ev.Impersonates)
	assert.Equal(t, "HIGH", ev.RiskLevel)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "a-1", decoded["assessment_id"])
	assert.InDelta(t, 0.85, decoded["score"], 1e-9)
	assert.Equal(t, "2026-03-01T09:00:00Z", decoded["analyzed_at"])
}

func TestNewEventTyposquatTarget(t *testing.T) {
	ev := NewEvent(&ports.Assessment{Analysis: &urlrisk.Analysis{
		Typosquat: &urlrisk.TyposquatMatch{TargetDomain: "amazon.com"},
	}})
	assert.Equal(t, "amazon.com", ev.Impersonates)
}

func TestNewKafkaWithoutBrokers(t *testing.T) {
	p, err := NewKafka(context.Background(), config.KafkaConfig{})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCloseReportsUnflushedEvents(t *testing.T) {
	// nothing listens on this port, so the record stays buffered
	client, err := kgo.NewClient(
		kgo.SeedBrokers("127.0.0.1:1"),
		kgo.DefaultProduceTopic("alerts"),
	)
	require.NoError(t, err)
	p := &KafkaPublisher{client: client, topic: "alerts"}

	client.Produce(context.Background(), &kgo.Record{Value: []byte("{}")}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = p.Close(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "buffered alert events")
}
