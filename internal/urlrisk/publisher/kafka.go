package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"phishshield/internal/platform/config"
	"phishshield/internal/urlrisk/ports"
)

// EventTypeHighRisk marks an alert event.
const EventTypeHighRisk = "url.assessment.high_risk"

// Event is the JSON value written for each high-risk assessment.
type Event struct {
	EventType    string    `json:"event_type"`
	AssessmentID string    `json:"assessment_id"`
	RequestID    string    `json:"request_id,omitempty"`
	URL          string    `json:"url"`
	Host         string    `json:"host,omitempty"`
	Score        float64   `json:"score"`
	RiskLevel    string    `json:"risk_level"`
	IsPhishing   bool      `json:"is_phishing"`
	Factors      []string  `json:"factors"`
	Impersonates string    `json:"impersonates,omitempty"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

// NewEvent flattens an assessment into an alert event.
func NewEvent(a *ports.Assessment) Event {
	analysis := a.Analysis
	ev := Event{
		EventType:    EventTypeHighRisk,
		AssessmentID: a.ID,
		RequestID:    a.RequestID,
		URL:          analysis.URL,
		Host:         analysis.Host,
		Score:        analysis.Assessment.Score,
		RiskLevel:    string(a.Level),
		IsPhishing:   a.IsPhishing,
		Factors:      analysis.Assessment.Factors,
		AnalyzedAt:   a.AnalyzedAt,
	}
	switch {
	case analysis.Homograph != nil && analysis.Homograph.MatchedBrand != "":
		ev.Impersonates = analysis.Homograph.MatchedBrand
	case analysis.Typosquat != nil:
		ev.Impersonates = analysis.Typosquat.TargetDomain
	}
	return ev
}

// KafkaPublisher writes alert events to a Kafka topic keyed by host.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to the configured brokers. It returns (nil, nil) when no
// brokers are configured.
func NewKafka(ctx context.Context, cfg config.KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ClientID("phishshield"),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	if cfg.CreateTopic {
		if err := EnsureTopic(ctx, client, cfg.Topic, 1, 1); err != nil {
			client.Close()
			return nil, err
		}
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

// PublishHighRisk produces one event and waits for the broker ack.
func (p *KafkaPublisher) PublishHighRisk(ctx context.Context, a *ports.Assessment) error {
	if a == nil || a.Analysis == nil {
		return nil
	}
	value, err := json.Marshal(NewEvent(a))
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}
	key := a.Analysis.Host
	if key == "" {
		key = a.Analysis.URL
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(EventTypeHighRisk)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce alert event: %w", err)
	}
	return nil
}

// Health pings the brokers.
func (p *KafkaPublisher) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes buffered records and closes the client. Records still
// buffered when ctx ends are dropped and reported in the returned error.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	defer p.client.Close()
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush %d buffered alert events: %w", p.client.BufferedProduceRecords(), err)
	}
	return nil
}

// EnsureTopic creates topic when it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for name, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", name, r.Err)
		}
	}
	return nil
}
