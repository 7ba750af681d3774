//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"phishshield/internal/platform/config"
	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/ports"
	"phishshield/internal/urlrisk/publisher"
	"phishshield/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda  *containers.RedpandaContainer
	publisher *publisher.KafkaPublisher
	topic     string
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redpanda = mgr.GetRedpanda(s.T())
	s.topic = "url.assessments.high_risk.test"

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	p, err := publisher.NewKafka(ctx, config.KafkaConfig{
		Brokers:     s.redpanda.Brokers,
		Topic:       s.topic,
		CreateTopic: true,
	})
	s.Require().NoError(err)
	s.publisher = p
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.publisher != nil {
		s.NoError(s.publisher.Close(context.Background()))
	}
}

func (s *KafkaPublisherSuite) TestPublishHighRisk() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &ports.Assessment{
		ID:    "assessment-1",
		Level: urlrisk.RiskHigh,
		Analysis: &urlrisk.Analysis{
			URL:        "http://paypal.com.secure-login.tk/webscr",
			Host:       "paypal.com.secure-login.tk",
			Assessment: urlrisk.RiskAssessment{Score: 0.92, Factors: []string{"Brand name in subdomain: paypal"}},
		},
		AnalyzedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.publisher.PublishHighRisk(ctx, a))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var ev publisher.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &ev))
	s.Equal("assessment-1", ev.AssessmentID)
	s.Equal("paypal.com.secure-login.tk", string(records[0].Key))
	s.InDelta(0.92, ev.Score, 1e-9)
}
