package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"phishshield/internal/urlrisk"
	"phishshield/pkg/platform/sentinel"
)

type InMemoryCacheSuite struct {
	suite.Suite
	cache *InMemoryCache
	ctx   context.Context
	clock time.Time
}

func TestInMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheSuite))
}

func (s *InMemoryCacheSuite) SetupTest() {
	s.cache = NewInMemoryCache(2)
	s.clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.cache.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func sampleAnalysis(url string, score float64) *urlrisk.Analysis {
	return &urlrisk.Analysis{
		URL:        url,
		Host:       "amaz0n.com",
		Typosquat:  &urlrisk.TyposquatMatch{TargetDomain: "amazon.com", EditDistance: 1, EditType: urlrisk.EditSubstitution},
		Assessment: urlrisk.RiskAssessment{Score: score, Factors: []string{"Possible typosquat of amazon.com"}},
	}
}

func (s *InMemoryCacheSuite) TestGetSet() {
	s.Run("miss returns ErrNotFound", func() {
		_, err := s.cache.Get(s.ctx, "missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("round trip returns an equal copy", func() {
		in := sampleAnalysis("https://amaz0n.com", 0.4)
		s.Require().NoError(s.cache.Set(s.ctx, "k1", in, time.Minute))

		got, err := s.cache.Get(s.ctx, "k1")
		s.Require().NoError(err)
		s.Equal(in, got)
		s.NotSame(in, got)
	})

	s.Run("expired entry is a miss", func() {
		s.Require().NoError(s.cache.Set(s.ctx, "k2", sampleAnalysis("u", 0.1), time.Minute))
		s.clock = s.clock.Add(time.Minute)
		_, err := s.cache.Get(s.ctx, "k2")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("zero ttl is not stored", func() {
		s.Require().NoError(s.cache.Set(s.ctx, "k3", sampleAnalysis("u", 0.1), 0))
		_, err := s.cache.Get(s.ctx, "k3")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryCacheSuite) TestEviction() {
	s.Require().NoError(s.cache.Set(s.ctx, "a", sampleAnalysis("a", 0), time.Minute))
	s.Require().NoError(s.cache.Set(s.ctx, "b", sampleAnalysis("b", 0), 2*time.Minute))
	s.Require().NoError(s.cache.Set(s.ctx, "c", sampleAnalysis("c", 0), 3*time.Minute))

	s.Equal(2, s.cache.Len())
	_, err := s.cache.Get(s.ctx, "a")
	s.ErrorIs(err, sentinel.ErrNotFound, "entry closest to expiry is evicted first")
	_, err = s.cache.Get(s.ctx, "c")
	s.NoError(err)
}
