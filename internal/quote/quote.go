// Package quote serves the dashboard's daily motivational line. The
// remote endpoint is asked once per calendar day; the answer (or the
// fallback after a failed fetch) is cached through the store under the
// day it belongs to.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"respite/internal/models"
	"respite/internal/storage"
)

// fallbacks keep the quote line alive when the endpoint is unreachable.
// Indexed by day so the line stays stable within one day.
var fallbacks = []string{
	"Small steps, taken daily, carry you further than any sprint.",
	"Rest is part of the work.",
	"A break now buys focus later.",
	"Consistency beats intensity.",
	"The best time to pause was twenty minutes ago. The second best is now.",
}

type Service struct {
	store  *storage.Store
	clock  clockwork.Clock
	url    string
	client *http.Client

	mu     sync.Mutex
	cache  models.QuoteCache
	loaded bool
}

func New(store *storage.Store, clock clockwork.Clock, url string) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Today returns the quote for the current calendar day. The first call of
// a day fetches; every later call that day is served from the cache, the
// fallback included, so a flaky endpoint is asked at most once per day.
func (s *Service) Today(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.clock.Now().Format("2006-01-02")

	if !s.loaded {
		cached, err := s.store.Quote()
		if err != nil {
			log.Printf("read quote cache: %v", err)
		} else {
			s.cache = cached
		}
		s.loaded = true
	}
	if s.cache.FreshFor(day) {
		return display(s.cache)
	}

	q, err := s.fetch(ctx)
	if err != nil {
		log.Printf("quote fetch: %v (using fallback)", err)
		q = fallbackFor(day)
	}
	q.Day = day

	s.cache = q
	if err := s.store.SaveQuote(q); err != nil {
		log.Printf("save quote cache: %v (in-memory quote kept)", err)
	}
	return display(q)
}

func (s *Service) fetch(ctx context.Context) (models.QuoteCache, error) {
	if s.url == "" {
		return models.QuoteCache{}, fmt.Errorf("no quote endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return models.QuoteCache{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.QuoteCache{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.QuoteCache{}, fmt.Errorf("quote endpoint returned %s", resp.Status)
	}

	var body struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return models.QuoteCache{}, err
	}
	if body.Quote == "" {
		return models.QuoteCache{}, fmt.Errorf("quote endpoint returned an empty quote")
	}

	return models.QuoteCache{Text: body.Quote, Author: body.Author}, nil
}

// StartDailyRefresh schedules a re-fetch just after midnight so an app
// left open overnight rolls to the new day's quote. The returned
// scheduler keeps running until the caller shuts it down.
func (s *Service) StartDailyRefresh(ctx context.Context) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 1, 0))),
		gocron.NewTask(func() { s.Today(ctx) }),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

func display(q models.QuoteCache) string {
	if q.Author != "" {
		return fmt.Sprintf("%s  ~ %s", q.Text, q.Author)
	}
	return q.Text
}

// fallbackFor picks a deterministic line for the day, so every caller
// agrees on the fallback even before it lands in the cache.
func fallbackFor(day string) models.QuoteCache {
	sum := 0
	for _, c := range day {
		sum += int(c)
	}
	return models.QuoteCache{Text: fallbacks[sum%len(fallbacks)]}
}
