package application

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	mailtpl "github.com/ryanly/mirum-notify/pkg/mailer/templates"
	"github.com/ryanly/mirum-notify/pkg/trivia"
)

func triviaServer(t *testing.T, cat trivia.Category) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/category", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(cat))
	}))
}

func testDailyService(profiles *fakeProfileRepo, archive *fakeArchive, pub *fakePublisher, baseURL string) *DailyQuestionService {
	logger, _ := logrustest.NewNullLogger()
	return &DailyQuestionService{
		Profiles:    profiles,
		Archive:     archive,
		Trivia:      trivia.NewClient(baseURL),
		Pub:         pub,
		Logger:      logger,
		AppURL:      "https://mirum.example",
		Categories:  []int{49},
		MaxAttempts: 25,
		Rand:        rand.New(rand.NewSource(1)),
	}
}

func TestDailyQuestionRun(t *testing.T) {
	srv := triviaServer(t, trivia.Category{
		ID:    49,
		Title: "FOOD FOR THOUGHT",
		Clues: []trivia.Clue{{Question: "This fruit keeps doctors away", Answer: "an apple"}},
	})
	defer srv.Close()

	profiles := &fakeProfileRepo{profiles: []entity.Profile{
		{ID: "u1", Name: "Ryan", Email: "ryan@example.com"},
		{ID: "u2", Name: "Sam", Email: "sam@example.com"},
	}}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(profiles, archive, pub, srv.URL)

	require.NoError(t, s.Run(context.Background()))

	// Clue archived with the display-cased category.
	require.Len(t, archive.questions, 1)
	q := archive.questions[0]
	assert.Equal(t, "Food For Thought", q.Category)
	assert.Equal(t, "This fruit keeps doctors away", q.Question)
	assert.Equal(t, "an apple", q.Answer)

	// One batched mail to the whole directory, question but never the answer.
	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, mailtpl.DailyQuestion, job.Template)
	assert.ElementsMatch(t, []string{"ryan@example.com", "sam@example.com"}, job.Recipients)

	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	require.NoError(t, err)
	assert.Contains(t, subject, "Question of the Day")
	assert.Contains(t, text, "Food For Thought")
	assert.Contains(t, text, "This fruit keeps doctors away")
	assert.NotContains(t, text, "an apple")
	assert.NotContains(t, html, "an apple")
}

// Overlapping ticks are reachable: Run proceeds when the dedupe lock errors
// and the in-cluster scheduler bypasses rate limiting. Runs must not share
// mutable random state; the race detector flags a regression here.
func TestDailyQuestionOverlappingTicks(t *testing.T) {
	srv := triviaServer(t, trivia.Category{
		ID:    49,
		Title: "animal",
		Clues: []trivia.Clue{{Question: "Fastest land animal", Answer: "the cheetah"}},
	})
	defer srv.Close()

	profiles := &fakeProfileRepo{profiles: []entity.Profile{
		{ID: "u1", Name: "Ryan", Email: "ryan@example.com"},
	}}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(profiles, archive, pub, srv.URL)
	s.Rand = nil // production shape: no injected source

	const ticks = 8
	var wg sync.WaitGroup
	errs := make([]error, ticks)
	for i := 0; i < ticks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Run(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Nil(t, s.Rand, "Run must not write a shared random source")
	assert.Len(t, pub.jobs, ticks)
}

func TestDailyQuestionAllCluesInvalid(t *testing.T) {
	srv := triviaServer(t, trivia.Category{
		ID:    49,
		Title: "broken",
		Clues: []trivia.Clue{
			{Question: "has a question", Answer: ""},
			{Question: "", Answer: "has an answer"},
		},
	})
	defer srv.Close()

	profiles := &fakeProfileRepo{profiles: []entity.Profile{
		{ID: "u1", Name: "Ryan", Email: "ryan@example.com"},
	}}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(profiles, archive, pub, srv.URL)

	// Must terminate with a reported error, not loop forever.
	err := s.Run(context.Background())
	require.ErrorIs(t, err, trivia.ErrNoValidClue)
	assert.Empty(t, archive.questions)
	assert.Empty(t, pub.jobs)
}

func TestDailyQuestionFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	profiles := &fakeProfileRepo{}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(profiles, archive, pub, srv.URL)

	require.Error(t, s.Run(context.Background()))
	assert.Empty(t, pub.jobs)
}

func TestDailyQuestionNoProfilesStillArchives(t *testing.T) {
	srv := triviaServer(t, trivia.Category{
		ID:    49,
		Title: "animal",
		Clues: []trivia.Clue{{Question: "Fastest land animal", Answer: "the cheetah"}},
	})
	defer srv.Close()

	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(&fakeProfileRepo{}, archive, pub, srv.URL)

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, archive.questions, 1)
	assert.Empty(t, pub.jobs)
}

func TestDailyQuestionDirectoryFailureSendsNothing(t *testing.T) {
	srv := triviaServer(t, trivia.Category{ID: 49, Title: "x", Clues: []trivia.Clue{{Question: "q", Answer: "a"}}})
	defer srv.Close()

	profiles := &fakeProfileRepo{listErr: assert.AnError}
	archive := &fakeArchive{}
	pub := &fakePublisher{}
	s := testDailyService(profiles, archive, pub, srv.URL)

	require.Error(t, s.Run(context.Background()))
	assert.Empty(t, archive.questions)
	assert.Empty(t, pub.jobs)
}
