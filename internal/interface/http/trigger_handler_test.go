package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanly/mirum-notify/internal/application"
	"github.com/ryanly/mirum-notify/internal/domain/entity"
	"github.com/ryanly/mirum-notify/pkg/mailer"
)

type stubProfileRepo struct {
	profiles []entity.Profile
}

func (s *stubProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	s.profiles = append(s.profiles, *p)
	return nil
}

func (s *stubProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, assert.AnError
}

func (s *stubProfileRepo) List(_ context.Context) ([]entity.Profile, error) {
	return s.profiles, nil
}

type stubProposalRepo struct {
	proposal *entity.Proposal
	seeded   map[string][]string
}

func (s *stubProposalRepo) GetByID(_ context.Context, id string) (*entity.Proposal, error) {
	if s.proposal == nil || s.proposal.ID != id {
		return nil, assert.AnError
	}
	p := *s.proposal
	return &p, nil
}

func (s *stubProposalRepo) SeedApprovals(_ context.Context, proposalID string, userIDs []string) error {
	if s.seeded == nil {
		s.seeded = map[string][]string{}
	}
	s.seeded[proposalID] = userIDs
	return nil
}

func (s *stubProposalRepo) Approvals(_ context.Context, _ string) (map[string]entity.ApprovalFlag, error) {
	return map[string]entity.ApprovalFlag{}, nil
}

func (s *stubProposalRepo) Finalize(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type stubPublisher struct {
	jobs []mailer.EmailJob
}

func (s *stubPublisher) PublishJSON(_ context.Context, body any) error {
	if job, ok := body.(mailer.EmailJob); ok {
		s.jobs = append(s.jobs, job)
	}
	return nil
}

func newProposalRouter(pub *stubPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := logrustest.NewNullLogger()

	profiles := &stubProfileRepo{profiles: []entity.Profile{
		{ID: "u1", Name: "Ryan", Email: "ryan@example.com"},
		{ID: "u2", Name: "Sam", Email: "sam@example.com"},
	}}
	svc := application.NewProposalService(profiles, &stubProposalRepo{}, pub, logger, "https://mirum.example")
	h := NewTriggerHandler(nil, nil, svc, nil, logger)

	r := gin.New()
	r.POST("/triggers/proposals/:id", h.ProposalCreated)
	return r
}

func TestProposalCreatedAcceptsZeroPoints(t *testing.T) {
	pub := &stubPublisher{}
	r := newProposalRouter(pub)

	w := httptest.NewRecorder()
	body := `{"user_id":"u1","points":0,"reason":"amnesty"}`
	req := httptest.NewRequest(http.MethodPost, "/triggers/proposals/p1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, []string{"sam@example.com"}, pub.jobs[0].Recipients)
}

func TestProposalCreatedRejectsMissingProposer(t *testing.T) {
	pub := &stubPublisher{}
	r := newProposalRouter(pub)

	w := httptest.NewRecorder()
	body := `{"points":3,"reason":"dishes"}`
	req := httptest.NewRequest(http.MethodPost, "/triggers/proposals/p1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, pub.jobs)
}
