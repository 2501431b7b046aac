package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	"github.com/ryanly/mirum-notify/pkg/mailer"
)

var errFakeNotFound = errors.New("not found")

type fakeProfileRepo struct {
	profiles []entity.Profile
	listErr  error
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	p.CreatedAt = time.Now()
	f.profiles = append(f.profiles, *p)
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			p := f.profiles[i]
			return &p, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeProfileRepo) List(_ context.Context) ([]entity.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

type fakeProposalRepo struct {
	proposal *entity.Proposal
	flags    map[string]entity.ApprovalFlag
	seeded   map[string][]string // proposal id -> seeded user ids
	stamped  bool
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{
		flags:  map[string]entity.ApprovalFlag{},
		seeded: map[string][]string{},
	}
}

func (f *fakeProposalRepo) GetByID(_ context.Context, id string) (*entity.Proposal, error) {
	if f.proposal == nil || f.proposal.ID != id {
		return nil, errFakeNotFound
	}
	p := *f.proposal
	return &p, nil
}

func (f *fakeProposalRepo) SeedApprovals(_ context.Context, proposalID string, userIDs []string) error {
	f.seeded[proposalID] = userIDs
	for _, uid := range userIDs {
		f.flags[uid] = entity.ApprovalFlag{ProposalID: proposalID, UserID: uid}
	}
	return nil
}

func (f *fakeProposalRepo) Approvals(_ context.Context, proposalID string) (map[string]entity.ApprovalFlag, error) {
	out := make(map[string]entity.ApprovalFlag, len(f.flags))
	for k, v := range f.flags {
		out[k] = v
	}
	return out, nil
}

func (f *fakeProposalRepo) Finalize(_ context.Context, proposalID string) (bool, error) {
	if f.stamped {
		return false, nil
	}
	for uid, fl := range f.flags {
		if !fl.Approved {
			return false, nil
		}
		fl.Complete = true
		f.flags[uid] = fl
	}
	if len(f.flags) == 0 {
		return false, nil
	}
	now := time.Now()
	if f.proposal != nil {
		f.proposal.ApprovedAt = &now
	}
	f.stamped = true
	return true, nil
}

type fakeArchive struct {
	mu        sync.Mutex
	questions []entity.Question
	err       error
}

func (f *fakeArchive) Append(_ context.Context, q *entity.Question) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	q.ID = int64(len(f.questions) + 1)
	q.CreatedAt = time.Now()
	f.questions = append(f.questions, *q)
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		f.mu.Lock()
		f.jobs = append(f.jobs, job)
		f.mu.Unlock()
	}
	return nil
}
