package entity

import "time"

// Proposal is a request for a point allocation that needs unanimous approval
// from every profile known at creation time. ApprovedAt stays nil until the
// last approval flag flips.
type Proposal struct {
	ID         string
	UserID     string // proposer
	Points     int
	Reason     string
	ApprovedAt *time.Time
	CreatedAt  time.Time
}

// Approved reports whether the proposal has been stamped fully approved.
func (p *Proposal) Approved() bool { return p.ApprovedAt != nil }

// ApprovalFlag is one member's vote state on a proposal. The key set of a
// proposal's flags is frozen at creation time; profiles added later are not
// retroactively required to approve.
type ApprovalFlag struct {
	ProposalID string
	UserID     string
	Approved   bool
	Complete   bool
}
