package model

import (
	"errors"
	"testing"
	"time"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
)

var (
	poster   = Actor{ID: "poster1", Role: constants.RoleCustomer}
	admin    = Actor{ID: "admin1", Role: constants.RoleAdmin}
	stranger = Actor{ID: "user9", Role: constants.RoleCustomer}
)

func openJob() *Job {
	return NewJob("p1", poster.ID, "Rewire kitchen", "Full rewiring of the kitchen circuits", false)
}

func mustBid(t *testing.T, j *Job, contractorID string, amount float64) *Bid {
	t.Helper()
	bid, err := j.SubmitBid(contractorID, amount, "proposal", 10, time.Now().UTC())
	if err != nil {
		t.Fatalf("submit bid for %s: %v", contractorID, err)
	}
	return bid
}

func TestPublish(t *testing.T) {
	j := NewJob("p1", poster.ID, "t", "d", true)
	if j.Status != constants.JobDraft {
		t.Fatalf("expected draft, got %s", j.Status)
	}

	if err := j.Publish(stranger); !errors.Is(err, errs.ErrNotPoster) {
		t.Errorf("expected ErrNotPoster, got %v", err)
	}
	if err := j.Publish(poster); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if j.Status != constants.JobOpen {
		t.Errorf("expected open, got %s", j.Status)
	}
	if err := j.Publish(poster); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("second publish: expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubmitBid(t *testing.T) {
	j := openJob()
	mustBid(t, j, "c1", 10000)

	if _, err := j.SubmitBid("c1", 9500, "lower", 8, time.Now().UTC()); !errors.Is(err, errs.ErrDuplicateBid) {
		t.Errorf("expected ErrDuplicateBid, got %v", err)
	}

	draft := NewJob("p1", poster.ID, "t", "d", true)
	if _, err := draft.SubmitBid("c1", 100, "p", 1, time.Now().UTC()); !errors.Is(err, errs.ErrJobNotOpen) {
		t.Errorf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestWithdrawThenResubmit(t *testing.T) {
	j := openJob()
	bid := mustBid(t, j, "c1", 10000)

	if err := j.WithdrawBid(bid.ID, "c2", time.Now().UTC()); !errors.Is(err, errs.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if err := j.WithdrawBid(bid.ID, "c1", time.Now().UTC()); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if _, err := j.SubmitBid("c1", 9000, "cheaper", 9, time.Now().UTC()); err != nil {
		t.Errorf("resubmit after withdraw failed: %v", err)
	}
}

func TestAcceptBidCascade(t *testing.T) {
	j := openJob()
	winner := mustBid(t, j, "c1", 10000)
	mustBid(t, j, "c2", 9000)
	mustBid(t, j, "c3", 11000)

	if err := j.AcceptBid(winner.ID, stranger, "", time.Now().UTC()); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if err := j.AcceptBid(winner.ID, poster, "great offer", time.Now().UTC()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if j.Status != constants.JobAssigned {
		t.Errorf("expected assigned, got %s", j.Status)
	}
	if j.AcceptedBidID != winner.ID || j.AssignedContractorID != "c1" {
		t.Errorf("assignment fields wrong: %q %q", j.AcceptedBidID, j.AssignedContractorID)
	}
	if j.AssignedAt == nil {
		t.Error("expected AssignedAt to be set")
	}

	accepted := 0
	for _, b := range j.Bids {
		switch b.Status {
		case constants.BidAccepted:
			accepted++
		case constants.BidRejected:
			if b.ResponseNote != constants.RejectedByCascadeNote {
				t.Errorf("rejected bid %s has note %q", b.ID, b.ResponseNote)
			}
		default:
			t.Errorf("bid %s left in status %s", b.ID, b.Status)
		}
	}
	if accepted != 1 {
		t.Errorf("expected exactly one accepted bid, got %d", accepted)
	}
}

func TestAcceptBidInvalid(t *testing.T) {
	j := openJob()
	winner := mustBid(t, j, "c1", 10000)
	loser := mustBid(t, j, "c2", 9000)

	if err := j.AcceptBid("nope", poster, "", time.Now().UTC()); !errors.Is(err, errs.ErrBidNotFound) {
		t.Errorf("expected ErrBidNotFound, got %v", err)
	}
	if err := j.AcceptBid(winner.ID, admin, "", time.Now().UTC()); err != nil {
		t.Fatalf("admin accept failed: %v", err)
	}

	// Second accept on the assigned job, for either bid.
	if err := j.AcceptBid(loser.ID, poster, "", time.Now().UTC()); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBidStatusIsFinal(t *testing.T) {
	j := openJob()
	bid := mustBid(t, j, "c1", 10000)
	if err := j.RejectBid(bid.ID, poster, "too high", time.Now().UTC()); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if err := j.EditBid(bid.ID, "c1", 8000, "p", 5); !errors.Is(err, errs.ErrBidNotPending) {
		t.Errorf("edit after reject: expected ErrBidNotPending, got %v", err)
	}
	if err := j.WithdrawBid(bid.ID, "c1", time.Now().UTC()); !errors.Is(err, errs.ErrBidNotPending) {
		t.Errorf("withdraw after reject: expected ErrBidNotPending, got %v", err)
	}
	if err := j.RejectBid(bid.ID, poster, "again", time.Now().UTC()); !errors.Is(err, errs.ErrBidNotPending) {
		t.Errorf("double reject: expected ErrBidNotPending, got %v", err)
	}
}

func TestStartAndComplete(t *testing.T) {
	j := openJob()
	bid := mustBid(t, j, "c1", 10000)
	if err := j.AcceptBid(bid.ID, poster, "", time.Now().UTC()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if err := j.Start("c2"); !errors.Is(err, errs.ErrNotAssignee) {
		t.Errorf("expected ErrNotAssignee, got %v", err)
	}
	if err := j.Start("c1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if j.Status != constants.JobInProgress {
		t.Errorf("expected in_progress, got %s", j.Status)
	}
	if err := j.Start("c1"); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("double start: expected ErrInvalidTransition, got %v", err)
	}

	if err := j.Complete("c2", time.Now().UTC()); !errors.Is(err, errs.ErrNotAssignee) {
		t.Errorf("expected ErrNotAssignee, got %v", err)
	}
	if err := j.Complete("c1", time.Now().UTC()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if j.Status != constants.JobCompleted || j.CompletedAt == nil {
		t.Errorf("completion not recorded: %s %v", j.Status, j.CompletedAt)
	}
}

func TestCancel(t *testing.T) {
	j := openJob()
	if err := j.Cancel(stranger, "nope"); !errors.Is(err, errs.ErrNotPoster) {
		t.Errorf("expected ErrNotPoster, got %v", err)
	}
	if err := j.Cancel(poster, "plans changed"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if j.Status != constants.JobCancelled || j.CancelReason != "plans changed" {
		t.Errorf("cancel not recorded: %s %q", j.Status, j.CancelReason)
	}

	assigned := openJob()
	bid := mustBid(t, assigned, "c1", 100)
	if err := assigned.AcceptBid(bid.ID, poster, "", time.Now().UTC()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := assigned.Cancel(poster, "too late"); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("cancel after assignment: expected ErrInvalidTransition, got %v", err)
	}
}

// Once a job is terminal, every lifecycle call fails.
func TestTerminalImmutability(t *testing.T) {
	j := openJob()
	bid := mustBid(t, j, "c1", 10000)
	now := time.Now().UTC()
	if err := j.AcceptBid(bid.ID, poster, "", now); err != nil {
		t.Fatal(err)
	}
	if err := j.Start("c1"); err != nil {
		t.Fatal(err)
	}
	if err := j.Complete("c1", now); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		call func() error
	}{
		{"accept", func() error { return j.AcceptBid(bid.ID, poster, "", now) }},
		{"start", func() error { return j.Start("c1") }},
		{"complete", func() error { return j.Complete("c1", now) }},
		{"cancel", func() error { return j.Cancel(poster, "r") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, errs.ErrInvalidTransition) {
				t.Errorf("got %v, want ErrInvalidTransition", err)
			}
		})
	}
}
