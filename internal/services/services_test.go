package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sitebid.com/sitebid/internal/constants"
	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
	"sitebid.com/sitebid/internal/notify"
	repository "sitebid.com/sitebid/internal/repositories"
	"sitebid.com/sitebid/internal/workload"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Job{},
		&model.ProgressUpdate{},
		&model.Notification{},
		&model.Project{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type stack struct {
	jobs       *JobService
	progress   *ProgressService
	ledger     *workload.MemoryLedger
	notifRepo  *repository.NotificationRepository
	jobRepo    *repository.JobRepository
	projects   *repository.GormProjectRegistry
	dispatcher *notify.Dispatcher
}

func newStack(t *testing.T) *stack {
	db := setupTestDB(t)

	jobRepo := repository.NewJobRepository(db)
	updateRepo := repository.NewProgressUpdateRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	projects := repository.NewGormProjectRegistry(db)
	ledger := workload.NewMemoryLedger()
	dispatcher := notify.NewDispatcher(notifRepo, 1, 64, time.Hour)
	t.Cleanup(func() { dispatcher.Shutdown(context.Background()) })

	bids := NewBidService(jobRepo)
	jobs := NewJobService(jobRepo, bids, projects, ledger, dispatcher)
	progress := NewProgressService(updateRepo, jobRepo, projects, dispatcher, 24*time.Hour, time.Hour)

	return &stack{
		jobs:       jobs,
		progress:   progress,
		ledger:     ledger,
		notifRepo:  notifRepo,
		jobRepo:    jobRepo,
		projects:   projects,
		dispatcher: dispatcher,
	}
}

func seedProject(t *testing.T, s *stack, projectID, ownerID string) model.Actor {
	t.Helper()
	err := s.projects.Seed(context.Background(), &model.Project{
		ID:      projectID,
		OwnerID: ownerID,
		Title:   "Renovation",
	})
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return model.Actor{ID: ownerID, Role: constants.RoleCustomer}
}

func openJobWithBids(t *testing.T, s *stack, poster model.Actor, projectID string, contractors ...string) (*model.Job, map[string]string) {
	t.Helper()
	ctx := context.Background()

	job, err := s.jobs.CreateJob(ctx, poster, CreateJobInput{
		ProjectID:   projectID,
		Title:       "Pour foundation",
		Description: "Slab for the garden office",
	})
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	bidIDs := make(map[string]string, len(contractors))
	amount := 10000.0
	for _, contractor := range contractors {
		_, bid, err := s.jobs.SubmitBid(ctx, job.ID, contractor, amount, "proposal", 14)
		if err != nil {
			t.Fatalf("failed to submit bid for %s: %v", contractor, err)
		}
		bidIDs[contractor] = bid.ID
		amount -= 1000
	}

	job, err = s.jobRepo.FindByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("failed to reload job: %v", err)
	}
	return job, bidIDs
}

func TestAcceptBidSingleWinner(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-accept", "poster-accept")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-accept", "c1", "c2")

	ctx := context.Background()
	accepted, err := s.jobs.AcceptBid(ctx, job.ID, bidIDs["c1"], poster, "good price")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if accepted.Status != constants.JobAssigned {
		t.Errorf("expected assigned, got %s", accepted.Status)
	}
	if accepted.AssignedContractorID != "c1" {
		t.Errorf("expected c1 assigned, got %s", accepted.AssignedContractorID)
	}

	acceptedCount := 0
	for _, bid := range accepted.Bids {
		switch bid.ContractorID {
		case "c1":
			if bid.Status != constants.BidAccepted {
				t.Errorf("winner bid status %s", bid.Status)
			}
			acceptedCount++
		case "c2":
			if bid.Status != constants.BidRejected {
				t.Errorf("loser bid status %s", bid.Status)
			}
			if bid.ResponseNote != constants.RejectedByCascadeNote {
				t.Errorf("loser note %q", bid.ResponseNote)
			}
		}
	}
	if acceptedCount != 1 {
		t.Errorf("expected 1 accepted bid, got %d", acceptedCount)
	}

	// The project registry records the assignment.
	project, err := s.projects.Get(ctx, "proj-accept")
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	if project.ContractorID != "c1" {
		t.Errorf("project contractor %q, want c1", project.ContractorID)
	}
}

func TestAcceptBidRace(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-race", "poster-race")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-race", "race-c1", "race-c2")

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for _, bidID := range []string{bidIDs["race-c1"], bidIDs["race-c2"]} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.jobs.AcceptBid(context.Background(), job.ID, id, poster, "")
			results <- err
		}(bidID)
	}

	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, errs.ErrConflict) && !errors.Is(err, errs.ErrInvalidTransition) {
			t.Errorf("loser got unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one accept to succeed, got %d", successes)
	}

	final, err := s.jobRepo.FindByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("failed to reload job: %v", err)
	}
	acceptedCount := 0
	for _, bid := range final.Bids {
		if bid.Status == constants.BidAccepted {
			acceptedCount++
			if bid.ContractorID != final.AssignedContractorID {
				t.Errorf("accepted bid contractor %s != assigned %s", bid.ContractorID, final.AssignedContractorID)
			}
		}
	}
	if acceptedCount != 1 {
		t.Errorf("job ended with %d accepted bids", acceptedCount)
	}
}

func TestDuplicateBid(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-dup", "poster-dup")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-dup", "dup-c1")

	ctx := context.Background()
	_, _, err := s.jobs.SubmitBid(ctx, job.ID, "dup-c1", 8000, "cheaper", 10)
	if !errors.Is(err, errs.ErrDuplicateBid) {
		t.Fatalf("expected ErrDuplicateBid, got %v", err)
	}

	if _, err := s.jobs.WithdrawBid(ctx, job.ID, bidIDs["dup-c1"], "dup-c1"); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if _, _, err := s.jobs.SubmitBid(ctx, job.ID, "dup-c1", 8000, "cheaper", 10); err != nil {
		t.Errorf("resubmit after withdraw failed: %v", err)
	}
}

func TestStartJobAuthorization(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-start", "poster-start")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-start", "start-c1", "start-c2")

	ctx := context.Background()
	if _, err := s.jobs.AcceptBid(ctx, job.ID, bidIDs["start-c1"], poster, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if _, err := s.jobs.StartJob(ctx, job.ID, "start-c2"); !errors.Is(err, errs.ErrNotAssignee) {
		t.Errorf("expected ErrNotAssignee, got %v", err)
	}

	started, err := s.jobs.StartJob(ctx, job.ID, "start-c1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if started.Status != constants.JobInProgress {
		t.Errorf("expected in_progress, got %s", started.Status)
	}
}

func TestCompleteJobSideEffects(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-done", "poster-done")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-done", "done-c1")

	ctx := context.Background()
	if _, err := s.jobs.AcceptBid(ctx, job.ID, bidIDs["done-c1"], poster, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	counters := s.ledger.Snapshot("done-c1")
	if counters.Active != 1 {
		t.Errorf("after accept: active = %d, want 1", counters.Active)
	}

	if _, err := s.jobs.StartJob(ctx, job.ID, "done-c1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	completed, err := s.jobs.CompleteJob(ctx, job.ID, "done-c1")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.JobCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}

	counters = s.ledger.Snapshot("done-c1")
	if counters.Active != 0 || counters.Completed != 1 {
		t.Errorf("after complete: active=%d completed=%d", counters.Active, counters.Completed)
	}
	if counters.Earnings != 10000 {
		t.Errorf("earnings = %v, want accepted bid amount 10000", counters.Earnings)
	}

	if _, err := s.jobs.CancelJob(ctx, job.ID, poster, "changed my mind"); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("cancel after completion: expected ErrInvalidTransition, got %v", err)
	}
}

func TestAcceptNotifiesContractors(t *testing.T) {
	s := newStack(t)
	poster := seedProject(t, s, "proj-notif", "poster-notif")
	job, bidIDs := openJobWithBids(t, s, poster, "proj-notif", "notif-win", "notif-lose")

	ctx := context.Background()
	if _, err := s.jobs.AcceptBid(ctx, job.ID, bidIDs["notif-win"], poster, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	hasEvent := func(userID, eventType string) bool {
		notifications, err := s.notifRepo.ListForUser(ctx, userID, time.Now().UTC(), 50)
		if err != nil {
			return false
		}
		for _, n := range notifications {
			if n.EventType == eventType {
				return true
			}
		}
		return false
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if hasEvent("notif-win", constants.EventBidAccepted) && hasEvent("notif-lose", constants.EventBidRejected) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("expected accept/reject notifications to be delivered")
}
