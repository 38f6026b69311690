package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/model"
)

type memoryContacts struct {
	mu       sync.Mutex
	messages map[string]model.ContactMessage
}

func (m *memoryContacts) SaveContactMessage(_ context.Context, msg *model.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = *msg
	return nil
}

func (m *memoryContacts) GetContactMessage(_ context.Context, id string) (model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return model.ContactMessage{}, internalErrors.NewRecordNotFoundError(id)
	}
	return msg, nil
}

func (m *memoryContacts) ListContactMessages(_ context.Context, _ int) ([]model.ContactMessage, error) {
	return nil, nil
}

func (m *memoryContacts) MarkNotified(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.messages[id]
	msg.NotifiedAt = &at
	m.messages[id] = msg
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, msg model.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg.ID)
	return nil
}

type memoryVisitors struct {
	cutoff time.Time
}

func (m *memoryVisitors) RecordVisit(context.Context, model.Visit) error { return nil }
func (m *memoryVisitors) VisitorStats(context.Context, time.Time) (model.SiteStats, error) {
	return model.SiteStats{}, nil
}
func (m *memoryVisitors) DeleteVisitsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.cutoff = cutoff
	return 3, nil
}

func TestContactNotification(t *testing.T) {
	manager := NewManager(1, nil)
	defer manager.Stop()

	store := &memoryContacts{messages: map[string]model.ContactMessage{
		"m1": {ID: "m1", Name: "Ada", Email: "ada@example.com", Message: "hi"},
	}}
	notifier := &recordingNotifier{}
	task := ContactNotification(store, notifier, manager.UpdateJobProgress)

	jobID, err := manager.Submit(model.JobTypeContactNotification, "m1", nil, task)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	job := waitForJob(t, manager, jobID)

	if job.Status != model.JobStatusCompleted {
		t.Fatalf("Expected job to complete, got %s (%s)", job.Status, job.Error)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "m1" {
		t.Errorf("Expected one notification for m1, got %v", notifier.sent)
	}
	if job.Progress == nil || job.Progress.Current != 2 {
		t.Errorf("Expected progress to reach 2/2, got %+v", job.Progress)
	}
	if stored, _ := store.GetContactMessage(context.Background(), "m1"); stored.NotifiedAt == nil {
		t.Error("Expected message to be marked as notified")
	}

	// A second run is a no-op for an already notified message.
	jobID, _ = manager.Submit(model.JobTypeContactNotification, "m1", nil, task)
	waitForJob(t, manager, jobID)
	if len(notifier.sent) != 1 {
		t.Errorf("Expected no duplicate notification, got %v", notifier.sent)
	}
}

func TestContactNotification_Failures(t *testing.T) {
	manager := NewManager(1, nil)
	defer manager.Stop()

	store := &memoryContacts{messages: map[string]model.ContactMessage{"m1": {ID: "m1"}}}
	notifier := &recordingNotifier{err: errors.New("smtp down")}

	missing, _ := manager.Submit(model.JobTypeContactNotification, "nope", nil, ContactNotification(store, notifier, nil))
	failing, _ := manager.Submit(model.JobTypeContactNotification, "m1", nil, ContactNotification(store, notifier, nil))

	for _, id := range []string{missing, failing} {
		if job := waitForJob(t, manager, id); job.Status != model.JobStatusFailed {
			t.Errorf("Expected job %s to fail, got %s", id, job.Status)
		}
	}
	if stored, _ := store.GetContactMessage(context.Background(), "m1"); stored.NotifiedAt != nil {
		t.Error("Expected message to stay unnotified after a failed send")
	}
}

func TestVisitorCleanup(t *testing.T) {
	manager := NewManager(1, nil)
	defer manager.Stop()

	visitors := &memoryVisitors{}
	before := time.Now()

	jobID, err := manager.Submit(model.JobTypeVisitorCleanup, "", nil, VisitorCleanup(visitors, 30*24*time.Hour, nil))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if job := waitForJob(t, manager, jobID); job.Status != model.JobStatusCompleted {
		t.Fatalf("Expected cleanup to complete, got %s", job.Status)
	}

	expected := before.Add(-30 * 24 * time.Hour)
	if visitors.cutoff.Before(expected) || visitors.cutoff.After(time.Now().Add(-30*24*time.Hour)) {
		t.Errorf("Unexpected cutoff %v", visitors.cutoff)
	}
}

type countingFlusher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *countingFlusher) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func TestAnalyticsFlush(t *testing.T) {
	manager := NewManager(1, nil)
	defer manager.Stop()

	ok := &countingFlusher{}
	broken := &countingFlusher{err: errors.New("disk full")}

	okID, _ := manager.Submit(model.JobTypeAnalyticsFlush, "analytics", nil, AnalyticsFlush(ok))
	brokenID, _ := manager.Submit(model.JobTypeAnalyticsFlush, "analytics", nil, AnalyticsFlush(broken))

	if job := waitForJob(t, manager, okID); job.Status != model.JobStatusCompleted {
		t.Errorf("Expected flush to complete, got %s", job.Status)
	}
	if job := waitForJob(t, manager, brokenID); job.Status != model.JobStatusFailed {
		t.Errorf("Expected failing flush to fail, got %s", job.Status)
	}
	if ok.calls != 1 || broken.calls != 1 {
		t.Errorf("Expected one call each, got %d and %d", ok.calls, broken.calls)
	}
}

func TestManager_Every(t *testing.T) {
	manager := NewManager(1, nil)

	var mu sync.Mutex
	runs := 0
	manager.Every(time.Hour, model.JobTypeVisitorCleanup, "", func(context.Context, model.Job) error {
		mu.Lock()
		runs++
		mu.Unlock()
		return nil
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := runs
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	manager.Stop()

	if runs != 1 {
		t.Errorf("Expected exactly one immediate run, got %d", runs)
	}
}
