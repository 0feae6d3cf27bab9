package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEventBroadcaster_SubscribeBroadcast(t *testing.T) {
	eb := NewEventBroadcaster()

	ch := eb.Subscribe("job1")
	defer eb.Unsubscribe("job1", ch)

	event := ProgressEvent{
		JobID:         "job1",
		State:         StateRunning,
		RunsCompleted: 2,
		BestValue:     28,
		BestWeight:    14,
		Timestamp:     time.Now(),
	}
	eb.Broadcast(event)

	select {
	case received := <-ch:
		if received.RunsCompleted != 2 {
			t.Errorf("Expected 2 completed runs, got %d", received.RunsCompleted)
		}
		if received.BestValue != 28 {
			t.Errorf("Expected best value 28, got %d", received.BestValue)
		}
	case <-time.After(time.Second):
		t.Fatal("Did not receive broadcast event")
	}
}

func TestEventBroadcaster_LastEventReplay(t *testing.T) {
	eb := NewEventBroadcaster()

	// Broadcast before anyone subscribes
	eb.Broadcast(ProgressEvent{JobID: "job1", State: StateRunning, BestValue: 25})

	// A late subscriber still gets the last event
	ch := eb.Subscribe("job1")
	defer eb.Unsubscribe("job1", ch)

	select {
	case received := <-ch:
		if received.BestValue != 25 {
			t.Errorf("Expected replayed value 25, got %d", received.BestValue)
		}
	case <-time.After(time.Second):
		t.Fatal("Did not receive replayed event")
	}
}

func TestEventBroadcaster_MultipleClients(t *testing.T) {
	eb := NewEventBroadcaster()

	ch1 := eb.Subscribe("job1")
	ch2 := eb.Subscribe("job1")
	other := eb.Subscribe("job2")
	defer eb.Unsubscribe("job1", ch1)
	defer eb.Unsubscribe("job1", ch2)
	defer eb.Unsubscribe("job2", other)

	eb.Broadcast(ProgressEvent{JobID: "job1", BestValue: 30})

	for _, ch := range []chan ProgressEvent{ch1, ch2} {
		select {
		case received := <-ch:
			if received.BestValue != 30 {
				t.Errorf("Expected value 30, got %d", received.BestValue)
			}
		case <-time.After(time.Second):
			t.Fatal("Client did not receive event")
		}
	}

	select {
	case <-other:
		t.Error("Client for another job should not receive the event")
	default:
	}
}

func TestEventBroadcaster_CleanupJob(t *testing.T) {
	eb := NewEventBroadcaster()

	ch := eb.Subscribe("job1")
	eb.Broadcast(ProgressEvent{JobID: "job1", BestValue: 30})

	eb.CleanupJob("job1")

	// Drain the pre-cleanup event, then expect a closed channel
	for {
		_, ok := <-ch
		if !ok {
			break
		}
	}

	// A new subscriber gets no replay after cleanup
	fresh := eb.Subscribe("job1")
	defer eb.Unsubscribe("job1", fresh)
	select {
	case <-fresh:
		t.Error("No event should be replayed after cleanup")
	default:
	}
}

func TestHandleJobStream(t *testing.T) {
	s := NewServer(":8080", nil)
	job := s.jobManager.CreateJob(JobConfig{Algorithm: "greedy_ratio", InstancePath: "test.txt"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID+"/stream", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan bool)
	go func() {
		s.handleJobStream(w, req, job.ID)
		done <- true
	}()

	// Give the handler time to write the initial event
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream content type, got %s", ct)
	}

	// The first SSE frame carries the current job state
	scanner := bufio.NewScanner(w.Body)
	var dataLine string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			dataLine = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	if dataLine == "" {
		t.Fatal("No SSE data frame written")
	}

	var event ProgressEvent
	if err := json.Unmarshal([]byte(dataLine), &event); err != nil {
		t.Fatalf("SSE payload should be JSON: %v", err)
	}
	if event.JobID != job.ID {
		t.Errorf("Expected job ID %s, got %s", job.ID, event.JobID)
	}
	if event.State != StatePending {
		t.Errorf("Expected pending state, got %s", event.State)
	}
}

func TestHandleJobStream_NotFound(t *testing.T) {
	s := NewServer(":8080", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent/stream", nil)
	w := httptest.NewRecorder()

	s.handleJobStream(w, req, "nonexistent")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
