package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type fakeSchedulerConfig struct {
	redisURL    string
	queue       string
	concurrency int
}

func (c fakeSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c fakeSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c fakeSchedulerConfig) GetAsynqConcurrency() int  { return c.concurrency }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(fakeSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestNewClient_RejectsMalformedRedisURL(t *testing.T) {
	if _, err := NewClient(fakeSchedulerConfig{redisURL: "not-a-url"}); err == nil {
		t.Fatal("expected error for malformed redis url")
	}
}

func TestScheduleBookingReminder_EnqueuesScheduledTask(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(fakeSchedulerConfig{
		redisURL: "redis://" + mr.Addr(),
		queue:    "reminders",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer func() { _ = client.Close() }()

	payload := BookingReminderPayload{BookingID: "9f1c8c2e-9a39-4b5a-8f51-51b1f8f9a001"}
	runAt := time.Now().Add(24 * time.Hour)

	if err := client.ScheduleBookingReminder(context.Background(), payload, runAt); err != nil {
		t.Fatalf("ScheduleBookingReminder: %v", err)
	}

	if !mr.Exists("asynq:{reminders}:scheduled") {
		t.Fatalf("expected task in scheduled set, keys: %v", mr.Keys())
	}
}

func TestScheduleBookingReminder_NilClientIsNoop(t *testing.T) {
	var client *Client
	err := client.ScheduleBookingReminder(context.Background(), BookingReminderPayload{BookingID: "x"}, time.Now())
	if err != nil {
		t.Fatalf("nil client should drop the reminder, got %v", err)
	}
}

func TestBookingReminderTaskRoundTrip(t *testing.T) {
	task, err := NewBookingReminderTask(BookingReminderPayload{BookingID: "abc"})
	if err != nil {
		t.Fatalf("NewBookingReminderTask: %v", err)
	}
	if task.Type() != TaskBookingReminder {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskBookingReminder)
	}

	parsed, err := ParseBookingReminderPayload(task)
	if err != nil {
		t.Fatalf("ParseBookingReminderPayload: %v", err)
	}
	if parsed.BookingID != "abc" {
		t.Fatalf("bookingID = %q, want %q", parsed.BookingID, "abc")
	}
}
