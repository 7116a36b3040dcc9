package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}

		time.Sleep(10 * time.Millisecond)
	}
}

func TestAddCronAndRunNow(t *testing.T) {
	s, err := NewScheduler()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = s.Shutdown() })

	ran := make(chan struct{}, 1)

	err = s.AddCron(context.Background(), "test.ok", "0 3 * * *", func(context.Context) error {
		ran <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("AddCron: %v", err)
	}

	if err := s.AddCron(context.Background(), "test.ok", "0 3 * * *", nil); err == nil {
		t.Error("duplicate job name accepted")
	}

	s.Start()

	if err := s.RunNow("test.ok"); err != nil {
		t.Fatalf("RunNow: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	waitFor(t, func() bool {
		info, _ := s.GetJobInfoByName("test.ok")
		return info.Runs == 1
	})

	info, _ := s.GetJobInfoByName("test.ok")
	if info.Status != StatusScheduled || info.LastSuccess.IsZero() {
		t.Errorf("info = %+v", info)
	}
}

func TestJobErrorRecorded(t *testing.T) {
	s, err := NewScheduler()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = s.Shutdown() })

	_ = s.AddCron(context.Background(), "test.fail", "0 3 * * *", func(context.Context) error {
		return errors.New("boom")
	})

	s.Start()
	_ = s.RunNow("test.fail")

	waitFor(t, func() bool {
		info, _ := s.GetJobInfoByName("test.fail")
		return info.Runs == 1
	})

	info, _ := s.GetJobInfoByName("test.fail")
	if info.Status != StatusError || info.Error != "boom" {
		t.Errorf("info = %+v", info)
	}

	if err := s.RemoveJobByName("test.fail"); err != nil {
		t.Fatal(err)
	}

	if len(s.GetJobInfos()) != 0 {
		t.Error("job info not removed")
	}

	if err := s.RunNow("missing"); err == nil {
		t.Error("RunNow on unknown job should fail")
	}
}
