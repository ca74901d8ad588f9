package servo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"servocode-go/boards"
	"servocode-go/drivers/servo/simtimer"
	"servocode-go/errcode"
)

func compareWrites(calls []simtimer.Call) int {
	n := 0
	for _, c := range calls {
		if c.Op == "set_compare" {
			n++
		}
	}
	return n
}

func TestSweepReachesTarget(t *testing.T) {
	s, hw := newServo(clk72, nil)
	mustAttach(t, s, boards.A0)
	s.Write(0)
	hw.ResetCalls()

	if err := s.Sweep(context.Background(), 90, 40*time.Millisecond, 4); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	// Read's +1 correction may land one degree past an interior target.
	if got := s.Read(); absDiff(got, 90) > 1 {
		t.Fatalf("Read after sweep = %d", got)
	}
	if n := compareWrites(hw.Calls()); n != 4 {
		t.Fatalf("expected 4 compare writes, got %d", n)
	}
}

func TestSweepWithoutStepsJumps(t *testing.T) {
	s, hw := newServo(clk72, nil)
	mustAttach(t, s, boards.A0)
	hw.ResetCalls()

	if err := s.Sweep(context.Background(), 135, time.Second, 0); err != nil {
		t.Fatal(err)
	}
	if got := s.Read(); absDiff(got, 135) > 1 {
		t.Fatalf("Read = %d", got)
	}
	if n := compareWrites(hw.Calls()); n != 1 {
		t.Fatalf("expected a single write, got %d", n)
	}
}

func TestSweepClampsTarget(t *testing.T) {
	s, _ := newServo(clk72, nil)
	mustAttach(t, s, boards.A0)
	s.Write(90)
	if err := s.Sweep(context.Background(), 400, 20*time.Millisecond, 2); err != nil {
		t.Fatal(err)
	}
	if got := s.Read(); got != 180 {
		t.Fatalf("Read = %d", got)
	}
}

func TestSweepCancelled(t *testing.T) {
	s, hw := newServo(clk72, nil)
	mustAttach(t, s, boards.A0)
	s.Write(0)
	hw.ResetCalls()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Sweep(ctx, 180, time.Second, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := compareWrites(hw.Calls()); n != 0 {
		t.Fatalf("%d writes after cancellation", n)
	}
	if got := s.Read(); got != 0 {
		t.Fatalf("servo moved: %d", got)
	}
}

func TestSweepDetached(t *testing.T) {
	s, _ := newServo(clk72, nil)
	err := s.Sweep(context.Background(), 90, 0, 0)
	if errcode.Of(err) != errcode.NotAttached {
		t.Fatalf("got %v", err)
	}
}
