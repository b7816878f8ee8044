package exam

import "testing"

func TestTimerExpiresOnce(t *testing.T) {
	timer := NewTimer()
	expired := 0
	if err := timer.Start(5, func() { expired++ }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 5; i++ {
		timer.Tick()
	}

	if expired != 1 {
		t.Fatalf("expired %d times, want 1", expired)
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", timer.Remaining())
	}
	if timer.Running() {
		t.Error("timer still running after expiry")
	}

	// ticks after expiry are inert
	timer.Tick()
	timer.Tick()
	if expired != 1 {
		t.Errorf("expired %d times after extra ticks, want 1", expired)
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining = %d after extra ticks, want 0", timer.Remaining())
	}
}

func TestTimerStopPreventsExpiry(t *testing.T) {
	timer := NewTimer()
	expired := 0
	if err := timer.Start(3, func() { expired++ }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	timer.Tick()
	timer.Stop()

	for i := 0; i < 5; i++ {
		timer.Tick()
	}

	if expired != 0 {
		t.Errorf("expired %d times after Stop, want 0", expired)
	}
}

func TestTimerStopIdempotent(t *testing.T) {
	timer := NewTimer()
	if err := timer.Start(10, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	timer.Stop()
	timer.Stop() // must not panic on the closed channel
	if timer.Running() {
		t.Error("timer running after Stop")
	}
}

func TestTimerDoubleStart(t *testing.T) {
	timer := NewTimer()
	if err := timer.Start(10, nil); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := timer.Start(10, nil); err != ErrTimerRunning {
		t.Errorf("second Start = %v, want ErrTimerRunning", err)
	}

	// stopped timers can be started again
	timer.Stop()
	if err := timer.Start(5, nil); err != nil {
		t.Errorf("Start after Stop: %v", err)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1800, "30:00"},
		{299, "04:59"},
		{65, "01:05"},
		{9, "00:09"},
		{0, "00:00"},
		{-3, "00:00"},
	}

	for _, tc := range tests {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
