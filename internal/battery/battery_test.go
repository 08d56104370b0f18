package battery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type flakySource struct {
	failures int
	calls    int
	state    ChargeState
	err      error
}

func (f *flakySource) Read(context.Context) (ChargeState, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return ChargeState{}, f.err
		}
		return ChargeState{}, errors.New("sensor busy")
	}
	return f.state, nil
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{State: ChargeState{Percent: 42}}
	got, err := src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Percent != 42 {
		t.Errorf("Percent = %d, want 42", got.Percent)
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		percent  int
		charging bool
		wantErr  bool
	}{
		{"bare number", "57\n", 57, false, false},
		{"with percent sign", "Battery: 24%", 24, false, false},
		{"charging", "80%; charging; 0:40 remaining", 80, true, false},
		{"discharging", "12%; discharging; 2:15 remaining", 12, false, false},
		{"full", "100%", 100, false, false},
		{"no digits", "unknown", 0, false, true},
		{"out of range", "250", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReading(tt.out)
			if tt.wantErr {
				if !errors.Is(err, ErrBadReading) {
					t.Fatalf("err = %v, want ErrBadReading", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Percent != tt.percent {
				t.Errorf("Percent = %d, want %d", got.Percent, tt.percent)
			}
			if got.Charging != tt.charging {
				t.Errorf("Charging = %v, want %v", got.Charging, tt.charging)
			}
		})
	}
}

func TestCommandSourceSuccess(t *testing.T) {
	src := CommandSource{Name: "echo", Args: []string{"63% charging"}}
	got, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Percent != 63 || !got.Charging {
		t.Errorf("got %+v, want 63%% charging", got)
	}
}

func TestCommandSourceMissingBinary(t *testing.T) {
	src := CommandSource{Name: "nonexistent-binary-xyz"}
	if _, err := src.Read(context.Background()); err == nil {
		t.Error("expected error for missing binary, got nil")
	}
}

func TestCommandSourceTimeout(t *testing.T) {
	src := CommandSource{Name: "sleep", Args: []string{"10"}, Timeout: 100 * time.Millisecond}
	_, err := src.Read(context.Background())
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout message, got: %v", err)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		kind    string
		command []string
		want    string
		wantErr bool
	}{
		{"", nil, "battery.SystemSource", false},
		{"system", nil, "battery.SystemSource", false},
		{"static", nil, "battery.StaticSource", false},
		{"command", []string{"echo", "50"}, "battery.CommandSource", false},
		{"command", nil, "", true},
		{"lemon", nil, "", true},
	}
	for _, tt := range tests {
		src, err := NewSource(tt.kind, 55, tt.command)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewSource(%q) expected error", tt.kind)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewSource(%q): %v", tt.kind, err)
		}
		if got := typeName(src); got != tt.want {
			t.Errorf("NewSource(%q) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case SystemSource:
		return "battery.SystemSource"
	case StaticSource:
		return "battery.StaticSource"
	case CommandSource:
		return "battery.CommandSource"
	}
	return "unknown"
}

func TestNewSourceStaticClamps(t *testing.T) {
	src, err := NewSource("static", 140, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := src.Read(context.Background())
	if got.Percent != 100 {
		t.Errorf("Percent = %d, want clamped to 100", got.Percent)
	}
}

func TestPeekRetries(t *testing.T) {
	src := &flakySource{failures: 2, state: ChargeState{Percent: 30}}
	svc := NewService(src, time.Second)

	got, err := svc.Peek(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Percent != 30 {
		t.Errorf("Percent = %d, want 30", got.Percent)
	}
	if src.calls != 3 {
		t.Errorf("calls = %d, want 3", src.calls)
	}
	if svc.Last().Percent != 30 {
		t.Errorf("Last() = %d, want 30", svc.Last().Percent)
	}
}

func TestPeekDegradesToDefault(t *testing.T) {
	src := &flakySource{failures: 1 << 30}
	svc := NewService(src, 150*time.Millisecond)

	got, err := svc.Peek(context.Background())
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Fatalf("err = %v, want ErrSensorUnavailable", err)
	}
	if got != Default {
		t.Errorf("got %+v, want Default", got)
	}
}

func TestPeekDegradesToLastKnown(t *testing.T) {
	src := &flakySource{failures: 1 << 30}
	svc := NewService(src, 100*time.Millisecond)
	svc.Observe(ChargeState{Percent: 18})

	got, err := svc.Peek(context.Background())
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Fatalf("err = %v, want ErrSensorUnavailable", err)
	}
	if got.Percent != 18 {
		t.Errorf("Percent = %d, want last known 18", got.Percent)
	}
}

func TestPeekNoBatteryIsPermanent(t *testing.T) {
	src := &flakySource{failures: 1 << 30, err: ErrNoBattery}
	svc := NewService(src, 5*time.Second)

	start := time.Now()
	_, err := svc.Peek(context.Background())
	if !errors.Is(err, ErrNoBattery) {
		t.Fatalf("err = %v, want ErrNoBattery", err)
	}
	if src.calls != 1 {
		t.Errorf("calls = %d, want a single attempt", src.calls)
	}
	if time.Since(start) > time.Second {
		t.Error("permanent errors should not be retried")
	}
}

func TestObserve(t *testing.T) {
	svc := NewService(StaticSource{}, 0)

	if !svc.Observe(ChargeState{Percent: 50}) {
		t.Error("first reading should be a change")
	}
	if svc.Observe(ChargeState{Percent: 50}) {
		t.Error("identical reading should not be a change")
	}
	if !svc.Observe(ChargeState{Percent: 49}) {
		t.Error("new percentage should be a change")
	}
	if !svc.Observe(ChargeState{Percent: 49, Charging: true, Plugged: true}) {
		t.Error("charging transition should be a change")
	}
}

func TestLastBeforeReading(t *testing.T) {
	svc := NewService(StaticSource{}, 0)
	if got := svc.Last(); got != Default {
		t.Errorf("Last() = %+v, want Default", got)
	}
}
