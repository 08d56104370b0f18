// Package battery reads the host's charge state and turns readings into
// change events for the watchface.
package battery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	sysbattery "github.com/distatus/battery"
)

// ChargeState is one battery reading.
type ChargeState struct {
	Percent  int
	Charging bool
	Plugged  bool
}

// Default is assumed when no reading has ever succeeded.
var Default = ChargeState{Percent: 100}

var (
	ErrSensorUnavailable = errors.New("battery: sensor unavailable")
	ErrNoBattery         = errors.New("battery: no battery present")
	ErrBadReading        = errors.New("battery: unparseable reading")
)

// Source produces charge readings.
type Source interface {
	Read(ctx context.Context) (ChargeState, error)
}

// StaticSource always reports the same state.
type StaticSource struct {
	State ChargeState
}

func (s StaticSource) Read(context.Context) (ChargeState, error) {
	return s.State, nil
}

// SystemSource reads the machine's batteries through the OS and reports
// their combined charge.
type SystemSource struct{}

func (SystemSource) Read(ctx context.Context) (ChargeState, error) {
	if err := ctx.Err(); err != nil {
		return ChargeState{}, err
	}
	bats, err := sysbattery.GetAll()
	if err != nil && len(bats) == 0 {
		return ChargeState{}, fmt.Errorf("reading batteries: %w", err)
	}

	var current, full float64
	var state ChargeState
	for _, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		current += b.Current
		full += b.Full
		switch b.State.String() {
		case "Charging":
			state.Charging = true
			state.Plugged = true
		case "Full":
			state.Plugged = true
		}
	}
	if full <= 0 {
		return ChargeState{}, ErrNoBattery
	}
	state.Percent = clampPercent(int(current / full * 100))
	return state, nil
}

const defaultCommandTimeout = 5 * time.Second

// CommandSource runs an external command and parses the first integer it
// prints as the charge percentage. Output mentioning "charging" (but not
// "discharging") marks the battery as charging.
type CommandSource struct {
	Name    string
	Args    []string
	Timeout time.Duration
}

func (c CommandSource) Read(ctx context.Context) (ChargeState, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	stdout, err := runCmd(ctx, timeout, c.Name, c.Args...)
	if err != nil {
		return ChargeState{}, fmt.Errorf("running %s: %w", c.Name, err)
	}
	return parseReading(stdout.String())
}

// runCmd executes a command with a timeout and returns stdout.
func runCmd(ctx context.Context, timeout time.Duration, name string, args ...string) (*bytes.Buffer, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s timed out after %v", name, timeout)
		}
		return nil, err
	}
	return &stdout, nil
}

func parseReading(out string) (ChargeState, error) {
	start := strings.IndexFunc(out, isDigit)
	if start < 0 {
		return ChargeState{}, fmt.Errorf("%w: %q", ErrBadReading, strings.TrimSpace(out))
	}
	end := start
	for end < len(out) && isDigit(rune(out[end])) {
		end++
	}
	pct, err := strconv.Atoi(out[start:end])
	if err != nil || pct > 100 {
		return ChargeState{}, fmt.Errorf("%w: %q", ErrBadReading, out[start:end])
	}

	lower := strings.ToLower(out)
	charging := strings.Contains(strings.ReplaceAll(lower, "discharging", ""), "charging")
	return ChargeState{Percent: pct, Charging: charging, Plugged: charging}, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}

// NewSource builds the source named by kind: "system", "command" or "static".
func NewSource(kind string, level int, command []string) (Source, error) {
	switch kind {
	case "", "system":
		return SystemSource{}, nil
	case "static":
		return StaticSource{State: ChargeState{Percent: clampPercent(level)}}, nil
	case "command":
		if len(command) == 0 {
			return nil, errors.New("battery: command source needs a command")
		}
		return CommandSource{Name: command[0], Args: command[1:]}, nil
	default:
		return nil, fmt.Errorf("battery: unknown source %q", kind)
	}
}
