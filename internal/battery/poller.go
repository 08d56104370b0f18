package battery

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const readTimeout = 10 * time.Second

// PollMsg asks the event loop to take a battery reading.
type PollMsg time.Time

// StateMsg carries a reading back to the event loop.
type StateMsg struct {
	State ChargeState
	Err   error
}

// SchedulePoll returns a tea.Tick command for the next battery poll.
func SchedulePoll(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollMsg(t)
	})
}

// ReadCmd returns a tea.Cmd that reads the battery in the background.
func ReadCmd(svc *Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		state, err := svc.Read(ctx)
		return StateMsg{State: state, Err: err}
	}
}
