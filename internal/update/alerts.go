package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/model"
	"github.com/sandeepkv93/todosync/internal/scheduler"
)

// setError fills the single error slot and restarts its expiry.
func (m Model) setError(kind model.ErrorKind, cause error) Model {
	if cause != nil {
		m.logger.Debug("operation failed", "kind", string(kind), "err", cause)
	}
	m.Err = kind
	if m.alerts == nil {
		return m
	}
	seq, err := m.alerts.Arm(string(kind))
	if err != nil {
		m.logger.Debug("error timer unavailable", "err", err)
		return m
	}
	m.errSeq = seq
	return m
}

func (m Model) dismissError() Model {
	m.Err = ""
	if m.alerts != nil {
		m.alerts.Cancel()
	}
	return m
}

// onErrorExpired clears the error only when the expiry belongs to the current generation.
func (m Model) onErrorExpired(msg ErrorExpiredMsg) (Model, tea.Cmd) {
	if msg.Seq == m.errSeq {
		m.Err = ""
	}
	return m, waitForExpiryCmd(m.alerts)
}

func waitForExpiryCmd(alerts *scheduler.SlotTimer) tea.Cmd {
	if alerts == nil {
		return nil
	}
	ch := alerts.C()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ErrorExpiredMsg{Seq: ev.Seq}
	}
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	if m.alerts != nil {
		m.alerts.Stop()
	}
	return m, tea.Quit
}
