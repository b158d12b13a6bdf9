package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type screen int

const (
	screenList screen = iota
	screenDetail
	screenLogin
)

type appModel struct {
	ctx           context.Context
	services      *service.ClientServices
	currentScreen screen

	list   listModel
	detail detailModel
	login  loginModel

	err error
}

func newAppModel(ctx context.Context, services *service.ClientServices) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		currentScreen: screenList,
		list:          newListModel(),
		login:         newLoginModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.cmdLoadSaves()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savesLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.list.lastErr = msg.err
			return m, nil
		}
		m.list.lastErr = nil
		m.list.saves = msg.saves
		if m.list.idx >= len(m.list.saves) {
			m.list.idx = len(m.list.saves) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case saveLoadedMsg:
		if msg.err != nil {
			m.list.lastErr = msg.err
			m.currentScreen = screenList
			return m, nil
		}
		m.detail.content = msg.content
		return m, nil
	case pushDoneMsg:
		m.list.pushing = false
		if msg.err != nil {
			m.list.lastErr = msg.err
			return m, nil
		}
		m.list.lastErr = nil
		m.list.status = fmt.Sprintf("Pushed %d saves to cloud (%d failed)", msg.result.Synced, len(msg.result.Errors))
		return m, cmdClearStatus()
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.list.lastErr = msg.err
			return m, nil
		}
		m.list.lastErr = nil
		m.list.status = "Signed in as " + msg.user.Email
		m.currentScreen = screenList
		return m, cmdClearStatus()
	case folderOpenedMsg:
		if msg.err != nil {
			m.list.lastErr = msg.err
		}
		return m, nil
	case copiedMsg:
		if m.currentScreen == screenDetail {
			m.detail.status = "Copied!"
		}
		m.list.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.list.pushing {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenLogin:
		return m.updateLogin(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenLogin:
		body = m.login.View()
	}

	return appStyle.Render(body)
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.saves)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		save, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{save: save}
		m.currentScreen = screenDetail
		return m, m.cmdLoadSave(save.Path)
	case key.Matches(keyMsg, keys.sync):
		if m.list.pushing {
			return m, nil
		}
		m.list.pushing = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdPush())
	case key.Matches(keyMsg, keys.login):
		m.login = newLoginModel()
		m.currentScreen = screenLogin
	case key.Matches(keyMsg, keys.open):
		return m, m.cmdOpenFolder()
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		if m.detail.content == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.detail.content)
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNext(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrev(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			email := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if email == "" || password == "" {
				m.list.lastErr = errors.New("email and password are required")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(models.Credentials{Email: email, Password: password})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLoadSaves() tea.Cmd {
	documents := m.services.DocumentService
	return func() tea.Msg {
		saves, err := documents.ListSaves()
		return savesLoadedMsg{saves: saves, err: err}
	}
}

func (m appModel) cmdLoadSave(path string) tea.Cmd {
	documents := m.services.DocumentService
	return func() tea.Msg {
		content, err := documents.LoadSave(path)
		return saveLoadedMsg{content: content, err: err}
	}
}

func (m appModel) cmdPush() tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService
	return func() tea.Msg {
		result, err := sync.PushAll(ctx)
		return pushDoneMsg{result: result, err: err}
	}
}

func (m appModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	sync := m.services.SyncService
	return func() tea.Msg {
		user, err := sync.Login(ctx, creds)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m appModel) cmdOpenFolder() tea.Cmd {
	documents := m.services.DocumentService
	return func() tea.Msg {
		return folderOpenedMsg{err: documents.OpenStoreFolder()}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return folderOpenedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNext(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrev(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
