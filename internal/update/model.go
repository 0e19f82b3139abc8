package update

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/config"
	"github.com/sandeepkv93/todosync/internal/gateway"
	"github.com/sandeepkv93/todosync/internal/model"
	"github.com/sandeepkv93/todosync/internal/scheduler"
)

// Focus says which control receives key presses.
type Focus string

const (
	FocusInput Focus = "input"
	FocusList  Focus = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

// LoadingMarker names the single todo whose singular operation is in flight.
// ID 0 is the placeholder of a pending add, so Active tells set from unset.
type LoadingMarker struct {
	ID     int
	Active bool
}

func (l LoadingMarker) Is(id int) bool {
	return l.Active && l.ID == id
}

type Model struct {
	UserID         int
	Tasks          []model.Task
	Filter         model.Filter
	Err            model.ErrorKind
	Primary        LoadingMarker
	BulkLoadingIDs map[int]bool
	Placeholder    *model.Task
	Loading        bool
	Updating       bool
	Focus          Focus
	Cursor         int
	Editors        map[int]ItemEditor
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool

	gateway        gateway.Gateway
	alerts         *scheduler.SlotTimer
	errSeq         uint64
	requestTimeout time.Duration
	statusTimeout  time.Duration
	logger         *slog.Logger
	spinning       bool

	headerInput  textinput.Model
	commandInput textinput.Model
	loader       spinner.Model
	helpModel    help.Model
	listViewport viewport.Model
}

// TodosLoadedMsg carries the result of a full reload.
type TodosLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

type TodoAddedMsg struct {
	Title string
	Task  model.Task
	Err   error
}

// TodoDeletedMsg settles a single removal. Bulk is set for removals issued by clear completed.
type TodoDeletedMsg struct {
	ID   int
	Bulk bool
	Err  error
}

type TodoToggledMsg struct {
	ID        int
	Requested bool
	Task      model.Task
	Err       error
}

type TodoRenamedMsg struct {
	ID    int
	Title string
	Task  model.Task
	Err   error
}

type PatchResult struct {
	ID   int
	Task model.Task
	Err  error
}

// ToggleAllDoneMsg arrives once every patch of a toggle-all has settled.
type ToggleAllDoneMsg struct {
	Results []PatchResult
}

type ErrorExpiredMsg struct {
	Seq uint64
}

// ClearStatusMsg clears the status line if it still shows Text.
type ClearStatusMsg struct {
	Text string
}

// NewModel builds the controller. alerts may be nil, in which case errors and
// palette statuses stay until replaced.
func NewModel(cfg config.Runtime, gw gateway.Gateway, alerts *scheduler.SlotTimer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		UserID:         cfg.UserID,
		Filter:         model.FilterAll,
		Loading:        cfg.UserID > 0,
		BulkLoadingIDs: make(map[int]bool),
		Editors:        make(map[int]ItemEditor),
		Focus:          FocusInput,
		Keys: GlobalKeyMap{
			Help: "?",
			Quit: "q",
		},
		gateway:        gw,
		alerts:         alerts,
		requestTimeout: cfg.RequestTimeout(),
		logger:         logger,
		// Init starts the tick chain whenever it issues the first load.
		spinning: cfg.UserID > 0,
	}
	if alerts != nil {
		m.statusTimeout = alerts.Delay()
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.headerInput = textinput.New()
	m.headerInput.Prompt = ""
	m.headerInput.Placeholder = "What needs to be done?"
	m.headerInput.CharLimit = 256
	m.headerInput.Width = 48
	m.headerInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loader = spinner.New()
	m.loader.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.listViewport = viewport.New(60, 12)
}

// syncBubbleData keeps the widgets in line with controller state after every update.
func (m *Model) syncBubbleData() {
	if m.inputDisabled() || m.Focus != FocusInput || m.Palette.Active {
		m.headerInput.Blur()
	} else {
		m.headerInput.Focus()
	}
	visible := m.VisibleTasks()
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) HasIdentity() bool {
	return m.UserID > 0
}

// Draft is the header input text.
func (m Model) Draft() string {
	return m.headerInput.Value()
}

// VisibleTasks is the filtered view of Tasks. It never changes Tasks.
func (m Model) VisibleTasks() []model.Task {
	return m.Filter.Apply(m.Tasks)
}

// inputDisabled is true while a load or a singular operation is in flight, and
// for the whole life of a pending add even if another item took the marker.
func (m Model) inputDisabled() bool {
	return m.Loading || m.Primary.Active || m.Placeholder != nil
}

// ItemLoading reports whether the loader for id is visible.
func (m Model) ItemLoading(id int) bool {
	if m.Primary.Is(id) || m.BulkLoadingIDs[id] {
		return true
	}
	ed, ok := m.Editors[id]
	return ok && ed.LocalBusy
}

// spin starts the loader tick chain unless one is already running.
func (m *Model) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.loader.Tick
}

func (m Model) busy() bool {
	return m.Loading || m.Updating || m.Primary.Active || len(m.BulkLoadingIDs) > 0 || m.anyEditorBusy()
}

func (m Model) anyEditorBusy() bool {
	for _, ed := range m.Editors {
		if ed.LocalBusy {
			return true
		}
	}
	return false
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.VisibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}
