package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/config"
	"timetrack/pkg/db"
	"timetrack/pkg/timer"
)

const (
	pageProjects = "projects"
	pageTasks    = "tasks"
	pageTimings  = "timings"
	pageReport   = "report"
	pageBurndown = "burndown"

	headerColumns = 3
)

// Controller mediates between the store, the timers, and the view.
type Controller struct {
	ctx context.Context
	db  *db.Database
	cfg config.Config

	app   *tview.Application
	pages *tview.Pages

	// activeEvents is the shortcut map of the visible screen; nil while a
	// modal is up so nothing fires behind it.
	activeEvents  map[tcell.Key]KeyEvent
	projectEvents map[tcell.Key]KeyEvent
	taskEvents    map[tcell.Key]KeyEvent
	timingEvents  map[tcell.Key]KeyEvent
	reportEvents  map[tcell.Key]KeyEvent
	formEvents    map[tcell.Key]KeyEvent

	projects        []*db.Project
	projectsTable   *tview.Table
	selectedProject *db.Project

	totals       []*db.TaskTotal
	tasksTable   *tview.Table
	selectedTask *db.TaskTotal
	timers       *timer.Set

	timings        []*db.Timing
	timingsTable   *tview.Table
	selectedTiming *db.Timing

	reportTable   *tview.Table
	burndownTable *tview.Table

	projectForm      *tview.Form
	projectNameField *tview.InputField
	projectCostField *tview.InputField
	taskForm         *tview.Form
	taskNameField    *tview.InputField
	formReturn       func()

	headerTables map[string]*tview.Table
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, database *db.Database, cfg config.Config) (*Controller, error) {
	c := Controller{
		ctx:          ctx,
		db:           database,
		cfg:          cfg,
		app:          tview.NewApplication(),
		headerTables: map[string]*tview.Table{},
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go starts the app.
func (c *Controller) Go() {
	c.pages = tview.NewPages()

	c.pages.AddPage(pageName(pageProjects), c.getProjectsGrid(), true, true)
	c.pages.AddPage(pageName(pageTasks), c.getTasksGrid(), true, false)
	c.pages.AddPage(pageName(pageTimings), c.getTimingsGrid(), true, false)
	c.pages.AddPage(pageName(pageReport), c.getReportGrid(), true, false)
	c.pages.AddPage(pageName(pageBurndown), c.getBurndownGrid(), true, false)
	c.pages.AddPage(pageName("projectForm"), c.getProjectFormGrid(), true, false)
	c.pages.AddPage(pageName("taskForm"), c.getTaskFormGrid(), true, false)

	c.reloadProjects()
	c.showProjects()

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		panic(err)
	}
}

func pageName(name string) string {
	return "page-" + name
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.activeEvents[key]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.formEvents[evt.Key()]; ok {
		return k.Action(evt)
	}

	return evt
}

// getHeader returns the header shown above each screen: the title followed
// by the screen's keyboard shortcuts laid out in sorted columns.
func (c *Controller) getHeader(name, title string, events map[tcell.Key]KeyEvent) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.headerTables[name] = table

	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))

	shortcuts := []string{}

	for key, event := range events {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	sort.Strings(shortcuts)

	for i, text := range shortcuts {
		table.SetCell(i/headerColumns+1, i%headerColumns, tview.NewTableCell(text).SetExpansion(1))
	}

	return table
}

// setHeaderTitle updates the title cell of a screen header, e.g. to name
// the project whose tasks are on display.
func (c *Controller) setHeaderTitle(name, title string) {
	if table, ok := c.headerTables[name]; ok {
		table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
	}
}

// showConfirm puts up a modal question. Screen shortcuts are suspended
// until it is dismissed; action runs only when the user picks verb.
func (c *Controller) showConfirm(message, verb string, action func()) {
	prevEvents := c.activeEvents
	c.activeEvents = nil

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{verb, "Cancel"}).
		SetDoneFunc(func(index int, label string) {
			c.pages.RemovePage(pageName("confirm"))

			c.activeEvents = prevEvents

			if label == verb {
				action()
			}
		})

	c.pages.AddPage(pageName("confirm"), modal, true, true)
	c.app.SetFocus(modal)
}

// showNotice puts up a dismissible notice naming a failed operation.
func (c *Controller) showNotice(message string) {
	prevEvents := c.activeEvents
	c.activeEvents = nil

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(index int, label string) {
			c.pages.RemovePage(pageName("notice"))

			c.activeEvents = prevEvents
		})

	c.pages.AddPage(pageName("notice"), modal, true, true)
	c.app.SetFocus(modal)
}

// persistTiming appends a stopped timer's elapsed seconds to the ledger.
// Runs as the Set's OnStop callback, before the re-fetch the stop triggers.
func (c *Controller) persistTiming(taskID int64, seconds int) {
	if _, err := c.db.AddTiming(c.ctx, taskID, seconds); err != nil {
		log.Err(err).Msgf("error saving timing of %d seconds for task %d", seconds, taskID)

		// a foreign key failure means the task is gone; either way the
		// user learns which operation lost what
		c.showNotice(fmt.Sprintf(
			"Could not save %s of tracked time: %s", timer.FormatTotalTime(seconds), err,
		))
	}
}

// tasksDirty is the Set's OnTick callback; it fires on the tick goroutine,
// so the redraw goes through the application queue.
func (c *Controller) tasksDirty(taskID int64, seconds int) {
	c.app.QueueUpdateDraw(func() {})
}

func (c *Controller) newTimerSet() *timer.Set {
	var sink timer.NotificationSink = timer.NopSink{}
	if c.cfg.Notifications {
		sink = timer.DesktopSink{AppName: "timetrack"}
	}

	return timer.NewSet(timer.SetConfig{
		TickInterval: time.Second,
		Sink:         sink,
		OnTick:       c.tasksDirty,
		OnStop:       c.persistTiming,
		OnChange: func(runningTaskID int64) {
			c.reloadTasks()
		},
	})
}
