package controller

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.projectEvents = map[tcell.Key]KeyEvent{}
	c.taskEvents = map[tcell.Key]KeyEvent{}
	c.timingEvents = map[tcell.Key]KeyEvent{}
	c.reportEvents = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initProjectEvents(c.projectEvents)
	c.initTaskEvents(c.taskEvents)
	c.initTimingEvents(c.timingEvents)
	c.initReportEvents(c.reportEvents)
	c.initFormEvents(c.formEvents)
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) initProjectEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEnter] = KeyEvent{
		Description: "Open Tasks",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.openSelectedProject()

			return nil
		},
	}

	events[KeyN] = KeyEvent{
		Description: "New Project",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToProjectForm()

			return nil
		},
	}

	events[KeyD] = KeyEvent{
		Description: "Delete Project",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.confirmDeleteProject()

			return nil
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Report",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showReport()

			return nil
		},
	}

	events[KeyB] = KeyEvent{
		Description: "Burndown",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showBurndown()

			return nil
		},
	}

	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) initTaskEvents(events map[tcell.Key]KeyEvent) {
	events[KeyS] = KeyEvent{
		Description: "Start Timer",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.startSelectedTimer()

			return nil
		},
	}

	events[KeyP] = KeyEvent{
		Description: "Pause/Resume",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.toggleSelectedTimer()

			return nil
		},
	}

	events[KeyX] = KeyEvent{
		Description: "Stop Timer",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.stopSelectedTimer()

			return nil
		},
	}

	events[KeyC] = KeyEvent{
		Description: "Toggle Done",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.toggleSelectedCompleted()

			return nil
		},
	}

	events[KeyN] = KeyEvent{
		Description: "New Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToTaskForm()

			return nil
		},
	}

	events[KeyD] = KeyEvent{
		Description: "Delete Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.confirmDeleteTask()

			return nil
		},
	}

	events[KeyT] = KeyEvent{
		Description: "Timings",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showTimings()

			return nil
		},
	}

	events[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.leaveTasks()

			return nil
		},
	}
}

func (c *Controller) initTimingEvents(events map[tcell.Key]KeyEvent) {
	events[KeyD] = KeyEvent{
		Description: "Delete Timing",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.deleteSelectedTiming()

			return nil
		},
	}

	events[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showTasks()

			return nil
		},
	}
}

func (c *Controller) initReportEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showProjects()

			return nil
		},
	}
}

func (c *Controller) initFormEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.closeForm()

			return nil
		},
	}
}
