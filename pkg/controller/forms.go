package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getProjectFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	name := "projectForm"

	header := c.getHeader(name, "New Project", c.formEvents)
	c.initProjectForm()

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.projectForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getTaskFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	name := "taskForm"

	header := c.getHeader(name, "New Task", c.formEvents)
	c.initTaskForm()

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) switchToProjectForm() {
	c.projectNameField.SetText("")
	c.projectCostField.SetText("")
	c.projectForm.SetFocus(0)

	c.formReturn = c.showProjects

	c.pages.SwitchToPage(pageName("projectForm"))
	c.app.SetInputCapture(c.handleFormKeys)
	c.app.SetFocus(c.projectForm)
}

func (c *Controller) switchToTaskForm() {
	if c.selectedProject == nil {
		return
	}

	c.taskNameField.SetText("")
	c.taskForm.SetFocus(0)

	c.formReturn = c.showTasks

	c.pages.SwitchToPage(pageName("taskForm"))
	c.app.SetInputCapture(c.handleFormKeys)
	c.app.SetFocus(c.taskForm)
}

// closeForm returns to whichever screen opened the form; that screen
// reinstalls its own key handling.
func (c *Controller) closeForm() {
	if c.formReturn != nil {
		c.formReturn()
	}
}

func (c *Controller) initProjectForm() {
	nameMax := 50
	costMax := 12

	c.projectForm = tview.NewForm().
		AddInputField("Name", "", nameMax, nil, nil).
		AddInputField("Hourly cost", "", costMax, tview.InputFieldFloat, nil)

	c.projectNameField, _ = c.projectForm.GetFormItemByLabel("Name").(*tview.InputField)
	c.projectCostField, _ = c.projectForm.GetFormItemByLabel("Hourly cost").(*tview.InputField)

	c.projectForm.AddButton("Save", func() {
		name := strings.TrimSpace(c.projectNameField.GetText())
		if name == "" {
			c.showNotice("A project needs a name.")

			return
		}

		cost := 0.0

		if text := strings.TrimSpace(c.projectCostField.GetText()); text != "" {
			var err error

			cost, err = strconv.ParseFloat(text, 64)
			if err != nil {
				c.showNotice(fmt.Sprintf("'%s' is not a valid hourly cost.", text))

				return
			}
		}

		log.Debug().Msgf("saving project with name '%s'", name)

		if _, err := c.db.NewProject(c.ctx, name, cost); err != nil {
			log.Err(err).Msg("error saving the new project")
			c.showNotice(fmt.Sprintf("Could not save project '%s': %s", name, err))

			return
		}

		c.reloadProjects()
		c.showProjects()
	})

	c.projectForm.AddButton("Cancel", func() {
		c.closeForm()
	})
}

func (c *Controller) initTaskForm() {
	nameMax := 50

	c.taskForm = tview.NewForm().
		AddInputField("Name", "", nameMax, nil, nil)

	c.taskNameField, _ = c.taskForm.GetFormItemByLabel("Name").(*tview.InputField)

	c.taskForm.AddButton("Save", func() {
		name := strings.TrimSpace(c.taskNameField.GetText())
		if name == "" {
			c.showNotice("A task needs a name.")

			return
		}

		if c.selectedProject == nil {
			return
		}

		log.Debug().Msgf("saving task with name '%s' in project '%s'", name, c.selectedProject.Name)

		if _, err := c.db.NewTask(c.ctx, c.selectedProject.ID, name); err != nil {
			log.Err(err).Msg("error saving the new task")
			c.showNotice(fmt.Sprintf("Could not save task '%s': %s", name, err))

			return
		}

		c.reloadTasks()
		c.showTasks()
	})

	c.taskForm.AddButton("Cancel", func() {
		c.closeForm()
	})
}
