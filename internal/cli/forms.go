package cli

import (
	"fmt"
	"strconv"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dayboardHuhTheme returns a custom huh theme using the Gruvbox palette.
func dayboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRequiredText rejects empty input.
func validateRequiredText(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDateKey accepts a YYYY-MM-DD date string.
func validateDateKey(s string) error {
	if _, err := daykey.ParseKey(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateScore accepts an integer within the rating scale.
func validateScore(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	return domain.ValidateScore(v)
}

// dateInput returns a huh.Input for a YYYY-MM-DD date field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(daykey.Today().Key()).
		Value(value).
		Validate(validateDateKey)
}

// taskForm collects a title, optional description, and due date.
func taskForm(title, description, due *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequiredText("title")),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(description),
			dateInput("Due Date (YYYY-MM-DD)", due),
		),
	).WithTheme(dayboardHuhTheme()).WithShowHelp(false)
}

// goalForm collects goal text and a target date.
func goalForm(text, target *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(text).
				Validate(validateRequiredText("goal")),
			dateInput("Target Date (YYYY-MM-DD)", target),
		),
	).WithTheme(dayboardHuhTheme()).WithShowHelp(false)
}

// scoreForm collects a 1-10 performance score.
func scoreForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How did the day go? (1-10)").
				Placeholder("7").
				Value(value).
				Validate(validateScore),
		),
	).WithTheme(dayboardHuhTheme()).WithShowHelp(false)
}

// reflectionForm collects the free-text reflection, pre-populated with the
// current content.
func reflectionForm(content *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Reflection").
				Value(content),
		),
	).WithTheme(dayboardHuhTheme()).WithShowHelp(false)
}
