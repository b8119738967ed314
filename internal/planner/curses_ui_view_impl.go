package planner

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/workout-planner/internal/session"
	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

// Page names for tview.Pages
const (
	pageSchedule = "schedule"
	pageProgress = "progress"
	pageSettings = "settings"
	pageSession  = "session"
)

// Width of the session progress bar in cells
const progressBarWidth = 30

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Schedule mode components
	scheduleFlex       *tview.Flex
	scheduleTabWidgets []*tview.Box
	weekSummary        *tview.TextView
	dayList            *tview.List
	dayDetailsPanel    *tview.TextView
	schedule           ScheduleState

	// Progress mode components
	progressFlex       *tview.Flex
	progressTabWidgets []*tview.Box
	progressPanel      *tview.TextView

	// Settings mode components
	settingsFlex       *tview.Flex
	settingsTabWidgets []*tview.Box
	settingsForm       *tview.Form
	levelDropDown      *tview.DropDown
	daysInput          *tview.InputField
	durationInput      *tview.InputField
	groupCheckboxes    map[string]*tview.Checkbox

	// Session mode components
	sessionFlex       *tview.Flex
	sessionTabWidgets []*tview.Box
	sessionPanel      *tview.TextView
	repsInput         *tview.InputField
	weightInput       *tview.InputField
	upcomingPanel     *tview.TextView
	setKey            string // identifies the set the inputs belong to
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:          logger,
		app:             app,
		model:           model,
		currentMode:     UIModeSchedule,
		groupCheckboxes: make(map[string]*tview.Checkbox),
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Create shared log view
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs during shutdown
	// when the app has been stopped but log messages are still being written.
	// The BaseUIView's event listeners already call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	// Create pages container for mode switching
	ui.pages = tview.NewPages()

	// Initialize each mode
	ui.initScheduleMode(controller)
	ui.initProgressMode(controller)
	ui.initSettingsMode(controller)
	ui.initSessionMode(controller)

	// Add pages
	ui.pages.AddPage(pageSchedule, ui.scheduleFlex, true, true)
	ui.pages.AddPage(pageProgress, ui.progressFlex, true, false)
	ui.pages.AddPage(pageSettings, ui.settingsFlex, true, false)
	ui.pages.AddPage(pageSession, ui.sessionFlex, true, false)

	// Create main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	// Set initial focus
	ui.setFocusForCurrentMode()
}

func newInstructions(text string) *tview.TextView {
	instructions := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructions.SetText(text)
	return instructions
}

// initScheduleMode sets up the Schedule mode UI
func (ui *CursesUIViewImpl) initScheduleMode(controller *UIController) {
	instructionsText := newInstructions("[yellow]Enter[white] Start Workout  |  [yellow]Tab[white] Cycle Panels  |  [yellow]Esc[white] Quit\n[yellow]1[white] Schedule  |  [yellow]2[white] Progress  |  [yellow]3[white] Settings")

	ui.weekSummary = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.weekSummary.SetBorder(true).SetTitle(" This Week ")

	ui.dayList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < 0 || index >= len(workout.AllDays) {
				return
			}
			ui.logger.Printf("UI: Day selected: %s", workout.AllDays[index])
			controller.StartDay(workout.AllDays[index])
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			// Update details panel when selection changes
			ui.updateDayDetailsDisplay(index)
		})
	ui.dayList.SetBorder(true).SetTitle(" Weekly Plan ")

	ui.dayDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.dayDetailsPanel.SetBorder(true).SetTitle(" Workout Details ")
	ui.updateDayDetailsDisplay(-1)

	ui.scheduleTabWidgets = append(ui.scheduleTabWidgets, ui.dayList.Box)
	ui.scheduleTabWidgets = append(ui.scheduleTabWidgets, ui.dayDetailsPanel.Box)

	listRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.dayList, 0, 1, true).
		AddItem(ui.dayDetailsPanel, 0, 1, false)

	ui.scheduleFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.weekSummary, 4, 0, false).
		AddItem(listRow, 0, 1, true)
}

// initProgressMode sets up the Progress mode UI
func (ui *CursesUIViewImpl) initProgressMode(controller *UIController) {
	instructionsText := newInstructions("[yellow]1[white] Schedule  |  [yellow]2[white] Progress  |  [yellow]3[white] Settings  |  [yellow]Esc[white] Quit")

	ui.progressPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetScrollable(true)
	ui.progressPanel.SetBorder(true).SetTitle(" Progress ")
	ui.updateProgressDisplay(ProgressState{})

	ui.progressTabWidgets = append(ui.progressTabWidgets, ui.progressPanel.Box)

	ui.progressFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 1, 0, false).
		AddItem(ui.progressPanel, 0, 1, true)
}

// initSettingsMode sets up the Settings mode UI
func (ui *CursesUIViewImpl) initSettingsMode(controller *UIController) {
	instructionsText := newInstructions("[yellow]Tab[white] Next Field  |  [yellow]Enter[white] Select  |  [yellow]Esc[white] Quit\n[yellow]1[white] Schedule  |  [yellow]2[white] Progress  |  [yellow]3[white] Settings")

	levels := make([]string, len(workout.AllFitnessLevels))
	for i, level := range workout.AllFitnessLevels {
		levels[i] = string(level)
	}

	ui.settingsForm = tview.NewForm()
	ui.settingsForm.AddDropDown("Fitness level", levels, 1, nil)
	ui.settingsForm.AddInputField("Workout days / week", "", 4, tview.InputFieldInteger, nil)
	ui.settingsForm.AddInputField("Session minutes", "", 4, tview.InputFieldInteger, nil)
	for _, group := range workout.MuscleGroups {
		ui.settingsForm.AddCheckbox(titleCase(group), false, nil)
		ui.groupCheckboxes[group] = ui.settingsForm.GetFormItem(ui.settingsForm.GetFormItemCount() - 1).(*tview.Checkbox)
	}
	ui.levelDropDown = ui.settingsForm.GetFormItem(0).(*tview.DropDown)
	ui.daysInput = ui.settingsForm.GetFormItem(1).(*tview.InputField)
	ui.durationInput = ui.settingsForm.GetFormItem(2).(*tview.InputField)

	ui.settingsForm.AddButton("Save", func() {
		settings, err := ui.settingsFromForm()
		if err != nil {
			ui.logger.Printf("UI: %v", err)
			return
		}
		controller.SaveSettings(settings)
	})
	ui.settingsForm.AddButton("Generate Plan", func() {
		controller.GeneratePlan()
	})
	ui.settingsForm.SetBorder(true).SetTitle(" Settings ")

	ui.settingsTabWidgets = append(ui.settingsTabWidgets, ui.settingsForm.Box)

	ui.settingsFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.settingsForm, 0, 1, true)
}

// initSessionMode sets up the Session mode UI
func (ui *CursesUIViewImpl) initSessionMode(controller *UIController) {
	instructionsText := newInstructions("[yellow]C[white] Complete Set  |  [yellow]S[white] Skip Exercise  |  [yellow]R[white] Skip Rest  |  [yellow]Space[white] Pause/Resume Rest\n[yellow]Tab[white] Reps/Weight  |  [yellow]F[white] Finish & Save  |  [yellow]Q[white] Exit Workout")

	ui.sessionPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.sessionPanel.SetBorder(true).SetTitle(" Workout ")

	completeFromInputs := func(key tcell.Key) {
		if key == tcell.KeyEnter {
			controller.CompleteSet(ui.repsInput.GetText(), ui.weightInput.GetText())
		}
	}

	ui.repsInput = tview.NewInputField().
		SetLabel("Reps:   ").
		SetFieldWidth(8).
		SetAcceptanceFunc(tview.InputFieldInteger).
		SetChangedFunc(func(text string) { controller.EnterReps(text) }).
		SetDoneFunc(completeFromInputs)
	ui.weightInput = tview.NewInputField().
		SetLabel("Weight: ").
		SetFieldWidth(12).
		SetChangedFunc(func(text string) { controller.EnterWeight(text) }).
		SetDoneFunc(completeFromInputs)

	inputs := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.repsInput, 1, 0, false).
		AddItem(ui.weightInput, 1, 0, false)
	inputs.SetBorder(true).SetTitle(" Log Set ")

	ui.upcomingPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.upcomingPanel.SetBorder(true).SetTitle(" Up Next ")

	ui.updateSessionDisplay(SessionView{})

	ui.sessionTabWidgets = append(ui.sessionTabWidgets, ui.sessionPanel.Box)
	ui.sessionTabWidgets = append(ui.sessionTabWidgets, ui.repsInput.Box)
	ui.sessionTabWidgets = append(ui.sessionTabWidgets, ui.weightInput.Box)

	rightColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(inputs, 4, 0, false).
		AddItem(ui.upcomingPanel, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.sessionPanel, 0, 3, true).
		AddItem(rightColumn, 0, 2, false)

	ui.sessionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(body, 0, 1, true)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeSchedule:
		ui.pages.SwitchToPage(pageSchedule)
	case UIModeProgress:
		ui.pages.SwitchToPage(pageProgress)
	case UIModeSettings:
		ui.pages.SwitchToPage(pageSettings)
	case UIModeSession:
		ui.pages.SwitchToPage(pageSession)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	widgets := ui.getTabWidgetsForCurrentMode()
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeSchedule:
		return ui.scheduleTabWidgets
	case UIModeProgress:
		return ui.progressTabWidgets
	case UIModeSettings:
		return ui.settingsTabWidgets
	case UIModeSession:
		return ui.sessionTabWidgets
	default:
		return nil
	}
}

// typing reports whether keystrokes belong to a text field
func (ui *CursesUIViewImpl) typing() bool {
	_, ok := ui.app.GetFocus().(*tview.InputField)
	return ok
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Number keys for mode switching
		if event.Key() == tcell.KeyRune && !ui.typing() {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// Delegate to controller - it will update the model, which will notify us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode. The settings
		// form moves between its own fields.
		if event.Key() == tcell.KeyTab && ui.currentMode != UIModeSettings {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						nextIdx := (idx + 1) % widgetCount
						ui.app.SetFocus(widgets[nextIdx])
						break
					}
				}
			}
			return nil
		}

		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Mode-specific key handlers
		if ui.currentMode == UIModeSession && event.Key() == tcell.KeyRune && !ui.typing() {
			switch event.Rune() {
			case 'c':
				controller.CompleteSet(ui.repsInput.GetText(), ui.weightInput.GetText())
				return nil
			case 's':
				controller.SkipExercise()
				return nil
			case 'r':
				controller.SkipRest()
				return nil
			case ' ':
				controller.ToggleTimer()
				return nil
			case 'f':
				controller.FinishSession()
				return nil
			case 'q':
				controller.ExitSession()
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

// --- Schedule ---

// UpdateSchedule rebuilds the day list, keeping the selected day
func (ui *CursesUIViewImpl) UpdateSchedule(state ScheduleState) {
	ui.schedule = state

	selected := ui.dayList.GetCurrentItem()
	ui.dayList.Clear()
	for _, day := range workout.AllDays {
		w, _ := state.Plan.Workout(day)
		main := fmt.Sprintf("%s  %s", day.ShortName(), tview.Escape(w.Name))
		if day == state.Today {
			main += "  [yellow](today)[-]"
		}
		ui.dayList.AddItem(main, formatDaySummary(w, state.CompletedToday[day]), 0, nil)
	}
	if selected >= 0 && selected < ui.dayList.GetItemCount() {
		ui.dayList.SetCurrentItem(selected)
	}
	ui.updateDayDetailsDisplay(ui.dayList.GetCurrentItem())

	week := state.Week
	text := fmt.Sprintf("  [gray]Workouts:[white] %d / %d  [gray](%.0f%% of goal)[white]\n", week.WorkoutsCompleted, week.WeeklyGoal, week.GoalPercent())
	text += fmt.Sprintf("  [gray]Minutes:[white]  %d", week.TotalMinutes)
	ui.weekSummary.SetText(text)
}

func formatDaySummary(w workout.Workout, completed bool) string {
	if w.IsRestDay() {
		return "   [gray]Rest day[-]"
	}
	text := fmt.Sprintf("   %d exercises · %d min", len(w.Exercises), w.TotalDuration)
	if w.MuscleGroup != "" {
		text = fmt.Sprintf("   %s · %d exercises · %d min", tview.Escape(w.MuscleGroup), len(w.Exercises), w.TotalDuration)
	}
	if completed {
		text += "  [green]Completed[-]"
	}
	return text
}

// updateDayDetailsDisplay formats and displays the selected day's workout
func (ui *CursesUIViewImpl) updateDayDetailsDisplay(index int) {
	if ui.dayDetailsPanel == nil {
		return
	}

	if index < 0 || index >= len(workout.AllDays) {
		text := "\n\n  [yellow]Weekly Plan[white]\n\n"
		text += "  Select a day from the list to view its workout.\n\n"
		text += "  [gray]Press Enter to start the selected workout.[white]\n"
		ui.dayDetailsPanel.SetText(text)
		return
	}

	day := workout.AllDays[index]
	w, _ := ui.schedule.Plan.Workout(day)
	text := "\n"
	text += fmt.Sprintf("  [yellow]%s[white] [gray]%s[white]\n\n", tview.Escape(w.Name), day.Title())
	if w.IsRestDay() {
		text += "  Rest day - recover and come back stronger.\n"
		ui.dayDetailsPanel.SetText(text)
		return
	}

	text += fmt.Sprintf("  [gray]Duration:[white] %d min\n", w.TotalDuration)
	text += fmt.Sprintf("  [gray]Sets:[white]     %d\n\n", w.TotalSets())
	for i, ex := range w.Exercises {
		text += fmt.Sprintf("  %d. %s\n", i+1, tview.Escape(ex.Name))
		text += fmt.Sprintf("     [gray]%d × %s  rest %ds  ~%d min[white]\n", ex.Sets, tview.Escape(ex.Reps), ex.RestSeconds, ex.Duration)
	}
	if ui.schedule.CompletedToday[day] {
		text += "\n  [green]Completed today[white]\n"
	} else {
		text += "\n  [green]Press Enter to start this workout[white]\n"
	}
	ui.dayDetailsPanel.SetText(text)
}

// --- Progress ---

// UpdateProgress updates the progress display
func (ui *CursesUIViewImpl) UpdateProgress(state ProgressState) {
	ui.updateProgressDisplay(state)
}

func (ui *CursesUIViewImpl) updateProgressDisplay(state ProgressState) {
	if ui.progressPanel == nil {
		return
	}

	s := state.Summary
	text := "\n"
	text += fmt.Sprintf("  [gray]Total workouts:[white]  [yellow]%d[white]\n", s.TotalWorkouts)
	text += fmt.Sprintf("  [gray]Total time:[white]      [yellow]%dh[white]\n", s.TotalHours())
	text += fmt.Sprintf("  [gray]Average:[white]         [yellow]%d[white] min\n", s.AverageMinutes)
	text += fmt.Sprintf("  [gray]This week:[white]       [yellow]%d[white]\n\n", s.ThisWeek)

	if len(state.Weeks) == 0 {
		text += "  [gray]No workouts yet. Finish one from the schedule (press 1).[white]\n"
		ui.progressPanel.SetText(text)
		return
	}

	for _, week := range state.Weeks {
		text += formatWeekGroup(week)
	}
	ui.progressPanel.SetText(text)
}

func formatWeekGroup(week store.WeekGroup) string {
	minutes := 0
	for _, e := range week.Entries {
		minutes += e.Duration
	}
	text := fmt.Sprintf("  [cyan]Week of %s[white] [gray](%d workouts, %d min)[white]\n", week.Start.Format("Jan 2, 2006"), len(week.Entries), minutes)
	for _, e := range week.Entries {
		text += fmt.Sprintf("    %s  %s  [gray]%d sets · %d min[white]\n",
			e.Date.Local().Format("Mon Jan 2 15:04"), tview.Escape(e.WorkoutName), len(e.Exercises), e.Duration)
	}
	return text + "\n"
}

// --- Settings ---

// UpdateSettings loads the settings into the form
func (ui *CursesUIViewImpl) UpdateSettings(settings workout.UserSettings) {
	for i, level := range workout.AllFitnessLevels {
		if level == settings.FitnessLevel {
			ui.levelDropDown.SetCurrentOption(i)
		}
	}
	ui.daysInput.SetText(strconv.Itoa(settings.WorkoutDays))
	ui.durationInput.SetText(strconv.Itoa(settings.SessionDuration))
	for group, checkbox := range ui.groupCheckboxes {
		checkbox.SetChecked(settings.HasMuscleGroup(group))
	}
}

// settingsFromForm reads the form back into settings
func (ui *CursesUIViewImpl) settingsFromForm() (workout.UserSettings, error) {
	_, level := ui.levelDropDown.GetCurrentOption()
	fitness, err := workout.ParseFitnessLevel(level)
	if err != nil {
		return workout.UserSettings{}, err
	}
	days, err := strconv.Atoi(strings.TrimSpace(ui.daysInput.GetText()))
	if err != nil {
		return workout.UserSettings{}, fmt.Errorf("workout days must be a number")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(ui.durationInput.GetText()))
	if err != nil {
		return workout.UserSettings{}, fmt.Errorf("session minutes must be a number")
	}
	groups := []string{}
	for _, group := range workout.MuscleGroups {
		if ui.groupCheckboxes[group].IsChecked() {
			groups = append(groups, group)
		}
	}
	return workout.UserSettings{
		FitnessLevel:          fitness,
		WorkoutDays:           days,
		PreferredMuscleGroups: groups,
		SessionDuration:       duration,
	}, nil
}

// --- Session ---

// UpdateSession updates the running workout display
func (ui *CursesUIViewImpl) UpdateSession(view SessionView) {
	// The inputs are reset from the session buffers only when a new set
	// starts; in between they belong to the user.
	key := fmt.Sprintf("%d/%d/%d/%d", view.SessionID, view.State.ExerciseIndex, view.State.SetNumber, len(view.State.CompletedSets))
	if key != ui.setKey {
		ui.setKey = key
		if ui.repsInput.GetText() != view.State.EnteredReps {
			ui.repsInput.SetText(view.State.EnteredReps)
		}
		if ui.weightInput.GetText() != view.State.EnteredWeight {
			ui.weightInput.SetText(view.State.EnteredWeight)
		}
	}
	ui.updateSessionDisplay(view)
}

func (ui *CursesUIViewImpl) updateSessionDisplay(view SessionView) {
	if ui.sessionPanel == nil {
		return
	}

	if !view.Active {
		ui.sessionPanel.SetText("\n  [gray]No workout running[white]\n\n  Pick a day in Schedule mode (press 1) and press Enter.\n")
		ui.upcomingPanel.SetText("")
		return
	}

	ui.sessionPanel.SetTitle(fmt.Sprintf(" %s ", view.Workout.Name))
	ui.sessionPanel.SetText(formatSessionPanel(view))
	ui.upcomingPanel.SetText(formatUpcoming(view.Upcoming))
}

func formatSessionPanel(view SessionView) string {
	s := view.State
	text := "\n"
	text += fmt.Sprintf("  %s  [gray]%.0f%%[white]\n\n", progressBar(view.Progress, progressBarWidth), view.Progress)

	if s.Phase == session.PhaseFinished {
		text += "  [green]Workout complete![white]\n\n"
		text += fmt.Sprintf("  %d sets logged\n\n", len(s.CompletedSets))
		if view.Saved {
			text += "  [green]Saved to progress[white]\n"
		}
		text += "  [gray]Press[white] [yellow]F[white] [gray]to finish and return to the schedule[white]\n"
		text += formatCompletedSets(s.CompletedSets)
		return text
	}

	ex := view.Workout.Exercises[s.ExerciseIndex]
	text += fmt.Sprintf("  [yellow]%s[white]  [gray](exercise %d/%d)[white]\n\n", tview.Escape(ex.Name), s.ExerciseIndex+1, len(view.Workout.Exercises))
	text += fmt.Sprintf("  [gray]Set:[white]    %d of %d\n", s.SetNumber, ex.Sets)
	text += fmt.Sprintf("  [gray]Target:[white] %s reps\n", tview.Escape(ex.Reps))
	text += fmt.Sprintf("  [gray]Rest:[white]   %ds\n\n", ex.RestSeconds)

	if s.Phase == session.PhaseResting {
		if s.TimerRunning {
			text += fmt.Sprintf("  [cyan]Rest[white] [yellow]%s[white]\n", formatRest(s.RemainingRestSeconds))
		} else {
			text += fmt.Sprintf("  [cyan]Rest[white] [yellow]%s[white] [gray](PAUSED)[white]\n", formatRest(s.RemainingRestSeconds))
		}
		text += "  [gray]Press[white] [yellow]R[white] [gray]to skip rest[white]\n"
	} else {
		text += "  [green]Go![white] [gray]Enter reps and weight, then press[white] [yellow]C[white]\n"
	}
	text += formatCompletedSets(s.CompletedSets)
	return text
}

func formatCompletedSets(sets []workout.SetRecord) string {
	if len(sets) == 0 {
		return ""
	}
	text := "\n  [gray]Logged:[white]\n"
	for _, set := range sets {
		text += fmt.Sprintf("    %s #%d  %s @ %s\n", tview.Escape(set.ExerciseName), set.SetNumber, tview.Escape(set.Reps), tview.Escape(set.Weight))
	}
	return text
}

func formatUpcoming(exercises []workout.Exercise) string {
	if len(exercises) == 0 {
		return "\n  [green]Last exercise![white]\n"
	}
	text := "\n"
	for _, ex := range exercises {
		text += fmt.Sprintf("  %s\n  [gray]%d × %s[white]\n\n", tview.Escape(ex.Name), ex.Sets, tview.Escape(ex.Reps))
	}
	return text
}

// formatRest formats seconds as m:ss
func formatRest(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[green]" + strings.Repeat("█", filled) + "[gray]" + strings.Repeat("░", width-filled) + "[white]"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
