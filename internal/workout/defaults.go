package workout

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() UserSettings {
	return UserSettings{
		FitnessLevel:          LevelIntermediate,
		WorkoutDays:           5,
		PreferredMuscleGroups: []string{"chest", "back", "legs", "arms", "shoulders"},
		SessionDuration:       60,
	}
}

func restDay() Workout {
	return Workout{Name: "Rest Day", Exercises: []Exercise{}, TotalDuration: 0, MuscleGroup: "rest"}
}

// DefaultPlan returns the built-in plan used when none is stored
func DefaultPlan() WeeklyPlan {
	return WeeklyPlan{
		Monday: Workout{
			Name: "Chest & Triceps",
			Exercises: []Exercise{
				{Name: "Bench Press", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
				{Name: "Incline Dumbbell Press", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 6},
				{Name: "Chest Flyes", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 5},
				{Name: "Tricep Dips", Sets: 3, Reps: "10-12", RestSeconds: 60, Duration: 4},
				{Name: "Overhead Tricep Extension", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
			},
			TotalDuration: 45,
			MuscleGroup:   "chest",
		},
		Tuesday: Workout{
			Name: "Back & Biceps",
			Exercises: []Exercise{
				{Name: "Pull-ups", Sets: 4, Reps: "6-8", RestSeconds: 120, Duration: 8},
				{Name: "Bent-over Rows", Sets: 4, Reps: "8-10", RestSeconds: 90, Duration: 7},
				{Name: "Lat Pulldowns", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 6},
				{Name: "Bicep Curls", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
				{Name: "Hammer Curls", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
			},
			TotalDuration: 50,
			MuscleGroup:   "back",
		},
		Wednesday: restDay(),
		Thursday: Workout{
			Name: "Legs",
			Exercises: []Exercise{
				{Name: "Squats", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 10},
				{Name: "Romanian Deadlifts", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
				{Name: "Leg Press", Sets: 3, Reps: "12-15", RestSeconds: 90, Duration: 6},
				{Name: "Leg Curls", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
				{Name: "Calf Raises", Sets: 4, Reps: "15-20", RestSeconds: 45, Duration: 5},
			},
			TotalDuration: 55,
			MuscleGroup:   "legs",
		},
		Friday: Workout{
			Name: "Shoulders & Abs",
			Exercises: []Exercise{
				{Name: "Overhead Press", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
				{Name: "Lateral Raises", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
				{Name: "Rear Delt Flyes", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
				{Name: "Plank", Sets: 3, Reps: "30-60s", RestSeconds: 60, Duration: 3},
				{Name: "Russian Twists", Sets: 3, Reps: "20-30", RestSeconds: 45, Duration: 3},
			},
			TotalDuration: 40,
			MuscleGroup:   "shoulders",
		},
		Saturday: Workout{
			Name: "Full Body HIIT",
			Exercises: []Exercise{
				{Name: "Burpees", Sets: 4, Reps: "10-15", RestSeconds: 60, Duration: 5},
				{Name: "Mountain Climbers", Sets: 4, Reps: "20-30", RestSeconds: 60, Duration: 4},
				{Name: "Jump Squats", Sets: 4, Reps: "15-20", RestSeconds: 60, Duration: 4},
				{Name: "Push-ups", Sets: 3, Reps: "10-15", RestSeconds: 60, Duration: 3},
				{Name: "High Knees", Sets: 3, Reps: "30s", RestSeconds: 45, Duration: 3},
			},
			TotalDuration: 35,
			MuscleGroup:   "cardio",
		},
		Sunday: restDay(),
	}
}

// exerciseDatabase is keyed by fitness level, then by muscle group
var exerciseDatabase = map[FitnessLevel]map[string][]Exercise{
	LevelBeginner: {
		"chest": {
			{Name: "Push-ups", Sets: 3, Reps: "8-12", RestSeconds: 60, Duration: 4},
			{Name: "Incline Push-ups", Sets: 3, Reps: "10-15", RestSeconds: 60, Duration: 4},
			{Name: "Chest Press Machine", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 5},
		},
		"back": {
			{Name: "Assisted Pull-ups", Sets: 3, Reps: "5-8", RestSeconds: 90, Duration: 5},
			{Name: "Seated Row Machine", Sets: 3, Reps: "10-12", RestSeconds: 60, Duration: 5},
			{Name: "Lat Pulldown", Sets: 3, Reps: "10-12", RestSeconds: 60, Duration: 5},
		},
		"legs": {
			{Name: "Bodyweight Squats", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
			{Name: "Leg Press", Sets: 3, Reps: "12-15", RestSeconds: 90, Duration: 6},
			{Name: "Leg Curls", Sets: 3, Reps: "10-12", RestSeconds: 60, Duration: 4},
		},
	},
	LevelIntermediate: {
		"chest": {
			{Name: "Bench Press", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
			{Name: "Incline Dumbbell Press", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 6},
			{Name: "Chest Flyes", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 5},
		},
		"back": {
			{Name: "Pull-ups", Sets: 4, Reps: "6-8", RestSeconds: 120, Duration: 8},
			{Name: "Bent-over Rows", Sets: 4, Reps: "8-10", RestSeconds: 90, Duration: 7},
			{Name: "Lat Pulldowns", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 6},
		},
		"legs": {
			{Name: "Squats", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 10},
			{Name: "Romanian Deadlifts", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
			{Name: "Leg Press", Sets: 3, Reps: "12-15", RestSeconds: 90, Duration: 6},
		},
	},
	LevelAdvanced: {
		"chest": {
			{Name: "Barbell Bench Press", Sets: 5, Reps: "5-6", RestSeconds: 180, Duration: 10},
			{Name: "Incline Barbell Press", Sets: 4, Reps: "6-8", RestSeconds: 120, Duration: 8},
			{Name: "Weighted Dips", Sets: 4, Reps: "8-10", RestSeconds: 90, Duration: 6},
			{Name: "Cable Flyes", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 5},
		},
		"back": {
			{Name: "Weighted Pull-ups", Sets: 5, Reps: "5-6", RestSeconds: 180, Duration: 10},
			{Name: "Barbell Rows", Sets: 4, Reps: "6-8", RestSeconds: 120, Duration: 8},
			{Name: "T-Bar Rows", Sets: 4, Reps: "8-10", RestSeconds: 90, Duration: 7},
			{Name: "Cable Rows", Sets: 3, Reps: "10-12", RestSeconds: 90, Duration: 6},
		},
		"legs": {
			{Name: "Back Squats", Sets: 5, Reps: "5-6", RestSeconds: 180, Duration: 12},
			{Name: "Romanian Deadlifts", Sets: 4, Reps: "6-8", RestSeconds: 150, Duration: 10},
			{Name: "Bulgarian Split Squats", Sets: 4, Reps: "8-10", RestSeconds: 90, Duration: 8},
			{Name: "Walking Lunges", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 6},
		},
	},
}

// ExercisesFor returns a copy of the database entries for level and group
func ExercisesFor(level FitnessLevel, group string) []Exercise {
	src := exerciseDatabase[level][group]
	out := make([]Exercise, len(src))
	copy(out, src)
	return out
}

func generatedDay(name, group string, exercises []Exercise) Workout {
	return Workout{
		Name:          name,
		Exercises:     exercises,
		TotalDuration: SumDuration(exercises),
		MuscleGroup:   group,
	}
}

// GeneratePlan builds a fresh weekly plan for the given level. Chest, back
// and legs days come from the level's database; Friday and Saturday are the
// same for every level. Unknown levels generate the intermediate plan.
func GeneratePlan(level FitnessLevel) WeeklyPlan {
	if _, ok := exerciseDatabase[level]; !ok {
		level = LevelIntermediate
	}
	return WeeklyPlan{
		Monday:    generatedDay("Chest & Triceps", "chest", ExercisesFor(level, "chest")),
		Tuesday:   generatedDay("Back & Biceps", "back", ExercisesFor(level, "back")),
		Wednesday: restDay(),
		Thursday:  generatedDay("Legs", "legs", ExercisesFor(level, "legs")),
		Friday: generatedDay("Shoulders & Arms", "shoulders", []Exercise{
			{Name: "Overhead Press", Sets: 4, Reps: "8-10", RestSeconds: 120, Duration: 8},
			{Name: "Lateral Raises", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
			{Name: "Bicep Curls", Sets: 3, Reps: "12-15", RestSeconds: 60, Duration: 4},
		}),
		Saturday: generatedDay("Cardio & Core", "cardio", []Exercise{
			{Name: "Treadmill", Sets: 1, Reps: "20-30min", RestSeconds: 0, Duration: 25},
			{Name: "Plank", Sets: 3, Reps: "30-60s", RestSeconds: 60, Duration: 3},
			{Name: "Crunches", Sets: 3, Reps: "15-20", RestSeconds: 45, Duration: 3},
		}),
		Sunday: restDay(),
	}
}

// NewExerciseTemplate returns the prefilled values of the add-exercise form
func NewExerciseTemplate() Exercise {
	return Exercise{Sets: 3, Reps: "10-12", RestSeconds: 60, Duration: 5}
}
