package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlan_IsValid(t *testing.T) {
	plan := DefaultPlan()
	require.NoError(t, plan.Validate())

	wed, ok := plan.Workout(Wednesday)
	require.True(t, ok)
	assert.True(t, wed.IsRestDay())
	assert.Equal(t, "rest", wed.MuscleGroup)

	mon, _ := plan.Workout(Monday)
	assert.Equal(t, "Chest & Triceps", mon.Name)
	assert.Equal(t, 5, len(mon.Exercises))
	assert.Equal(t, 16, mon.TotalSets())
}

func TestWeeklyPlan_WorkoutReturnsCopy(t *testing.T) {
	plan := DefaultPlan()
	mon, _ := plan.Workout(Monday)
	mon.Exercises[0].Name = "Changed"

	again, _ := plan.Workout(Monday)
	assert.Equal(t, "Bench Press", again.Exercises[0].Name)
}

func TestWeeklyPlan_SetWorkoutUnknownDay(t *testing.T) {
	plan := DefaultPlan()
	assert.Error(t, plan.SetWorkout(Day("funday"), Workout{Name: "x"}))
}

func TestWeeklyPlan_ValidateRejectsMissingDay(t *testing.T) {
	plan := DefaultPlan()
	plan.Friday = Workout{}
	assert.Error(t, plan.Validate())

	plan = DefaultPlan()
	plan.Monday.Exercises[1].Sets = 0
	assert.Error(t, plan.Validate())
}

func TestGeneratePlan_UsesLevelDatabase(t *testing.T) {
	tests := []struct {
		level      FitnessLevel
		firstChest string
		chestCount int
	}{
		{LevelBeginner, "Push-ups", 3},
		{LevelIntermediate, "Bench Press", 3},
		{LevelAdvanced, "Barbell Bench Press", 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			plan := GeneratePlan(tt.level)
			require.NoError(t, plan.Validate())
			assert.Equal(t, tt.firstChest, plan.Monday.Exercises[0].Name)
			assert.Equal(t, tt.chestCount, len(plan.Monday.Exercises))
			assert.Equal(t, SumDuration(plan.Monday.Exercises), plan.Monday.TotalDuration)
			assert.Equal(t, 16, plan.Friday.TotalDuration)
			assert.Equal(t, 31, plan.Saturday.TotalDuration)
			assert.True(t, plan.Wednesday.IsRestDay())
			assert.True(t, plan.Sunday.IsRestDay())
		})
	}
}

func TestGeneratePlan_DoesNotAliasDatabase(t *testing.T) {
	plan := GeneratePlan(LevelBeginner)
	plan.Monday.Exercises[0].Name = "Mutated"
	assert.Equal(t, "Push-ups", GeneratePlan(LevelBeginner).Monday.Exercises[0].Name)
}

func TestGeneratePlan_UnknownLevelFallsBack(t *testing.T) {
	assert.Equal(t, "Bench Press", GeneratePlan("elite").Monday.Exercises[0].Name)
}

func TestParseDay(t *testing.T) {
	for in, want := range map[string]Day{"monday": Monday, "Tue": Tuesday, " SUNDAY ": Sunday, "thu": Thursday} {
		got, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDay("someday")
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	// 2026-10-14 is a Wednesday
	assert.Equal(t, Wednesday, DayOf(time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)))
	assert.Equal(t, Sunday, DayOf(time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)))
	assert.Equal(t, "Wed", Wednesday.ShortName())
	assert.Equal(t, "Wednesday", Wednesday.Title())
}

func TestUserSettings_Normalize(t *testing.T) {
	s := UserSettings{FitnessLevel: "pro", WorkoutDays: 12, SessionDuration: 5}.Normalize()
	assert.Equal(t, LevelIntermediate, s.FitnessLevel)
	assert.Equal(t, MaxWorkoutDays, s.WorkoutDays)
	assert.Equal(t, MinSessionDuration, s.SessionDuration)
	assert.NotNil(t, s.PreferredMuscleGroups)

	d := DefaultSettings()
	assert.Equal(t, d, d.Normalize())
	assert.True(t, d.HasMuscleGroup("legs"))
	assert.False(t, d.HasMuscleGroup("cardio"))
}

func TestPlanDocument_RoundTrip(t *testing.T) {
	plan := GeneratePlan(LevelAdvanced)
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			raw, err := EncodePlan(plan, format)
			require.NoError(t, err)

			got, err := DecodePlan(raw, format)
			require.NoError(t, err)
			if diff := cmp.Diff(plan, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodePlan_RejectsIncompleteDocument(t *testing.T) {
	_, err := DecodePlan([]byte("monday:\n  name: Legs\n"), FormatYAML)
	assert.Error(t, err)

	_, err = DecodePlan([]byte("{not json"), FormatJSON)
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("plan.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("plan"))
}
