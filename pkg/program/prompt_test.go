package program

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justinhuttinger/dayone/pkg/ghl"
	"github.com/justinhuttinger/dayone/pkg/intake"
)

func testContact() *ghl.Contact {
	return &ghl.Contact{FirstName: "John", LastName: "Smith", Email: "john@example.com"}
}

func baseForm() intake.FormData {
	return intake.Map(map[string]any{})
}

func TestBuildPromptBaseline(t *testing.T) {
	prompt := BuildPrompt(testContact(), baseForm())

	assert.Contains(t, prompt, "8-week training program for John")
	assert.Contains(t, prompt, "- Name: John Smith")
	assert.Contains(t, prompt, "- Experience Level: intermediate")
	assert.Contains(t, prompt, "- Training Days Per Week: 4")
	assert.Contains(t, prompt, "- Primary Goal: general fitness")
	assert.Contains(t, prompt, "4 distinct workouts per week")
	assert.Contains(t, prompt, "Each workout should have 5-8 exercises")
	assert.Contains(t, prompt, "Provide 1-2 alternative exercise variations")
	assert.Contains(t, prompt, "NEVER jump between muscle groups")
	assert.Contains(t, prompt, "TERMINOLOGY MUST MATCH PROGRAM")
	assert.Contains(t, prompt, `"weekTemplate"`)
	assert.Contains(t, prompt, "Return ONLY valid JSON.")
}

func TestBuildPromptLimitationsClause(t *testing.T) {
	t.Run("absent when no limitation set", func(t *testing.T) {
		prompt := BuildPrompt(testContact(), baseForm())
		assert.Contains(t, prompt, NoLimitationsClause)
		assert.NotContains(t, prompt, "MOVEMENT LIMITATIONS:")
	})

	t.Run("present with active limitation names", func(t *testing.T) {
		form := baseForm()
		form.KneeLimitation = true
		form.LowerBackLimitation = true
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "MOVEMENT LIMITATIONS: Lower Back, Knee.")
		assert.NotContains(t, prompt, NoLimitationsClause)
	})

	t.Run("free-text limitations included", func(t *testing.T) {
		form := baseForm()
		form.OtherLimitations = "recovering from surgery"
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "MOVEMENT LIMITATIONS: Other: recovering from surgery.")
	})
}

func TestBuildPromptMetricsClause(t *testing.T) {
	t.Run("absent without any metric", func(t *testing.T) {
		prompt := BuildPrompt(testContact(), baseForm())
		assert.NotContains(t, prompt, "INBODY METRICS")
	})

	t.Run("present with one metric", func(t *testing.T) {
		form := baseForm()
		form.Weight = "185"
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "INBODY METRICS: Weight: 185 lbs")
	})
}

func TestBuildPromptMedicalClause(t *testing.T) {
	t.Run("absent when all answers are No or empty", func(t *testing.T) {
		form := baseForm()
		form.HeartCondition = "No"
		form.ChestPain = ""
		prompt := BuildPrompt(testContact(), form)
		assert.NotContains(t, prompt, "MEDICAL SCREENING ALERTS")
		assert.NotContains(t, prompt, "MEDICAL CONSIDERATIONS")
		assert.Contains(t, prompt, "3. Include specific form cues")
	})

	t.Run("present for a non-No answer", func(t *testing.T) {
		form := baseForm()
		form.ChestPain = "Yes, occasionally"
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "MEDICAL SCREENING ALERTS")
		assert.Contains(t, prompt, "Chest pain during activity: Yes, occasionally")
		assert.Contains(t, prompt, "MEDICAL CONSIDERATIONS")
		assert.Contains(t, prompt, "3. Use CONSERVATIVE programming")
		assert.NotContains(t, prompt, "3. Include specific form cues")
	})
}

func TestBuildPromptClientContext(t *testing.T) {
	t.Run("absent without background answers", func(t *testing.T) {
		prompt := BuildPrompt(testContact(), baseForm())
		assert.NotContains(t, prompt, "CLIENT BACKGROUND")
	})

	t.Run("collects populated answers only", func(t *testing.T) {
		form := baseForm()
		form.FitnessGoals = "run a 10k"
		form.BiggestObstacles = "time"
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "CLIENT BACKGROUND:")
		assert.Contains(t, prompt, "Fitness Goals: run a 10k")
		assert.Contains(t, prompt, "Biggest Obstacles: time")
		assert.NotContains(t, prompt, "Current Routine:")
		assert.Contains(t, prompt, "4. Address their biggest obstacle: time")
	})
}

func TestBuildPromptTrainerNotes(t *testing.T) {
	form := baseForm()
	form.TrainerNotes = "hates burpees"
	prompt := BuildPrompt(testContact(), form)
	assert.Contains(t, prompt, "TRAINER NOTES")
	assert.Contains(t, prompt, "hates burpees")

	assert.NotContains(t, BuildPrompt(testContact(), baseForm()), "TRAINER NOTES")
}

func TestBuildPromptDayFocus(t *testing.T) {
	t.Run("absent without focus fields", func(t *testing.T) {
		assert.NotContains(t, BuildPrompt(testContact(), baseForm()), "DAILY FOCUS")
	})

	t.Run("lists populated days in day order", func(t *testing.T) {
		form := baseForm()
		form.DayFocus[3] = "Shoulders"
		form.DayFocus[0] = "Chest"
		prompt := BuildPrompt(testContact(), form)
		assert.Contains(t, prompt, "DAILY FOCUS")
		chest := strings.Index(prompt, "Day 1: Chest")
		shoulders := strings.Index(prompt, "Day 4: Shoulders")
		assert.Greater(t, chest, -1)
		assert.Greater(t, shoulders, chest)
		assert.NotContains(t, prompt, "Day 2:")
	})
}

func TestBuildPromptGenderLine(t *testing.T) {
	assert.NotContains(t, BuildPrompt(testContact(), baseForm()), "- Gender:")

	form := baseForm()
	form.Gender = "female"
	assert.Contains(t, BuildPrompt(testContact(), form), "- Gender: female")
}

func TestBuildPromptCurrentRoutineInstruction(t *testing.T) {
	form := baseForm()
	form.CurrentWorkoutRoutine = "5x5 twice a week"
	prompt := BuildPrompt(testContact(), form)
	assert.Contains(t, prompt, "6. Consider their current routine (5x5 twice a week)")

	assert.NotContains(t, BuildPrompt(testContact(), baseForm()), "6. Consider their current routine")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	form := baseForm()
	form.KneeLimitation = true
	form.Weight = "185"
	form.DayFocus[0] = "Chest"
	assert.Equal(t, BuildPrompt(testContact(), form), BuildPrompt(testContact(), form))
}
