// Package program owns the training-program pipeline core: building the
// generation prompt, normalizing the model's response, and rendering the
// program to print-ready HTML.
package program

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON string or number. The model is inconsistent about
// quoting values like sets, reps, and day numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = FlexString(n.String())
	return nil
}

// Exercise is one row in a workout table. The renderer treats every field as
// optional text.
type Exercise struct {
	Name       string     `json:"name"`
	Sets       FlexString `json:"sets"`
	Reps       FlexString `json:"reps"`
	Notes      string     `json:"notes"`
	Variations string     `json:"variations"`
	Variation  string     `json:"variation"` // legacy singular key
	VideoURL   string     `json:"videoUrl"`
}

// Workout is one day's session, exercises in programmed order.
type Workout struct {
	Day       FlexString `json:"day"`
	Title     string     `json:"title"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// WeekTemplate holds the ordered weekly workout rotation.
type WeekTemplate struct {
	Workouts []Workout `json:"workouts"`
}

// week is the legacy response shape; only the first week's workouts are used.
type week struct {
	WeekNumber int       `json:"weekNumber"`
	Focus      string    `json:"focus"`
	Workouts   []Workout `json:"workouts"`
}

// MedicalScreening is attached to the content for PDF display; answers default
// to "No" so the section always prints complete (kept for legal coverage).
type MedicalScreening struct {
	HeartCondition           string `json:"heartCondition"`
	ChestPain                string `json:"chestPain"`
	BoneJointProblem         string `json:"boneJointProblem"`
	BloodPressureMedication  string `json:"bloodPressureMedication"`
	MedicalSupervisionNeeded string `json:"medicalSupervisionNeeded"`
}

// Content is the generation API's structured output plus the fields the
// orchestrator attaches before rendering.
type Content struct {
	BasicExplanation string `json:"basicExplanation"`
	ProgramOverview  string `json:"programOverview"` // legacy key
	ProgressionNotes string `json:"progressionNotes"`
	Terminology      string `json:"terminology"`
	Principles       string `json:"principles"`
	ImportantNotes   string `json:"importantNotes"`
	GeneralNotes     string `json:"generalNotes"` // legacy key

	// ProgramText carries the raw model output when structured parsing failed.
	ProgramText string `json:"programText"`

	WeekTemplate *WeekTemplate `json:"weekTemplate"`
	weeks        []week        // legacy shape, folded into WeekTemplate by normalize

	TrainerName      string            `json:"trainerName"`
	MedicalScreening *MedicalScreening `json:"medicalScreening"`
}

// contentAlias avoids UnmarshalJSON recursion while capturing the legacy
// "weeks" key alongside the current shape.
type contentAlias Content

func (c *Content) UnmarshalJSON(b []byte) error {
	var alias struct {
		contentAlias
		Weeks []week `json:"weeks"`
	}
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}
	*c = Content(alias.contentAlias)
	c.weeks = alias.Weeks
	return nil
}

// normalize folds the legacy weeks shape into WeekTemplate so downstream code
// only ever sees one schema.
func (c *Content) normalize() {
	if c.WeekTemplate == nil && len(c.weeks) > 0 {
		c.WeekTemplate = &WeekTemplate{Workouts: c.weeks[0].Workouts}
	}
	c.weeks = nil
}

// Workouts returns the normalized workout list, nil when the content is
// unstructured text.
func (c *Content) Workouts() []Workout {
	if c.WeekTemplate == nil {
		return nil
	}
	return c.WeekTemplate.Workouts
}

// Overview prefers the current explanation key, falling back to the legacy one.
func (c *Content) Overview() string {
	if c.BasicExplanation != "" {
		return c.BasicExplanation
	}
	return c.ProgramOverview
}

// Notes prefers the current notes key, falling back to the legacy one.
func (c *Content) Notes() string {
	if c.ImportantNotes != "" {
		return c.ImportantNotes
	}
	return c.GeneralNotes
}

// Variants returns the exercise's variations text, accepting the legacy
// singular key.
func (e *Exercise) Variants() string {
	if e.Variations != "" {
		return e.Variations
	}
	return e.Variation
}
