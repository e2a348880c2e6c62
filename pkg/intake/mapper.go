// Package intake normalizes the label-keyed webhook payload into a fixed schema.
//
// The CRM sends form answers keyed by their free-text question labels, so each
// target field reads one or more candidate keys in priority order. Mapping is
// total: every field gets either a mapped value or its documented default.
package intake

import (
	"strconv"
	"strings"
)

// FormData is the normalized PT intake form. Numeric-looking values stay as
// strings (unit suffixes stripped) because they are only ever re-rendered into
// prompt and email text.
type FormData struct {
	// Trainer & program design
	TrainerName     string
	ProgramGoal     string
	Duration        string
	DaysPerWeek     string
	ExperienceLevel string
	Equipment       string

	// InBody metrics
	Weight  string
	Height  string
	BodyFat string
	BMR     string

	// Movement limitations
	NeckLimitation       bool
	ShoulderLimitation   bool
	ElbowWristLimitation bool
	LowerBackLimitation  bool
	HipLimitation        bool
	KneeLimitation       bool
	AnkleLimitation      bool
	OtherLimitations     string

	// Client goals & interests
	InterestedIn   string
	InterestedInPT string
	PreferredCoach string
	FitnessGoals   string

	// Medical screening answers (free text, "No" means clear)
	HeartCondition           string
	ChestPain                string
	BoneJointProblem         string
	BloodPressureMedication  string
	MedicalSupervisionNeeded string

	// Current fitness & nutrition
	CurrentWorkoutRoutine string
	FollowsDietPlan       string
	BiggestObstacles      string
	WouldHelpMost         string

	// Additional client info
	Gender       string
	TrainerNotes string

	// Optional per-day focus, day 1 through day 7
	DayFocus [7]string
}

type stringRule struct {
	dst    *string
	keys   []string
	def    string
	coerce func(string) string
}

type flagRule struct {
	dst *bool
	key string
}

// The day-focus labels are inconsistent at the source: day 1 is numeric, the
// rest are spelled out.
var dayFocusKeys = [7]string{
	"Day 1 Focus",
	"Day Two Focus",
	"Day Three Focus",
	"Day Four Focus",
	"Day Five Focus",
	"Day Six Focus",
	"Day Seven Focus",
}

// Map builds a FormData from the raw webhook payload. It never fails; absent
// or unrecognizable values become defaults.
func Map(raw map[string]any) FormData {
	var f FormData

	stringRules := []stringRule{
		{&f.TrainerName, []string{"Service Employee"}, "", nil},
		{&f.ProgramGoal, []string{"Program Goal"}, "general fitness", nil},
		{&f.Duration, []string{"Duration (Weeks)", "Duration"}, "8", stripUnits(" weeks")},
		{&f.DaysPerWeek, []string{"Days Per Week", "Days per Week"}, "4", stripUnits(" days a week", " day a week")},
		{&f.ExperienceLevel, []string{"Experience Level"}, "intermediate", strings.ToLower},
		{&f.Equipment, []string{"Equipment"}, "full gym", nil},

		{&f.Weight, []string{"Weight (Lbs)", "Weight"}, "", nil},
		{&f.Height, []string{"Height"}, "", nil},
		{&f.BodyFat, []string{"Body Fat (%)", "Body Fat"}, "", stripUnits("%")},
		{&f.BMR, []string{"BMR"}, "", nil},

		{&f.OtherLimitations, []string{"Other Limitations"}, "", nil},

		{&f.InterestedIn, []string{"What are you interested in?"}, "", nil},
		{&f.InterestedInPT, []string{"Are you interested in Personal Training?"}, "", nil},
		{&f.PreferredCoach, []string{"Do you have a Preferred Coach?"}, "", nil},
		{&f.FitnessGoals, []string{"What are your Fitness Goals?"}, "", nil},

		{&f.HeartCondition, []string{"Has a Doctor Ever Said You Have a Heart Condition & Recommended Only Medically Supervised Activity?"}, "", nil},
		{&f.ChestPain, []string{"Do You Experience Chest Pain During Physical Activity?"}, "", nil},
		{&f.BoneJointProblem, []string{"Do You Have a Bone or Joint Problem that Physical Activity Could Aggravate?"}, "", nil},
		{&f.BloodPressureMedication, []string{"Has Your Doctor Recommended Medication for your Blood Pressure?"}, "", nil},
		{&f.MedicalSupervisionNeeded, []string{"Are you Aware of Any Reason you Should Not Exercise Without Medical Supervision"}, "", nil},

		{&f.CurrentWorkoutRoutine, []string{"What is Your Current Workout Routine?"}, "", nil},
		{&f.FollowsDietPlan, []string{"Do You Follow a Diet / Meal Plan?"}, "", nil},
		{&f.BiggestObstacles, []string{"What are your Biggest Obstacles?"}, "", nil},
		{&f.WouldHelpMost, []string{"What Would Help You the Most?"}, "", nil},

		{&f.Gender, []string{"Gender", "contact.gender"}, "", nil},
		{&f.TrainerNotes, []string{"contact.pt_notes", "PT Notes"}, "", nil},
	}

	for _, r := range stringRules {
		v := firstPresent(raw, r.keys)
		if v == "" {
			v = r.def
		}
		if r.coerce != nil {
			v = r.coerce(v)
		}
		*r.dst = v
	}

	flagRules := []flagRule{
		{&f.NeckLimitation, "Neck Limitation"},
		{&f.ShoulderLimitation, "Shoulder Limitation"},
		{&f.ElbowWristLimitation, "Elbow Wrist Limitation"},
		{&f.LowerBackLimitation, "Lower Back Limitation"},
		{&f.HipLimitation, "Hip Limitation"},
		{&f.KneeLimitation, "Knee Limitation"},
		{&f.AnkleLimitation, "Ankle Limitation"},
	}
	for _, r := range flagRules {
		*r.dst = yesFlag(raw[r.key])
	}

	for i, key := range dayFocusKeys {
		f.DayFocus[i] = asString(raw[key])
	}

	return f
}

// HasLimitations reports whether any movement limitation flag or free-text
// field is set.
func (f FormData) HasLimitations() bool {
	return f.NeckLimitation || f.ShoulderLimitation || f.ElbowWristLimitation ||
		f.LowerBackLimitation || f.HipLimitation || f.KneeLimitation ||
		f.AnkleLimitation || f.OtherLimitations != ""
}

func firstPresent(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if v := asString(raw[k]); v != "" {
			return v
		}
	}
	return ""
}

// asString coerces the JSON value types a form field can arrive as.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// yesFlag is true for the literal "Yes" or an array containing it, the two
// shapes checkbox fields arrive in.
func yesFlag(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Yes"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Yes" {
				return true
			}
		}
	case []string:
		for _, s := range t {
			if s == "Yes" {
				return true
			}
		}
	}
	return false
}

func stripUnits(units ...string) func(string) string {
	return func(s string) string {
		for _, u := range units {
			s = strings.ReplaceAll(s, u, "")
		}
		return s
	}
}
