package program

import (
	"fmt"
	"strings"

	"github.com/justinhuttinger/dayone/pkg/ghl"
	"github.com/justinhuttinger/dayone/pkg/intake"
)

// NoLimitationsClause is emitted when no movement limitation is reported, so
// the model doesn't invent restrictions.
const NoLimitationsClause = "No movement limitations reported."

// BuildPrompt renders the contact identity and intake form into the generation
// instruction. Composition is deterministic: each optional clause appears if
// and only if its source fields are populated.
func BuildPrompt(contact *ghl.Contact, form intake.FormData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert personal trainer creating a %s-week training program for %s.\n\n",
		form.Duration, contact.FirstName)

	b.WriteString("CLIENT INFO:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", contact.FirstName, contact.LastName)
	if form.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", form.Gender)
	}
	fmt.Fprintf(&b, "- Experience Level: %s\n", form.ExperienceLevel)
	fmt.Fprintf(&b, "- Available Equipment: %s\n", form.Equipment)
	fmt.Fprintf(&b, "- Training Days Per Week: %s\n", form.DaysPerWeek)
	fmt.Fprintf(&b, "- Primary Goal: %s\n", form.ProgramGoal)

	if metrics := metricsClause(form); metrics != "" {
		b.WriteString(metrics + "\n")
	}
	if clientContext := clientContextClause(form); clientContext != "" {
		b.WriteString(clientContext + "\n")
	}
	if notes := trainerNotesClause(form); notes != "" {
		b.WriteString(notes + "\n")
	}
	if focus := dayFocusClause(form); focus != "" {
		b.WriteString(focus + "\n")
	}

	b.WriteString("\n" + limitationsClause(form) + "\n")

	alerts := medicalAlerts(form)
	if clause := medicalClause(alerts); clause != "" {
		b.WriteString(clause + "\n")
	}

	b.WriteString(`
IMPORTANT: If there are movement limitations, you MUST intelligently modify exercises. For example:
- Shoulder limitations → Use landmine presses instead of overhead presses, focus on neutral grip movements
- Knee limitations → Use leg press variations, step-ups, or belt squats instead of back squats
- Lower back limitations → Use hex bar deadlifts, hip thrusts, or leg curls instead of conventional deadlifts

`)

	if len(alerts) > 0 {
		b.WriteString("MEDICAL CONSIDERATIONS: This client has medical screening alerts. Keep intensity moderate, avoid high-impact movements, emphasize proper breathing and form, and include longer rest periods.\n\n")
	}

	b.WriteString("Create a comprehensive training program with:\n")
	b.WriteString("1. A detailed program overview with separate sections for explanation, progression, terminology, principles, and notes\n")
	fmt.Fprintf(&b, "2. %s distinct workouts per week (e.g., Upper/Lower split, Push/Pull/Legs, etc.)\n", form.DaysPerWeek)
	b.WriteString("3. Each workout should have 5-8 exercises with specific sets, reps, and exercise variations\n")
	b.WriteString("4. Include form cues and technique notes for each exercise\n")
	b.WriteString("5. Provide 1-2 alternative exercise variations for each exercise\n")
	if form.CurrentWorkoutRoutine != "" {
		fmt.Fprintf(&b, "6. Consider their current routine (%s) when designing progression\n", form.CurrentWorkoutRoutine)
	}

	b.WriteString(`
Return your response as a JSON object with this EXACT structure:

{
  "basicExplanation": "2-3 sentences explaining what this program is, the training split used, and how it will help them reach their goal",
  "progressionNotes": "How to progress week to week - when to increase weight, add reps, etc. Be specific about progression protocol",
  "terminology": "Define ONLY terms that are actually used in this program's exercises and notes. Every term defined here MUST appear somewhere in the workout exercises or notes. Do not define terms that aren't used.",
  "principles": "The core training principles this program is built on (e.g., progressive overload, compound movements first, etc.)",
  "importantNotes": "Safety reminders, warm-up guidance, rest day recommendations, and any other critical information",
  "weekTemplate": {
    "workouts": [
      {
        "day": 1,
        "title": "Workout name (e.g., Upper Body, Push Day, etc.)",
        "focus": "Primary muscle groups/movement patterns",
        "exercises": [
          {
            "name": "Exercise name (modified for any limitations)",
            "sets": "3",
            "reps": "8-10",
            "notes": "Form cues, modifications for limitations if applicable",
            "variations": "1-2 alternative exercises that target the same muscles (e.g., 'DB Press, Machine Press')"
          }
        ]
      }
    ]
  }
}

CRITICAL INSTRUCTIONS:
`)

	fmt.Fprintf(&b, "1. Create %s distinct workouts that form a complete training split\n", form.DaysPerWeek)
	b.WriteString("2. MODIFY exercises based on limitations - use safer alternatives, reduced ROM, or easier progressions\n")
	if len(alerts) > 0 {
		b.WriteString("3. Use CONSERVATIVE programming due to medical screening alerts - moderate intensity, avoid high-impact\n")
	} else {
		b.WriteString("3. Include specific form cues and technique notes for each exercise\n")
	}
	if form.BiggestObstacles != "" {
		fmt.Fprintf(&b, "4. Address their biggest obstacle: %s\n", form.BiggestObstacles)
	} else {
		b.WriteString("4. Focus on sustainable, progressive programming\n")
	}
	b.WriteString(`5. ALWAYS include 1-2 exercise variations for each exercise in the "variations" field
6. NEVER mention or recommend consulting a physical therapist, doctor, physician, medical professional, or healthcare provider. Simply provide exercise modifications and alternatives instead.
7. EXERCISE ORDER IS CRITICAL - Follow this structure for each workout:
   - Start with the most demanding compound lifts that use large muscle groups (squats, deadlifts, bench press, rows, overhead press)
   - Then move to secondary compound movements
   - Finish with isolation/accessory exercises for smaller muscles
   - NEVER jump between muscle groups - complete ALL exercises for a muscle group before moving to the next
   - Example: Do ALL back exercises first, THEN all bicep exercises. Never go back→bicep→back
   - Example: Do ALL chest exercises first, THEN all tricep exercises. Never go chest→tricep→chest
8. TERMINOLOGY MUST MATCH PROGRAM - Only define terms in the terminology section that are actually used in the exercises or notes. If you use "superset" in the program, define it. If you don't use "AMRAP", don't define it.
9. Return ONLY valid JSON. No markdown code blocks. No text before or after the JSON.`)

	return b.String()
}

// limitationsClause always contributes a line: either the active limitation
// list or an explicit all-clear.
func limitationsClause(form intake.FormData) string {
	var limitations []string
	if form.NeckLimitation {
		limitations = append(limitations, "Neck")
	}
	if form.ShoulderLimitation {
		limitations = append(limitations, "Shoulder")
	}
	if form.ElbowWristLimitation {
		limitations = append(limitations, "Elbow/Wrist")
	}
	if form.LowerBackLimitation {
		limitations = append(limitations, "Lower Back")
	}
	if form.HipLimitation {
		limitations = append(limitations, "Hip")
	}
	if form.KneeLimitation {
		limitations = append(limitations, "Knee")
	}
	if form.AnkleLimitation {
		limitations = append(limitations, "Ankle")
	}
	if form.OtherLimitations != "" {
		limitations = append(limitations, "Other: "+form.OtherLimitations)
	}

	if len(limitations) == 0 {
		return NoLimitationsClause
	}
	return fmt.Sprintf("MOVEMENT LIMITATIONS: %s. YOU MUST modify exercises to work around these limitations.",
		strings.Join(limitations, ", "))
}

// metricsClause is present iff at least one InBody metric was supplied.
func metricsClause(form intake.FormData) string {
	if form.Weight == "" && form.Height == "" && form.BodyFat == "" && form.BMR == "" {
		return ""
	}
	return fmt.Sprintf("INBODY METRICS: Weight: %s lbs, Height: %s inches, Body Fat: %s%%, BMR: %s calories/day",
		form.Weight, form.Height, form.BodyFat, form.BMR)
}

// medicalAlerts collects screening answers that are present and not the
// literal "No".
func medicalAlerts(form intake.FormData) []string {
	var alerts []string
	if form.HeartCondition != "" && form.HeartCondition != "No" {
		alerts = append(alerts, "Heart condition requiring medical supervision: "+form.HeartCondition)
	}
	if form.ChestPain != "" && form.ChestPain != "No" {
		alerts = append(alerts, "Chest pain during activity: "+form.ChestPain)
	}
	if form.BoneJointProblem != "" && form.BoneJointProblem != "No" {
		alerts = append(alerts, "Bone/joint concerns: "+form.BoneJointProblem)
	}
	if form.BloodPressureMedication != "" && form.BloodPressureMedication != "No" {
		alerts = append(alerts, "Blood pressure medication: "+form.BloodPressureMedication)
	}
	if form.MedicalSupervisionNeeded != "" && form.MedicalSupervisionNeeded != "No" {
		alerts = append(alerts, "Other medical supervision needed: "+form.MedicalSupervisionNeeded)
	}
	return alerts
}

func medicalClause(alerts []string) string {
	if len(alerts) == 0 {
		return ""
	}
	return fmt.Sprintf("\nMEDICAL SCREENING ALERTS:\n- %s\n⚠️ IMPORTANT: Design a conservative program that accounts for these medical considerations.",
		strings.Join(alerts, "\n- "))
}

// clientContextClause folds the free-text background answers into one block.
func clientContextClause(form intake.FormData) string {
	var lines []string
	if form.FitnessGoals != "" {
		lines = append(lines, "Fitness Goals: "+form.FitnessGoals)
	}
	if form.CurrentWorkoutRoutine != "" {
		lines = append(lines, "Current Routine: "+form.CurrentWorkoutRoutine)
	}
	if form.FollowsDietPlan != "" {
		lines = append(lines, "Diet/Meal Plan: "+form.FollowsDietPlan)
	}
	if form.BiggestObstacles != "" {
		lines = append(lines, "Biggest Obstacles: "+form.BiggestObstacles)
	}
	if form.WouldHelpMost != "" {
		lines = append(lines, "What Would Help Most: "+form.WouldHelpMost)
	}
	if form.InterestedIn != "" {
		lines = append(lines, "Interests: "+form.InterestedIn)
	}

	if len(lines) == 0 {
		return ""
	}
	return "\nCLIENT BACKGROUND:\n" + strings.Join(lines, "\n")
}

func trainerNotesClause(form intake.FormData) string {
	if form.TrainerNotes == "" {
		return ""
	}
	return fmt.Sprintf("\n⭐ TRAINER NOTES (IMPORTANT - USE THESE TO CUSTOMIZE THE PROGRAM):\n%s\nYou MUST incorporate these notes into the program design. If the client loves certain exercises, include them. If they hate certain exercises, avoid them or use alternatives.",
		form.TrainerNotes)
}

// dayFocusClause lists only the days with a focus set, in day order.
func dayFocusClause(form intake.FormData) string {
	var focuses []string
	for i, focus := range form.DayFocus {
		if focus != "" {
			focuses = append(focuses, fmt.Sprintf("Day %d: %s", i+1, focus))
		}
	}

	if len(focuses) == 0 {
		return ""
	}
	return fmt.Sprintf("\n🎯 DAILY FOCUS (CRITICAL - EACH WORKOUT MUST FOLLOW THIS FOCUS):\n%s\nYou MUST design each workout day to align with the specified focus. The workout title and exercises should directly reflect this focus.",
		strings.Join(focuses, "\n"))
}
