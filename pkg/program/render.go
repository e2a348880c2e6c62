package program

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	_ "embed"

	"github.com/justinhuttinger/dayone/pkg/ghl"
)

//go:embed templates/program-template.html
var documentTemplate string

const qrAPIBase = "https://api.qrserver.com/v1/create-qr-code/?size=60x60&data="

var (
	termColonRe = regexp.MustCompile(`([A-Za-z\s]+):`)
	termDashRe  = regexp.MustCompile(`([A-Za-z]+)\s*-\s+`)
)

// Renderer converts normalized program content into the print-ready HTML
// document fed to the PDF conversion API.
type Renderer struct {
	// LogoBase64 is the base64-encoded club logo; pages render without the
	// logo image when empty.
	LogoBase64 string
}

func NewRenderer(logoBase64 string) *Renderer {
	return &Renderer{LogoBase64: logoBase64}
}

// RenderHTML produces the full document: one overview page followed by exactly
// one page per workout, in the order the generator supplied them. It never
// reorders, filters, or validates; malformed entries render as empty strings.
func (r *Renderer) RenderHTML(contact *ghl.Contact, content *Content) string {
	body := r.formatProgramHTML(contact, content)
	body = strings.ReplaceAll(body, "{{logoBase64}}", r.LogoBase64)
	return strings.ReplaceAll(documentTemplate, "{{programContent}}", body)
}

func (r *Renderer) formatProgramHTML(contact *ghl.Contact, content *Content) string {
	workouts := content.Workouts()
	if len(workouts) == 0 {
		text := content.ProgramText
		if text == "" {
			text = "Program content"
		}
		return `<div class="program-text">` + html.EscapeString(text) + `</div>`
	}

	var b strings.Builder
	r.writeOverviewPage(&b, contact, content)
	for _, workout := range workouts {
		r.writeWorkoutPage(&b, contact, content, workout)
	}
	return b.String()
}

func (r *Renderer) writeOverviewPage(b *strings.Builder, contact *ghl.Contact, content *Content) {
	b.WriteString(`<div class="page">` + "\n")
	r.writeLogo(b)
	r.writePageHeader(b, "PROGRAM OVERVIEW", contact, content)

	b.WriteString(`<div class="core-concepts">` + "\n")
	writeOverviewSection(b, "BASIC EXPLANATION:", html.EscapeString(content.Overview()))
	writeOverviewSection(b, "PROGRESSION:", html.EscapeString(content.ProgressionNotes))
	writeOverviewSection(b, "TERMINOLOGY:", formatTerminology(content.Terminology))
	writeOverviewSection(b, "PRINCIPLES:", html.EscapeString(content.Principles))
	writeOverviewSection(b, "IMPORTANT NOTES:", html.EscapeString(content.Notes()))
	r.writeMedicalScreening(b, content.MedicalScreening)
	b.WriteString("</div>\n</div>\n")
}

func writeOverviewSection(b *strings.Builder, heading, bodyHTML string) {
	fmt.Fprintf(b, "<h3>%s</h3>\n", heading)
	fmt.Fprintf(b, `<div class="core-concepts-content"><p>%s</p></div>`+"\n", bodyHTML)
}

// writeMedicalScreening always prints every answer when the screening summary
// is attached; a complete section is kept on the PDF for legal coverage.
func (r *Renderer) writeMedicalScreening(b *strings.Builder, screening *MedicalScreening) {
	if screening == nil {
		return
	}
	b.WriteString("<h3>MEDICAL SCREENING:</h3>\n")
	b.WriteString(`<div class="core-concepts-content"><ul class="medical-screening">` + "\n")
	answers := []struct{ label, value string }{
		{"Heart condition", screening.HeartCondition},
		{"Chest pain during activity", screening.ChestPain},
		{"Bone or joint problem", screening.BoneJointProblem},
		{"Blood pressure medication", screening.BloodPressureMedication},
		{"Medical supervision needed", screening.MedicalSupervisionNeeded},
	}
	for _, a := range answers {
		fmt.Fprintf(b, "<li><strong>%s:</strong> %s</li>\n", a.label, html.EscapeString(a.value))
	}
	b.WriteString("</ul></div>\n")
}

func (r *Renderer) writeWorkoutPage(b *strings.Builder, contact *ghl.Contact, content *Content, workout Workout) {
	b.WriteString(`<div class="page">` + "\n")
	r.writeLogo(b)

	title := fmt.Sprintf("DAY %s - %s", workout.Day, strings.ToUpper(workout.Title))
	r.writePageHeader(b, html.EscapeString(title), contact, content)

	b.WriteString(`<table class="exercise-table">` + "\n")
	b.WriteString("<thead><tr><th>EXERCISE</th><th class=\"sets-reps\"></th><th class=\"variations\">VARIATIONS</th></tr></thead>\n<tbody>\n")
	for _, exercise := range workout.Exercises {
		writeExerciseRow(b, exercise)
	}
	b.WriteString("</tbody>\n</table>\n</div>\n")
}

func writeExerciseRow(b *strings.Builder, exercise Exercise) {
	b.WriteString("<tr>\n<td>")
	fmt.Fprintf(b, "<strong>%s</strong>", html.EscapeString(exercise.Name))
	if exercise.Notes != "" {
		fmt.Fprintf(b, `<br><span class="exercise-notes">%s</span>`, html.EscapeString(exercise.Notes))
	}
	if exercise.VideoURL != "" {
		fmt.Fprintf(b, `<br><img src="%s%s" alt="Video QR" class="video-qr">`,
			qrAPIBase, url.QueryEscape(exercise.VideoURL))
	}
	b.WriteString("</td>\n")

	setsReps := fmt.Sprintf("%s x %s", exercise.Sets, exercise.Reps)
	fmt.Fprintf(b, `<td class="sets-reps">%s</td>`+"\n", html.EscapeString(setsReps))
	fmt.Fprintf(b, `<td class="variations">%s</td>`+"\n", html.EscapeString(exercise.Variants()))
	b.WriteString("</tr>\n")
}

func (r *Renderer) writePageHeader(b *strings.Builder, subtitle string, contact *ghl.Contact, content *Content) {
	b.WriteString(`<div class="page-header">` + "\n")
	b.WriteString(`<div class="header-left">` + "\n")
	b.WriteString("<h1>WEST COAST STRENGTH</h1>\n")
	fmt.Fprintf(b, "<h2>%s</h2>\n", subtitle)
	b.WriteString("</div>\n")
	b.WriteString(`<div class="header-right">` + "\n")
	fmt.Fprintf(b, "<p>TRAINER: %s</p>\n", html.EscapeString(content.TrainerName))
	fmt.Fprintf(b, "<p>CLIENT: %s %s</p>\n", html.EscapeString(contact.FirstName), html.EscapeString(contact.LastName))
	b.WriteString("</div>\n</div>\n")
}

func (r *Renderer) writeLogo(b *strings.Builder) {
	if r.LogoBase64 == "" {
		return
	}
	b.WriteString(`<img src="data:image/png;base64,{{logoBase64}}" class="logo-image" alt="WCS Logo">` + "\n")
}

// formatTerminology bolds the term preceding a colon or dash so definitions
// stand out ("Superset: two exercises..." → "<strong>Superset</strong>: ...").
func formatTerminology(text string) string {
	if text == "" {
		return ""
	}
	escaped := html.EscapeString(text)
	escaped = termColonRe.ReplaceAllString(escaped, "<strong>$1</strong>:")
	escaped = termDashRe.ReplaceAllString(escaped, "<strong>$1</strong> - ")
	return escaped
}
