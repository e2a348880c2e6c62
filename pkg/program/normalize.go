package program

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseFailureOverview is shown in place of the explanation when the model
// response couldn't be parsed as structured JSON.
const ParseFailureOverview = "Error generating structured program. Please try again."

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*\\n?(.*?)\\n?```")
	anyFenceRe  = regexp.MustCompile("(?s)```\\s*\\n?(.*?)\\n?```")
)

// ParseResponse extracts structured program content from raw model output.
// It tolerates fenced code blocks around the JSON and never fails: a response
// that can't be parsed degrades to an unstructured text wrapper so the
// pipeline still completes.
func ParseResponse(raw string) *Content {
	cleaned := strings.TrimSpace(raw)

	if m := jsonFenceRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	} else if m := anyFenceRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	var content Content
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &content); err != nil {
		return &Content{
			BasicExplanation: ParseFailureOverview,
			ProgramText:      raw,
			WeekTemplate:     nil,
		}
	}

	content.normalize()
	return &content
}
