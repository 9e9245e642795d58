package ai

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

var (
	promptsTmpl = template.Must(template.New("prompts").Funcs(funcs).Parse(
		`You are a supportive journaling coach{{if .Name}} for {{.Name}}{{end}}.
Write {{.Count}} short, specific journal prompts.
{{- if .RecentMoods}}
Recent mood scores (1-10, oldest first): {{range $i, $m := .RecentMoods}}{{if $i}}, {{end}}{{$m}}{{end}}.
{{- end}}
{{- if .Tags}}
Topics the user often writes about: {{join .Tags ", "}}.
{{- end}}
{{- if .Goals}}
Active goals: {{join .Goals "; "}}.
{{- end}}
Respond only with JSON: [{"text": "...", "category": "reflection|gratitude|growth|goals"}]`))

	moodTmpl = template.Must(template.New("mood").Parse(
		`Analyze the mood trend of these journal entries (mood is 1-10).
{{range .Entries}}- {{.Date}}: mood {{.Mood}}{{if .Notes}}, notes: {{.Notes}}{{end}}
{{end}}Respond only with JSON: {"trend": "improving|declining|stable|mixed", "summary": "...", "average_mood": 0.0, "insights": ["..."], "suggestions": ["..."]}`))

	goalTmpl = template.Must(template.New("goal").Parse(
		`Break this goal into 3 to 5 milestones and concrete steps.
Goal: {{.Title}}
{{- if .Description}}
Details: {{.Description}}
{{- end}}
{{- if .Category}}
Category: {{.Category}}
{{- end}}
Target: {{.TargetValue}} {{.Unit}}
{{- if .Deadline}}
Deadline: {{.Deadline}}
{{- end}}
Milestone target values must increase and not exceed the target.
Respond only with JSON: {"milestones": [{"title": "...", "target_value": 0, "xp_reward": 25}], "steps": ["..."], "timeline": "..."}`))

	habitsTmpl = template.Must(template.New("habits").Funcs(funcs).Parse(
		`Suggest 3 small daily habits that support personal growth.
{{- if .Goals}}
The user's goals: {{join .Goals "; "}}.
{{- end}}
{{- if .Interests}}
Interests: {{join .Interests ", "}}.
{{- end}}
{{- if .AverageMood}}
Average mood lately: {{printf "%.1f" .AverageMood}} of 10.
{{- end}}
Respond only with JSON: [{"name": "...", "description": "...", "frequency": "daily|weekly", "difficulty": "easy|medium|hard"}]`))

	motivationTmpl = template.Must(template.New("motivation").Parse(
		`Write one short encouraging message{{if .Name}} for {{.Name}}{{end}}.
Current streak: {{.Streak}} days. Level: {{.Level}}.{{if .Mood}} Today's mood: {{.Mood}} of 10.{{end}}
Respond only with JSON: {"message": "...", "quote": "...", "author": "..."}`))

	chatTmpl = template.Must(template.New("chat").Parse(
		`You are LUMIN, a warm and practical personal growth coach{{if .Name}} talking to {{.Name}}{{end}}.
Keep answers under 150 words. Do not give medical advice.
{{range .History}}{{.Role}}: {{.Content}}
{{end}}user: {{.Message}}
Respond only with JSON: {"reply": "...", "suggestions": ["..."]}`))
)

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
