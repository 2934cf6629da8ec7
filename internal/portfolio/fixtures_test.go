package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const profileJSON = `{
	"basics": {
		"name": "Alistair",
		"title": "Software Engineer",
		"location": "York, UK",
		"summary": "Builds web applications."
	},
	"skills": [{"category": "Backend", "items": ["Go", "Postgres"]}],
	"experience": [
		{"company": "Acme", "position": "Engineer", "location": "Remote, London", "startDate": "2020-01", "endDate": "Present", "highlights": ["Built the billing service"]},
		{"company": "Initech", "position": "Intern", "location": "Atlantis", "startDate": "2018-06", "endDate": "2019-09"}
	],
	"education": [{"institution": "University of York", "degree": "BSc Computer Science"}]
}`

const projectsJSON = `{
	"projects": [
		{"id": "p1", "name": "Ledger", "description": "A double-entry accounting service", "stack": ["Go"], "featured": true},
		{"id": "p2", "name": "Paint", "description": "A drawing app", "stack": ["React", "TypeScript"]}
	]
}`

const graphJSON = `{
	"nodes": [
		{"id": "me", "label": "Alistair", "type": "root"},
		{"id": "backend", "label": "Backend", "type": "category"},
		{"id": "go", "label": "Go", "type": "skill"}
	],
	"edges": [
		{"source": "me", "target": "backend"},
		{"source": "backend", "target": "go"}
	]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ProfileFile, profileJSON)
	writeFile(t, dir, ProjectsFile, projectsJSON)
	writeFile(t, dir, SkillsGraphFile, graphJSON)
	return dir
}
