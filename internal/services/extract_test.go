package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/services"
)

var fixedNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestExtractDetails(t *testing.T) {
	t.Parallel()

	text := "Curriculum Vitae\nJane Doe\nSoftware Engineer\njane.doe@example.com\n+1 555-123-4567\n"

	details := services.ExtractDetails(text)

	assert.Equal(t, "Jane Doe", details.Name)
	require.NotNil(t, details.Email)
	assert.Equal(t, "jane.doe@example.com", *details.Email)
	require.NotNil(t, details.Phone)
	assert.Equal(t, "+1 555-123-4567", *details.Phone)
}

func TestExtractDetailsRejectsNonNames(t *testing.T) {
	t.Parallel()

	text := "JANE DOE\nHouse 12 Road 4\nProfessional Summary Section\nsingle\njane@example.com"

	details := services.ExtractDetails(text)

	assert.Equal(t, services.UnknownCandidate, details.Name)
	assert.Nil(t, details.Phone)
	require.NotNil(t, details.Email)
}

func TestExtractDetailsNoContact(t *testing.T) {
	t.Parallel()

	details := services.ExtractDetails("nothing useful here")

	assert.Equal(t, services.UnknownCandidate, details.Name)
	assert.Nil(t, details.Email)
	assert.Nil(t, details.Phone)
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", services.CleanText("  a\n\n b\t\tc  "))
}

func TestExtractEducation(t *testing.T) {
	t.Parallel()

	text := `University
BSc in Computer Science, Dhaka University
BSc in Computer Science, Dhaka University
Master of Science in Data Engineering
Diploma in Network Administration
PhD in Machine Learning, Some Institute`

	education := services.ExtractEducation(text)

	assert.Equal(t, []string{
		"BSc in Computer Science, Dhaka University",
		"Master of Science in Data Engineering",
		"Diploma in Network Administration",
	}, education)
}

func TestExtractEducationEmpty(t *testing.T) {
	t.Parallel()

	education := services.ExtractEducation("Worked on backend systems")

	assert.NotNil(t, education)
	assert.Empty(t, education)
}

func TestCalculateExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		years float64
		level string
	}{
		{"closed range", "Backend Engineer, Acme\n2018 - 2021", 3, services.LevelMid},
		{"open range", "Platform Engineer\nJan 2020 - Present", 4.4, services.LevelMid},
		{"summed ranges", "2010 to 2014\n2015 - 2019", 8, services.LevelSenior},
		{"year fallback", "Worked at Acme since 2019\nBSc University 2012", 5, services.LevelSenior},
		{"no dates", "Fresh graduate", 0, services.LevelJunior},
		{"implausible", "1980 - 2020", 0, services.LevelJunior},
		{"short", "2023 - 2024", 1, services.LevelJunior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			years, level := services.CalculateExperience(tt.text, fixedNow)

			assert.InDelta(t, tt.years, years, 0.001)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestMatchSkills(t *testing.T) {
	t.Parallel()

	skills := services.MatchSkills("Experienced with C++, Go and Next.js; CI/CD pipelines. javascript")

	assert.Equal(t, []string{"C++", "JavaScript", "Next.js", "CI/CD"}, skills)
}

func TestMatchSkillsNone(t *testing.T) {
	t.Parallel()

	skills := services.MatchSkills("gardening and cooking")

	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestPhrases(t *testing.T) {
	t.Parallel()

	pe := services.NewPhraseExtractor(2, 0)

	phrases := pe.Phrases("Skills\nGo, Golang\nRest Api design\n• Kubernetes\nPython\n2019\ngolang", []string{"Python"})

	assert.Equal(t, []string{"Skills", "Go", "Golang", "Kubernetes"}, phrases)
}
