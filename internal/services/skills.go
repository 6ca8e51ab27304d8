package services

import (
	"regexp"
	"strings"
)

// SkillCatalogue is the set of skills a resume is matched against, both
// literally and through the vector index.
var SkillCatalogue = []string{
	"Python", "Java", "C++", "JavaScript", "TypeScript", "React", "Next.js", "Node.js",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "AWS", "Azure", "Docker", "Kubernetes",
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "Flask", "Django", "FastAPI",
	"HTML", "CSS", "Tailwind", "Git", "Linux", "CI/CD", "Machine Learning", "Deep Learning",
	"NLP", "Data Analysis", "Communication", "Problem Solving",
}

var skillPatterns = compileSkillPatterns(SkillCatalogue)

// compileSkillPatterns anchors each skill between non-alphanumerics so that
// names ending in symbols ("C++") still match.
func compileSkillPatterns(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, skill := range skills {
		patterns[i] = regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(skill)) + `(?:$|[^a-z0-9])`)
	}
	return patterns
}

// MatchSkills returns the catalogue skills that appear verbatim in text,
// in catalogue order.
func MatchSkills(text string) []string {
	lower := strings.ToLower(text)

	skills := []string{}
	for i, pattern := range skillPatterns {
		if pattern.MatchString(lower) {
			skills = append(skills, SkillCatalogue[i])
		}
	}
	return skills
}

// canonicalSkill maps any casing of a catalogue entry back to the entry.
func canonicalSkill(name string) (string, bool) {
	for _, skill := range SkillCatalogue {
		if strings.EqualFold(skill, name) {
			return skill, true
		}
	}
	return "", false
}
