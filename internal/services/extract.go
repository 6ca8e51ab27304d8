package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	UnknownCandidate = "Unknown Candidate"

	LevelSenior = "Senior"
	LevelMid    = "Mid"
	LevelJunior = "Junior"

	nameSearchLines   = 15
	maxEducationLines = 3
	maxPlausibleYears = 30
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4,}`)
	spacePattern = regexp.MustCompile(`\s+`)
	digitPattern = regexp.MustCompile(`\d`)

	dateRangePattern = regexp.MustCompile(
		`(\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)?[a-z]*[-. ]*(?:19|20)\d{2})\s*(?:-|–|—|to)\s*` +
			`(\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)?[a-z]*[-. ]*(?:19|20)\d{2}|present|current|now)`)
	yearPattern       = regexp.MustCompile(`(?:19|20)\d{2}`)
	recentYearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

	nameBlocklist = map[string]bool{
		"resume": true, "curriculum": true, "vitae": true, "cv": true, "bio": true,
		"data": true, "road": true, "house": true, "bazar": true, "dhaka": true,
		"street": true, "lane": true, "objective": true, "summary": true,
	}

	educationKeywords = []string{
		"b.sc", "m.sc", "bachelor", "master", "phd", "diploma", "degree", "university", "institute", "college",
	}

	// lines carrying these are study dates, not work dates
	schoolingKeywords = []string{
		"ssc", "hsc", "gpa", "school", "college", "university", "passing", "bachelor",
	}
)

// CandidateDetails holds the contact block found at the top of a resume.
type CandidateDetails struct {
	Name  string
	Email *string
	Phone *string
}

// CleanText collapses every whitespace run into a single space.
func CleanText(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

func ExtractDetails(text string) CandidateDetails {
	details := CandidateDetails{Name: UnknownCandidate}

	if email := emailPattern.FindString(text); email != "" {
		details.Email = &email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		phone = strings.TrimSpace(phone)
		details.Phone = &phone
	}

	for _, line := range topLines(text, nameSearchLines) {
		if looksLikeName(line) {
			details.Name = line
			break
		}
	}

	return details
}

func topLines(text string, n int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 || !isTitleCase(line) {
		return false
	}
	for _, w := range words {
		if nameBlocklist[strings.ToLower(strings.Trim(w, ".,:;"))] {
			return false
		}
	}
	return !digitPattern.MatchString(line) && !strings.Contains(line, "@")
}

// isTitleCase reports whether every cased run starts with an upper case
// letter followed only by lower case ones.
func isTitleCase(s string) bool {
	prevCased, hasCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, hasCased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

// ExtractEducation returns up to three distinct lines that mention a degree
// or an institution, in document order.
func ExtractEducation(text string) []string {
	seen := make(map[string]bool)
	education := []string{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(strings.Fields(line)) <= 2 || !containsAny(strings.ToLower(line), educationKeywords) {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		education = append(education, line)
		if len(education) == maxEducationLines {
			break
		}
	}

	return education
}

// CalculateExperience sums the date ranges found in text. When there are
// none it falls back to the span between the earliest work year and now.
func CalculateExperience(text string, now time.Time) (float64, string) {
	text = strings.ToLower(text)

	var years float64
	if ranges := dateRangePattern.FindAllStringSubmatch(text, -1); len(ranges) > 0 {
		totalMonths := 0
		for _, m := range ranges {
			start, ok := parseYear(m[1])
			if !ok {
				continue
			}

			var end time.Time
			if strings.Contains(m[2], "present") || strings.Contains(m[2], "current") || strings.Contains(m[2], "now") {
				end = now
			} else if end, ok = parseYear(m[2]); !ok {
				continue
			}

			diff := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
			if diff > 0 {
				totalMonths += diff
			}
		}
		years = math.Round(float64(totalMonths)/12*10) / 10
	} else {
		years = yearSpan(text, now.Year())
	}

	if years > maxPlausibleYears {
		years = 0
	}

	return years, ExperienceLevel(years)
}

func ExperienceLevel(years float64) string {
	switch {
	case years >= 5:
		return LevelSenior
	case years >= 2:
		return LevelMid
	default:
		return LevelJunior
	}
}

func parseYear(s string) (time.Time, bool) {
	y := yearPattern.FindString(s)
	if y == "" {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
}

func yearSpan(text string, currentYear int) float64 {
	earliest := 0
	for _, line := range strings.Split(text, "\n") {
		if containsAny(line, schoolingKeywords) {
			continue
		}
		for _, m := range recentYearPattern.FindAllStringSubmatch(line, -1) {
			y, err := strconv.Atoi(m[1])
			if err != nil || y < 2010 || y > currentYear {
				continue
			}
			if earliest == 0 || y < earliest {
				earliest = y
			}
		}
	}

	if earliest == 0 {
		return 0
	}
	return float64(currentYear - earliest)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
