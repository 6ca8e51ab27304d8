package render

import (
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	NotAvailable         = "N/A"
	NoSkillsMessage      = "No specific skills detected"
	NoEducationMessage   = "No education details detected"
	strongMatchThreshold = 0.8
)

// LevelTone picks the badge treatment for an experience level.
type LevelTone string

const (
	ToneSenior  LevelTone = "senior"
	ToneMid     LevelTone = "mid"
	ToneDefault LevelTone = "default"
)

type SkillTile struct {
	Number int
	Name   string
}

// Dashboard is the display form of one analysis result.
type Dashboard struct {
	Classification    string
	ConfidencePercent int
	ConfidenceWidth   float64
	StrongMatch       bool
	ExperienceYears   string
	ExperienceLevel   string
	LevelTone         LevelTone
	Name              string
	Email             string
	Phone             string
	Education         []string
	Skills            []SkillTile
}

func NewDashboard(result models.AnalysisResult) Dashboard {
	result = result.WithDefaults()

	d := Dashboard{
		Classification:    result.Classification,
		ConfidencePercent: int(math.Round(result.Confidence * 100)),
		ConfidenceWidth:   math.Max(0, math.Min(100, result.Confidence*100)),
		StrongMatch:       result.Confidence > strongMatchThreshold,
		ExperienceYears:   strconv.FormatFloat(result.ExperienceYears, 'f', -1, 64),
		ExperienceLevel:   result.ExperienceLevel,
		LevelTone:         levelTone(result.ExperienceLevel),
		Name:              result.Name,
		Email:             orNotAvailable(result.Email),
		Phone:             orNotAvailable(result.Phone),
		Education:         result.Education,
		Skills:            make([]SkillTile, 0, len(result.Skills)),
	}

	for i, skill := range result.Skills {
		d.Skills = append(d.Skills, SkillTile{Number: i + 1, Name: skill})
	}

	return d
}

func (d Dashboard) HasEducation() bool {
	return len(d.Education) > 0
}

func (d Dashboard) HasSkills() bool {
	return len(d.Skills) > 0
}

func levelTone(level string) LevelTone {
	switch level {
	case "Senior":
		return ToneSenior
	case "Mid":
		return ToneMid
	default:
		return ToneDefault
	}
}

func orNotAvailable(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return NotAvailable
	}
	return *v
}
