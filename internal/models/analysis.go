package models

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	PageCount        int       `gorm:"not null;default:0" json:"page_count"`
	Classification   string    `gorm:"type:text" json:"classification"`
	Confidence       float64   `gorm:"type:decimal(3,2)" json:"confidence"`
	ExperienceYears  float64   `gorm:"type:decimal(4,1)" json:"experience_years"`
	ExperienceLevel  string    `gorm:"type:text" json:"experience_level"`
	CandidateName    string    `gorm:"type:text" json:"name"`
	Email            *string   `gorm:"type:text" json:"email"`
	Phone            *string   `gorm:"type:text" json:"phone"`
	Education        []string  `gorm:"type:jsonb;serializer:json" json:"education"`
	Skills           []string  `gorm:"type:jsonb;serializer:json" json:"skills"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis builds the row stored for a finished analysis.
func NewAnalysis(filename string, pageCount int, result *AnalysisResult) *Analysis {
	return &Analysis{
		ID:               uuid.New(),
		OriginalFileName: filename,
		PageCount:        pageCount,
		Classification:   result.Classification,
		Confidence:       result.Confidence,
		ExperienceYears:  result.ExperienceYears,
		ExperienceLevel:  result.ExperienceLevel,
		CandidateName:    result.Name,
		Email:            result.Email,
		Phone:            result.Phone,
		Education:        result.Education,
		Skills:           result.Skills,
		CreatedAt:        time.Now(),
	}
}

func (a *Analysis) Result() AnalysisResult {
	return AnalysisResult{
		Classification:  a.Classification,
		Confidence:      a.Confidence,
		ExperienceYears: a.ExperienceYears,
		ExperienceLevel: a.ExperienceLevel,
		Name:            a.CandidateName,
		Email:           a.Email,
		Phone:           a.Phone,
		Education:       a.Education,
		Skills:          a.Skills,
	}.WithDefaults()
}

func (a *Analysis) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:              a.ID.String(),
		Filename:        a.OriginalFileName,
		Classification:  a.Classification,
		Confidence:      a.Confidence,
		ExperienceLevel: a.ExperienceLevel,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}

func (a *Analysis) Detail() AnalysisDetail {
	return AnalysisDetail{
		ID:        a.ID.String(),
		Filename:  a.OriginalFileName,
		PageCount: a.PageCount,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		Result:    a.Result(),
	}
}
