package dto

import (
	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/grading"
)

// AnalyticsResponse bundles every rollup shown on the teacher analytics
// dashboard for one filtered result set.
type AnalyticsResponse struct {
	TotalResults      int                                     `json:"total_results"`
	GradeDistribution map[grading.Label]analytics.GradeBucket `json:"grade_distribution"`
	TopStudents       []analytics.StudentAverage              `json:"top_students"`
	SubjectAverages   []analytics.SubjectAverage              `json:"subject_averages"`
	Progress          []analytics.ProgressPoint               `json:"progress"`
	CacheHit          bool                                    `json:"cache_hit,omitempty"`
}

// NarrationResponse carries the generated script plus the duration
// heuristic so clients can time their speaking indicator.
type NarrationResponse struct {
	Script              string `json:"script"`
	EstimatedDurationMS int64  `json:"estimated_duration_ms"`
	Speaking            bool   `json:"speaking"`
}
