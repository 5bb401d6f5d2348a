package models

import "time"

// Result is one subject-grade record for one student in one academic
// year/semester. StudentName is a snapshot taken when the result is
// created; renaming the student does not rewrite historic results.
type Result struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	StudentID     string    `gorm:"size:64;index;not null" json:"student_id"`
	StudentName   string    `gorm:"size:255;not null" json:"student_name"`
	Subject       string    `gorm:"size:255;not null" json:"subject"`
	MarksObtained float64   `gorm:"not null" json:"marks_obtained"`
	TotalMarks    float64   `gorm:"not null" json:"total_marks"`
	AcademicYear  string    `gorm:"size:16;not null" json:"academic_year"`
	Semester      string    `gorm:"size:8;not null" json:"semester"`
	Grade         string    `gorm:"size:4;not null" json:"grade"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
