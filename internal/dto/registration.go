package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// RegisterStudentRequest creates a student profile plus its login identity.
type RegisterStudentRequest struct {
	FirstName    string     `json:"firstName" binding:"required"`
	LastName     string     `json:"lastName" binding:"required"`
	PhoneNumber  string     `json:"phoneNumber" binding:"required"`
	Password     string     `json:"password" binding:"required,min=6"`
	Form         string     `json:"form" binding:"required"`
	Class        string     `json:"class"`
	GuardianName string     `json:"guardianName"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
}

// RegisterTeacherRequest creates a teacher profile plus its login identity.
type RegisterTeacherRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Subject     string `json:"subject"`
}

// RegisterStaffRequest creates a staff profile plus its login identity.
// Role must be BURSAR, ADMIN or STAFF.
type RegisterStaffRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=BURSAR ADMIN STAFF"`
	Position    string `json:"position"`
}

// RegistrationResponse returns the issued identifiers.
type RegistrationResponse struct {
	UserID    string `json:"userID"`
	ProfileID string `json:"profileID"`
	DisplayID string `json:"displayID"`
	Role      string `json:"role"`
}

// StudentResponse is the public shape of a student profile.
type StudentResponse struct {
	StudentID    string `json:"studentID"`
	UserID       string `json:"userID"`
	DisplayID    string `json:"displayID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Form         string `json:"form"`
	Class        string `json:"class,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	Form   string `form:"form"`
	Class  string `form:"class"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ToStudentResponse converts a domain.Student to StudentResponse.
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID:    s.StudentID,
		UserID:       s.UserID,
		DisplayID:    s.DisplayID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Form:         s.Form,
		Class:        s.Class,
		GuardianName: s.GuardianName,
	}
}

// ToStudentResponses converts a slice of domain.Student to responses.
func ToStudentResponses(students []domain.Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, s := range students {
		out[i] = ToStudentResponse(&s)
	}
	return out
}
