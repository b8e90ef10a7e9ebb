package mapping

import (
	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/models"
)

// ToModelStudent converts a domain Student to a model Student.
func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:    d.StudentID,
		UserID:       d.UserID,
		DisplayID:    d.DisplayID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Form:         d.Form,
		Class:        d.Class,
		GuardianName: nullString(d.GuardianName),
		DateOfBirth:  d.DateOfBirth,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainStudent converts a model Student to a domain Student.
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:    m.StudentID,
		UserID:       m.UserID,
		DisplayID:    m.DisplayID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Form:         m.Form,
		Class:        m.Class,
		GuardianName: fromNullString(m.GuardianName),
		DateOfBirth:  m.DateOfBirth,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToDomainStudentSlice converts a slice of model Students to domain Students.
func ToDomainStudentSlice(ms []models.Student) []domain.Student {
	ds := make([]domain.Student, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudent(m)
	}
	return ds
}

// ToModelTeacher converts a domain Teacher to a model Teacher.
func ToModelTeacher(d domain.Teacher) models.Teacher {
	return models.Teacher{
		TeacherID:   d.TeacherID,
		UserID:      d.UserID,
		DisplayID:   d.DisplayID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Subject:     nullString(d.Subject),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainTeacher converts a model Teacher to a domain Teacher.
func ToDomainTeacher(m models.Teacher) domain.Teacher {
	return domain.Teacher{
		TeacherID:   m.TeacherID,
		UserID:      m.UserID,
		DisplayID:   m.DisplayID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Subject:     fromNullString(m.Subject),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelStaff converts a domain Staff to a model Staff.
func ToModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:     d.StaffID,
		UserID:      d.UserID,
		DisplayID:   d.DisplayID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Position:    nullString(d.Position),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainStaff converts a model Staff to a domain Staff.
func ToDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:     m.StaffID,
		UserID:      m.UserID,
		DisplayID:   m.DisplayID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Position:    fromNullString(m.Position),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
