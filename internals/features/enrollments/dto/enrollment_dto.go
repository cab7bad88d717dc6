// file: internals/features/enrollments/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateEnrollmentRequest struct {
	EnrollmentCourseID uuid.UUID `json:"enrollment_course_id" validate:"required"`
}
