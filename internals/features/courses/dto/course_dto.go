// file: internals/features/courses/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/courses/model"
)

/* =========================================================
   RESPONSES (read-side katalog)
========================================================= */

type CourseResponse struct {
	CourseID          uuid.UUID `json:"course_id"`
	CourseTitle       string    `json:"course_title"`
	CourseDescription *string   `json:"course_description,omitempty"`
	CourseImageURL    *string   `json:"course_image_url,omitempty"`
	CourseCreatedAt   time.Time `json:"course_created_at"`
}

func NewCourseResponse(m *model.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:          m.CourseID,
		CourseTitle:       m.CourseTitle,
		CourseDescription: m.CourseDescription,
		CourseImageURL:    m.CourseImageURL,
		CourseCreatedAt:   m.CourseCreatedAt,
	}
}

// SlideResponse: payload quiz SELALU disaring — correct_option_id dan
// explanation tidak boleh bocor ke murid sebelum menjawab.
type SlideResponse struct {
	SlideID       uuid.UUID       `json:"slide_id"`
	SlideRank     int             `json:"slide_rank"`
	SlideKind     model.SlideKind `json:"slide_kind"`
	SlideTitle    *string         `json:"slide_title,omitempty"`
	SlideBody     *string         `json:"slide_body,omitempty"`
	SlideMediaURL *string         `json:"slide_media_url,omitempty"`

	QuizQuestion *string            `json:"quiz_question,omitempty"`
	QuizOptions  []model.QuizOption `json:"quiz_options,omitempty"`
}

func NewSlideResponse(m *model.SlideModel) SlideResponse {
	resp := SlideResponse{
		SlideID:       m.SlideID,
		SlideRank:     m.SlideRank,
		SlideKind:     m.SlideKind,
		SlideTitle:    m.SlideTitle,
		SlideBody:     m.SlideBody,
		SlideMediaURL: m.SlideMediaURL,
	}
	if m.IsQuiz() {
		if p, err := m.ParseQuizPayload(); err == nil {
			resp.QuizQuestion = &p.Question
			resp.QuizOptions = p.Options
		}
	}
	return resp
}

type ModuleResponse struct {
	CourseModuleID    uuid.UUID       `json:"course_module_id"`
	CourseModuleTitle string          `json:"course_module_title"`
	CourseModuleRank  int             `json:"course_module_rank"`
	Slides            []SlideResponse `json:"slides"`
}

type CourseDetailResponse struct {
	CourseResponse
	Modules []ModuleResponse `json:"modules"`
}
