// file: internals/features/learning/dto/learning_dto.go
package dto

import (
	"github.com/google/uuid"

	courseDto "kursusku_backend/internals/features/courses/dto"
	svc "kursusku_backend/internals/features/learning/service"
)

/* =========================================================
   REQUESTS
   Nav state dipegang client (serializable), dikirim balik di
   setiap operasi; completed-set tidak pernah ikut — selalu
   di-derive dari storage.
========================================================= */

type NavigateRequest struct {
	Direction string              `json:"direction" validate:"required,oneof=next prev"`
	State     svc.NavigationState `json:"state"`
}

type SessionStateRequest struct {
	State svc.NavigationState `json:"state"`
}

type CompleteSlideRequest struct {
	State svc.NavigationState `json:"state"`
	// video: client wajib mengirim watched=true (gating tampilan tombol
	// selesai; transient, tidak dipersist)
	Watched bool `json:"watched"`
}

type AnswerQuizRequest struct {
	SelectedOptionID string              `json:"selected_option_id"`
	State            svc.NavigationState `json:"state"`
}

/* =========================================================
   RESPONSES
========================================================= */

type SessionResponse struct {
	EnrollmentID uuid.UUID                  `json:"enrollment_id"`
	State        svc.NavigationState        `json:"state"`
	CurrentSlide *courseDto.SlideResponse   `json:"current_slide,omitempty"` // nil = course kosong
	CanAdvance   bool                       `json:"can_advance"`
	CanRetreat   bool                       `json:"can_retreat"`
	Progress     svc.ProgressSnapshot       `json:"progress"`
}

type NavigateResponse struct {
	Outcome svc.NavOutcome `json:"outcome"`
	SessionResponse
}

type CompleteSlideResponse struct {
	SessionResponse
	Finalize *svc.FinalizeOutcome `json:"finalize,omitempty"`
}

type AnswerQuizResponse struct {
	Result svc.QuizResult `json:"result"`
	SessionResponse
	Finalize *svc.FinalizeOutcome `json:"finalize,omitempty"`
}
