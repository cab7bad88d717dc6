// file: internals/features/learning/service/quiz_evaluator.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/model"
	model "kursusku_backend/internals/features/learning/model"
)

var (
	ErrEmptySelection = errors.New("belum ada opsi yang dipilih")
	ErrNotQuizSlide   = errors.New("slide bukan tipe 'quiz'")
)

/* =========================================================
   QUIZ EVALUATOR
   Verdict dinilai dari option ID (bukan teks, bukan urutan
   tampil) dalam bentuk kanonik. Attempt SELALU dicatat,
   benar maupun salah; hanya jawaban benar yang menandai
   slide selesai.
========================================================= */

// EvaluateAnswer: perbandingan murni id-vs-id dalam bentuk kanonik.
func EvaluateAnswer(payload *courseModel.QuizPayload, selectedOptionID string) (bool, error) {
	selected := canonicalOptionID(selectedOptionID)
	if selected == "" {
		return false, ErrEmptySelection
	}
	return selected == canonicalOptionID(payload.CorrectOptionID), nil
}

func canonicalOptionID(id string) string {
	return strings.TrimSpace(id)
}

type QuizResult struct {
	IsCorrect       bool    `json:"is_correct"`
	Score           int     `json:"score"`
	Explanation     *string `json:"explanation,omitempty"`
	ResponseSeconds int     `json:"response_seconds"`
}

type QuizEvaluator struct {
	DB       *gorm.DB
	Progress *ProgressStore

	Now func() time.Time
}

func NewQuizEvaluator(db *gorm.DB) *QuizEvaluator {
	return &QuizEvaluator{DB: db, Progress: NewProgressStore(db), Now: time.Now}
}

// SubmitAnswer mengevaluasi jawaban lalu mencatat side effect:
//  1. append QuizAttempt (append-only, attempt ke-berapa pun)
//  2. kalau benar → upsert progress slide jadi completed
//
// Seleksi kosong ditolak SEBELUM persistence apa pun — tidak dicatat
// sebagai attempt. shownAt = kapan slide pertama tampil (dari nav state),
// dipakai untuk response time.
func (e *QuizEvaluator) SubmitAnswer(
	ctx context.Context,
	enrollmentID uuid.UUID,
	slide *courseModel.SlideModel,
	selectedOptionID string,
	shownAt time.Time,
) (*QuizResult, error) {
	if !slide.IsQuiz() {
		return nil, ErrNotQuizSlide
	}
	payload, err := slide.ParseQuizPayload()
	if err != nil {
		return nil, err
	}

	// validasi dulu, sebelum ada row apa pun
	isCorrect, err := EvaluateAnswer(payload, selectedOptionID)
	if err != nil {
		return nil, err
	}

	now := e.Now()
	responseSeconds := int(now.Sub(shownAt).Seconds())
	if responseSeconds < 0 {
		responseSeconds = 0
	}
	score := 0
	if isCorrect {
		score = 100
	}

	attempt := model.QuizAttemptModel{
		QuizAttemptEnrollmentID:     enrollmentID,
		QuizAttemptSlideID:          slide.SlideID,
		QuizAttemptSelectedOptionID: canonicalOptionID(selectedOptionID),
		QuizAttemptIsCorrect:        isCorrect,
		QuizAttemptScore:            score,
		QuizAttemptResponseSeconds:  responseSeconds,
	}

	// attempt + progress dalam satu transaksi: jangan maju sebelum durable
	err = e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		if isCorrect {
			store := &ProgressStore{DB: tx}
			if err := store.MarkSlideComplete(ctx, enrollmentID, slide.SlideID, shownAt, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &QuizResult{
		IsCorrect:       isCorrect,
		Score:           score,
		ResponseSeconds: responseSeconds,
	}
	if isCorrect {
		// explanation hanya dibuka setelah jawaban benar
		result.Explanation = payload.Explanation
	}
	return result, nil
}
