// file: internals/features/learning/service/progress_store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "kursusku_backend/internals/features/learning/model"
)

/* =========================================================
   PROGRESS STORE
   Upsert per (enrollment, slide). Idempoten: re-complete
   memperbarui timing saja, completed tidak pernah regresi.
========================================================= */

type ProgressStore struct {
	DB *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{DB: db}
}

// ListCompletedSlideIDs membaca completed-set durable milik satu enrollment.
func (s *ProgressStore) ListCompletedSlideIDs(ctx context.Context, enrollmentID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&model.SlideProgressModel{}).
		Where("slide_progress_enrollment_id = ? AND slide_progress_completed = TRUE", enrollmentID).
		Pluck("slide_progress_slide_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// MarkSlideComplete meng-upsert satu row progress menjadi completed.
func (s *ProgressStore) MarkSlideComplete(ctx context.Context, enrollmentID, slideID uuid.UUID, startedAt, finishedAt time.Time) error {
	elapsed := int(finishedAt.Sub(startedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	row := model.SlideProgressModel{
		SlideProgressEnrollmentID:   enrollmentID,
		SlideProgressSlideID:        slideID,
		SlideProgressCompleted:      true,
		SlideProgressStartedAt:      startedAt,
		SlideProgressFinishedAt:     &finishedAt,
		SlideProgressElapsedSeconds: elapsed,
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "slide_progress_enrollment_id"},
				{Name: "slide_progress_slide_id"},
			},
			// timing boleh overwrite; completed selalu TRUE (tidak pernah turun)
			DoUpdates: clause.Assignments(map[string]interface{}{
				"slide_progress_completed":       true,
				"slide_progress_started_at":      startedAt,
				"slide_progress_finished_at":     finishedAt,
				"slide_progress_elapsed_seconds": elapsed,
				"updated_at":                     finishedAt,
			}),
		}).
		Create(&row).Error
}
