// file: internals/scheduler/progress_reconciler.go
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	coursesvc "kursusku_backend/internals/features/courses/service"
	enrollModel "kursusku_backend/internals/features/enrollments/model"
	learnsvc "kursusku_backend/internals/features/learning/service"

	"kursusku_backend/internals/configs"
)

// StartProgressReconciler menjadwalkan job harian yang menghitung ulang
// enrollment_progress_percent/completed langsung dari slide_progress
// durable. Persentase yang tersimpan hanyalah cache — sumber kebenaran
// tetap row progress, jadi drift (request gagal separuh jalan, dsb)
// selalu bisa dikoreksi. Sertifikat TIDAK diterbitkan dari sini;
// penerbitan tetap edge-triggered di jalur request.
func StartProgressReconciler(db *gorm.DB) {
	spec := configs.GetEnv("PROGRESS_RECONCILE_CRON", "0 3 * * *")

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { reconcileAll(db) }); err != nil {
		log.Printf("[RECONCILE] cron spec tidak valid (%s): %v", spec, err)
		return
	}
	c.Start()
	log.Printf("[RECONCILE] terjadwal: %s", spec)
}

func reconcileAll(db *gorm.DB) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	content := coursesvc.NewContentRepository(db)
	progress := learnsvc.NewProgressStore(db)

	var enrollments []enrollModel.EnrollmentModel
	if err := db.WithContext(ctx).Find(&enrollments).Error; err != nil {
		log.Printf("[RECONCILE ERROR] gagal ambil enrollments: %v", err)
		return
	}

	// cache konten per course supaya tidak load berulang
	contents := map[string]*coursesvc.CourseContent{}
	fixed := 0

	for i := range enrollments {
		e := &enrollments[i]
		key := e.EnrollmentCourseID.String()
		cc, ok := contents[key]
		if !ok {
			loaded, err := content.LoadCourseContent(ctx, e.EnrollmentCourseID)
			if err != nil {
				// course unpublished/terhapus — lewati, jangan sentuh progress
				continue
			}
			cc = loaded
			contents[key] = cc
		}

		completed, err := progress.ListCompletedSlideIDs(ctx, e.EnrollmentID)
		if err != nil {
			log.Printf("[RECONCILE ERROR] enrollment=%s: %v", e.EnrollmentID, err)
			continue
		}
		snap := learnsvc.ComputeProgress(cc, completed)

		if snap.Percent == e.EnrollmentProgressPercent && snap.AllModulesCompleted == e.EnrollmentCompleted {
			continue
		}
		if err := db.WithContext(ctx).
			Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_id = ?", e.EnrollmentID).
			Updates(map[string]interface{}{
				"enrollment_progress_percent": snap.Percent,
				"enrollment_completed":        snap.AllModulesCompleted,
			}).Error; err != nil {
			log.Printf("[RECONCILE ERROR] update enrollment=%s: %v", e.EnrollmentID, err)
			continue
		}
		fixed++
	}

	log.Printf("[RECONCILE] selesai: %d enrollment dikoreksi, durasi=%s", fixed, time.Since(start))
}
