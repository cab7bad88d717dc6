// file: internals/features/learning/service/aggregator.go
package service

import (
	"math"

	"github.com/google/uuid"

	coursesvc "kursusku_backend/internals/features/courses/service"
)

/* =========================================================
   PROGRESS AGGREGATOR
   Snapshot atomik: persentase dan flag all-completed dihitung
   dari SATU completed-set yang sama, tidak boleh campur dua
   sumber berbeda.
========================================================= */

type ProgressSnapshot struct {
	CompletedSlides     int     `json:"completed_slides"`
	TotalSlides         int     `json:"total_slides"`
	Ratio               float64 `json:"ratio"`
	Percent             int     `json:"percent"` // dibulatkan ke integer terdekat
	AllModulesCompleted bool    `json:"all_modules_completed"`
}

// ComputeProgress menghitung rasio slide & kelengkapan module.
// Course tanpa slide → ratio 0 (jangan bagi nol). Module tanpa slide
// aktif → vacuously complete dan tetap dihitung di total module.
func ComputeProgress(content *coursesvc.CourseContent, completed map[uuid.UUID]bool) ProgressSnapshot {
	snap := ProgressSnapshot{AllModulesCompleted: true}

	for mi := range content.Modules {
		moduleDone := true
		for si := range content.Modules[mi].Slides {
			snap.TotalSlides++
			if completed[content.Modules[mi].Slides[si].SlideID] {
				snap.CompletedSlides++
			} else {
				moduleDone = false
			}
		}
		if !moduleDone {
			snap.AllModulesCompleted = false
		}
	}

	if snap.TotalSlides > 0 {
		snap.Ratio = float64(snap.CompletedSlides) / float64(snap.TotalSlides)
	}
	snap.Percent = int(math.Round(snap.Ratio * 100))
	return snap
}

// ModuleComplete: setiap slide aktif di module ada di completed-set
// (vacuously true untuk module kosong).
func ModuleComplete(mc *coursesvc.ModuleContent, completed map[uuid.UUID]bool) bool {
	for si := range mc.Slides {
		if !completed[mc.Slides[si].SlideID] {
			return false
		}
	}
	return true
}
