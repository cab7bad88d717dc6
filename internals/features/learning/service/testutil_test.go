package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "kursusku_backend/internals/features/courses/model"
	coursesvc "kursusku_backend/internals/features/courses/service"
)

// buildContent menyusun snapshot course in-memory: satu slice kind per module.
func buildContent(moduleKinds ...[]courseModel.SlideKind) *coursesvc.CourseContent {
	courseID := uuid.New()
	content := &coursesvc.CourseContent{
		Course: courseModel.CourseModel{CourseID: courseID, CourseIsPublished: true},
	}
	for mi, kinds := range moduleKinds {
		moduleID := uuid.New()
		mc := coursesvc.ModuleContent{
			Module: courseModel.CourseModuleModel{
				CourseModuleID:       moduleID,
				CourseModuleCourseID: courseID,
				CourseModuleRank:     mi + 1,
				CourseModuleIsActive: true,
			},
		}
		for si, kind := range kinds {
			slide := courseModel.SlideModel{
				SlideID:       uuid.New(),
				SlideModuleID: moduleID,
				SlideKind:     kind,
				SlideRank:     si + 1,
			}
			if kind == courseModel.SlideKindQuiz {
				_ = slide.SetQuizPayload(defaultQuizPayload())
			}
			mc.Slides = append(mc.Slides, slide)
		}
		content.Modules = append(content.Modules, mc)
	}
	return content
}

func defaultQuizPayload() courseModel.QuizPayload {
	return courseModel.QuizPayload{
		Question: "2 + 2 = ?",
		Options: []courseModel.QuizOption{
			{OptionID: "opt-a", OptionText: "3"},
			{OptionID: "opt-b", OptionText: "4"},
			{OptionID: "opt-c", OptionText: "5"},
		},
		CorrectOptionID: "opt-b",
	}
}

func completeAll(content *coursesvc.CourseContent) map[uuid.UUID]bool {
	set := map[uuid.UUID]bool{}
	for mi := range content.Modules {
		for si := range content.Modules[mi].Slides {
			set[content.Modules[mi].Slides[si].SlideID] = true
		}
	}
	return set
}

// newTestDB: sqlite in-memory dengan skema minimal tabel engine.
// DDL eksplisit (bukan AutoMigrate) supaya unique index idempotensi
// persis seperti di Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// satu koneksi saja: DB :memory: terikat per-connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE slide_progress (
			slide_progress_id TEXT PRIMARY KEY,
			slide_progress_enrollment_id TEXT NOT NULL,
			slide_progress_slide_id TEXT NOT NULL,
			slide_progress_completed BOOLEAN NOT NULL DEFAULT FALSE,
			slide_progress_started_at DATETIME NOT NULL,
			slide_progress_finished_at DATETIME,
			slide_progress_elapsed_seconds INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (slide_progress_enrollment_id, slide_progress_slide_id)
		)`,
		`CREATE TABLE quiz_attempts (
			quiz_attempt_id TEXT PRIMARY KEY,
			quiz_attempt_enrollment_id TEXT NOT NULL,
			quiz_attempt_slide_id TEXT NOT NULL,
			quiz_attempt_selected_option_id TEXT NOT NULL,
			quiz_attempt_is_correct BOOLEAN NOT NULL,
			quiz_attempt_score INTEGER NOT NULL,
			quiz_attempt_response_seconds INTEGER NOT NULL DEFAULT 0,
			quiz_attempt_created_at DATETIME
		)`,
		`CREATE TABLE enrollments (
			enrollment_id TEXT PRIMARY KEY,
			enrollment_user_id TEXT NOT NULL,
			enrollment_course_id TEXT NOT NULL,
			enrollment_progress_percent INTEGER NOT NULL DEFAULT 0,
			enrollment_completed BOOLEAN NOT NULL DEFAULT FALSE,
			enrollment_created_at DATETIME,
			enrollment_completed_at DATETIME,
			UNIQUE (enrollment_user_id, enrollment_course_id)
		)`,
		`CREATE TABLE certificates (
			certificate_id TEXT PRIMARY KEY,
			certificate_user_id TEXT NOT NULL,
			certificate_course_id TEXT NOT NULL,
			certificate_enrollment_id TEXT NOT NULL,
			certificate_number TEXT NOT NULL UNIQUE,
			certificate_verified BOOLEAN NOT NULL DEFAULT TRUE,
			certificate_issued_at DATETIME NOT NULL,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (certificate_user_id, certificate_course_id)
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("ddl: %v", err)
		}
	}
	return db
}
