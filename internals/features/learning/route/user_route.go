// file: internals/features/learning/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kursusku_backend/internals/features/learning/controller"
)

// LearningUserRoutes: semua endpoint session butuh login + enrollment
func LearningUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewLearningSessionController(db)

	session := api.Group("/courses/:course_id/session")
	session.Get("/", ctl.GetSession)
	session.Post("/navigate", ctl.Navigate)
	session.Post("/confirm-continue", ctl.ConfirmContinue)
	session.Post("/cancel-continue", ctl.CancelContinue)
	session.Post("/slides/:slide_id/complete", ctl.CompleteSlide)
	session.Post("/slides/:slide_id/answer", ctl.AnswerQuiz)
}
