// file: internals/features/learning/controller/learning_session_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseDto "kursusku_backend/internals/features/courses/dto"
	coursesvc "kursusku_backend/internals/features/courses/service"
	enrollCtl "kursusku_backend/internals/features/enrollments/controller"
	enrollModel "kursusku_backend/internals/features/enrollments/model"
	dto "kursusku_backend/internals/features/learning/dto"
	svc "kursusku_backend/internals/features/learning/service"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

/* =======================================================
   Controller struct
======================================================= */

type LearningSessionController struct {
	DB        *gorm.DB
	Content   *coursesvc.ContentRepository
	Progress  *svc.ProgressStore
	Evaluator *svc.QuizEvaluator
	Finalizer *svc.CompletionFinalizer
}

func NewLearningSessionController(db *gorm.DB) *LearningSessionController {
	return &LearningSessionController{
		DB:        db,
		Content:   coursesvc.NewContentRepository(db),
		Progress:  svc.NewProgressStore(db),
		Evaluator: svc.NewQuizEvaluator(db),
		Finalizer: svc.NewCompletionFinalizer(db),
	}
}

/* =======================================================
   session context: enrollment + snapshot konten + completed-set
   Completed-set SELALU dibaca ulang dari storage per request —
   jangan percaya state in-memory sebelumnya (dua tab, retry, dsb).
======================================================= */

type sessionCtx struct {
	enrollment *enrollModel.EnrollmentModel
	content    *coursesvc.CourseContent
	nav        *svc.Navigator
}

func (ctl *LearningSessionController) loadSession(c *fiber.Ctx) (*sessionCtx, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "course_id tidak valid")
	}

	enrollment, err := enrollCtl.FindOwnedEnrollment(ctl.DB, c, userID, courseID)
	if err != nil {
		return nil, err
	}

	content, err := ctl.Content.LoadCourseContent(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, coursesvc.ErrCourseNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "course tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "gagal memuat konten course")
	}

	completed, err := ctl.Progress.ListCompletedSlideIDs(c.Context(), enrollment.EnrollmentID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "gagal memuat progress")
	}

	return &sessionCtx{
		enrollment: enrollment,
		content:    content,
		nav:        svc.NewNavigator(content, completed),
	}, nil
}

func (ctl *LearningSessionController) buildSessionResponse(sc *sessionCtx, state svc.NavigationState) dto.SessionResponse {
	resp := dto.SessionResponse{
		EnrollmentID: sc.enrollment.EnrollmentID,
		State:        state,
		CanAdvance:   sc.nav.CanAdvance(state),
		CanRetreat:   sc.nav.CanRetreat(state),
		Progress:     svc.ComputeProgress(sc.content, sc.nav.Completed),
	}
	if cur := sc.nav.CurrentSlide(state); cur != nil {
		slide := courseDto.NewSlideResponse(cur)
		resp.CurrentSlide = &slide
	}
	return resp
}

/* =======================================================
   GET /api/u/courses/:course_id/session
   Mulai (atau refresh) session: state awal di slide pertama.
   Course tanpa module/slide → empty state, tanpa navigasi.
======================================================= */

func (ctl *LearningSessionController) GetSession(c *fiber.Ctx) error {
	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}
	state := sc.nav.Clamp(svc.NavigationState{SlideShownAt: time.Now()})
	return helper.JsonOK(c, "ok", ctl.buildSessionResponse(sc, state))
}

/* =======================================================
   POST /api/u/courses/:course_id/session/navigate
   Body: {direction: next|prev, state}
======================================================= */

func (ctl *LearningSessionController) Navigate(c *fiber.Ctx) error {
	var body dto.NavigateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}

	var (
		state   svc.NavigationState
		outcome svc.NavOutcome
	)
	switch body.Direction {
	case "next":
		state, outcome, err = sc.nav.Next(body.State)
	default:
		state, outcome, err = sc.nav.Prev(body.State)
	}
	if err != nil {
		if errors.Is(err, svc.ErrSlideNotCompleted) {
			return helper.JsonError(c, fiber.StatusConflict, "Selesaikan slide ini dulu sebelum lanjut")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "navigasi gagal")
	}

	return helper.JsonOK(c, "ok", dto.NavigateResponse{
		Outcome:         outcome,
		SessionResponse: ctl.buildSessionResponse(sc, state),
	})
}

/* =======================================================
   POST /api/u/courses/:course_id/session/confirm-continue
   POST /api/u/courses/:course_id/session/cancel-continue
======================================================= */

func (ctl *LearningSessionController) ConfirmContinue(c *fiber.Ctx) error {
	var body dto.SessionStateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}
	state, outcome, err := sc.nav.ConfirmContinue(body.State)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "navigasi gagal")
	}
	return helper.JsonOK(c, "ok", dto.NavigateResponse{
		Outcome:         outcome,
		SessionResponse: ctl.buildSessionResponse(sc, state),
	})
}

func (ctl *LearningSessionController) CancelContinue(c *fiber.Ctx) error {
	var body dto.SessionStateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}
	state := sc.nav.CancelContinue(body.State)
	return helper.JsonOK(c, "ok", dto.NavigateResponse{
		Outcome:         svc.NavBlocked,
		SessionResponse: ctl.buildSessionResponse(sc, state),
	})
}

/* =======================================================
   POST /api/u/courses/:course_id/session/slides/:slide_id/complete
   Tandai slide image/video selesai (manual). Quiz hanya bisa
   selesai lewat jawaban benar, bukan endpoint ini.
======================================================= */

func (ctl *LearningSessionController) CompleteSlide(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("slide_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "slide_id tidak valid")
	}
	var body dto.CompleteSlideRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}

	mi, si, ok := sc.content.FindSlide(slideID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "slide tidak ada di course ini")
	}
	slide := sc.content.SlideAt(mi, si)
	if slide.IsQuiz() {
		return helper.JsonError(c, fiber.StatusBadRequest, "slide quiz selesai lewat jawaban benar")
	}
	if slide.IsVideo() && !body.Watched && !body.State.HasWatched(slideID) {
		return helper.JsonError(c, fiber.StatusBadRequest, "video belum selesai ditonton")
	}

	now := time.Now()
	startedAt := body.State.SlideShownAt
	if startedAt.IsZero() {
		startedAt = now
	}
	if err := ctl.Progress.MarkSlideComplete(c.Context(), sc.enrollment.EnrollmentID, slideID, startedAt, now); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal menyimpan progress")
	}
	// refresh completed-set lokal setelah write durable
	sc.nav.Completed[slideID] = true

	state := sc.nav.Clamp(body.State)
	if slide.IsVideo() {
		state = state.WithWatched(slideID)
	}

	return ctl.finalizeAndRespond(c, sc, state)
}

/* =======================================================
   POST /api/u/courses/:course_id/session/slides/:slide_id/answer
   Submit jawaban quiz. Benar → slide completed + boleh maju.
   Salah → reroute ke checkpoint terakhir.
======================================================= */

func (ctl *LearningSessionController) AnswerQuiz(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("slide_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "slide_id tidak valid")
	}
	var body dto.AnswerQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	sc, err := ctl.loadSession(c)
	if err != nil {
		return err
	}

	mi, si, ok := sc.content.FindSlide(slideID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "slide tidak ada di course ini")
	}
	slide := sc.content.SlideAt(mi, si)

	shownAt := body.State.SlideShownAt
	if shownAt.IsZero() {
		shownAt = time.Now()
	}

	result, err := ctl.Evaluator.SubmitAnswer(c.Context(), sc.enrollment.EnrollmentID, slide, body.SelectedOptionID, shownAt)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrEmptySelection):
			return helper.JsonError(c, fiber.StatusBadRequest, "Pilih salah satu opsi dulu")
		case errors.Is(err, svc.ErrNotQuizSlide):
			return helper.JsonError(c, fiber.StatusBadRequest, "slide bukan quiz")
		default:
			log.Printf("[LEARNING] submit answer gagal: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "gagal menyimpan attempt, coba lagi")
		}
	}

	// posisi jawaban = posisi slide yang dijawab (bukan klaim client)
	state := body.State
	state.ModuleIndex, state.SlideIndex = mi, si
	state = sc.nav.Clamp(state)

	if result.IsCorrect {
		sc.nav.Completed[slideID] = true
		return ctl.answerRespond(c, sc, state, result)
	}

	// salah → reroute ke slide setelah quiz terakhir sebelum posisi ini
	state = sc.nav.RerouteAfterFailure(state)
	return ctl.answerRespond(c, sc, state, result)
}

func (ctl *LearningSessionController) answerRespond(c *fiber.Ctx, sc *sessionCtx, state svc.NavigationState, result *svc.QuizResult) error {
	resp := dto.AnswerQuizResponse{
		Result:          *result,
		SessionResponse: ctl.buildSessionResponse(sc, state),
	}
	if result.IsCorrect {
		outcome, ferr := ctl.runFinalizer(c, sc)
		resp.Finalize = outcome
		if ferr != nil {
			// progress & enrollment sudah durable; hanya sertifikat yang gagal
			log.Printf("[LEARNING] finalizer error (recoverable): %v", ferr)
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

func (ctl *LearningSessionController) finalizeAndRespond(c *fiber.Ctx, sc *sessionCtx, state svc.NavigationState) error {
	resp := dto.CompleteSlideResponse{
		SessionResponse: ctl.buildSessionResponse(sc, state),
	}
	outcome, ferr := ctl.runFinalizer(c, sc)
	resp.Finalize = outcome
	if ferr != nil {
		log.Printf("[LEARNING] finalizer error (recoverable): %v", ferr)
	}
	return helper.JsonOK(c, "ok", resp)
}

// runFinalizer: snapshot persen + all-completed dihitung dari SATU
// completed-set yang sama lalu diserahkan sebagai satu kesatuan.
func (ctl *LearningSessionController) runFinalizer(c *fiber.Ctx, sc *sessionCtx) (*svc.FinalizeOutcome, error) {
	snap := svc.ComputeProgress(sc.content, sc.nav.Completed)
	return ctl.Finalizer.Finalize(c.Context(), sc.enrollment, snap)
}
