package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "kursusku_backend/internals/features/courses/model"
	model "kursusku_backend/internals/features/learning/model"
)

func TestEvaluateAnswer_ByOptionID(t *testing.T) {
	payload := defaultQuizPayload()

	ok, err := EvaluateAnswer(&payload, "opt-b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateAnswer(&payload, "opt-a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateAnswer_CanonicalWhitespace(t *testing.T) {
	payload := defaultQuizPayload()

	ok, err := EvaluateAnswer(&payload, "  opt-b \n")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateAnswer_EmptySelectionRejected(t *testing.T) {
	payload := defaultQuizPayload()

	for _, sel := range []string{"", "   ", "\t\n"} {
		_, err := EvaluateAnswer(&payload, sel)
		assert.ErrorIs(t, err, ErrEmptySelection)
	}
}

func TestEvaluateAnswer_OptionOrderIrrelevant(t *testing.T) {
	// Verdict dinilai dari ID, bukan posisi tampil. Permutasi options
	// tidak boleh mengubah hasil.
	base := defaultQuizPayload()
	shuffled := defaultQuizPayload()
	shuffled.Options = []courseModel.QuizOption{
		base.Options[2], base.Options[0], base.Options[1],
	}

	okBase, err := EvaluateAnswer(&base, "opt-b")
	require.NoError(t, err)
	okShuffled, err := EvaluateAnswer(&shuffled, "opt-b")
	require.NoError(t, err)
	assert.Equal(t, okBase, okShuffled)
	assert.True(t, okShuffled)
}

/* =========================================================
   SUBMIT (DB)
========================================================= */

func quizSlide(t *testing.T) *courseModel.SlideModel {
	t.Helper()
	content := buildContent([]courseModel.SlideKind{courseModel.SlideKindQuiz})
	return &content.Modules[0].Slides[0]
}

func TestSubmitAnswer_CorrectRecordsAttemptAndProgress(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)
	ev.Now = func() time.Time { return fixedNow }

	enrollmentID := uuid.New()
	slide := quizSlide(t)
	shownAt := fixedNow.Add(-42 * time.Second)

	res, err := ev.SubmitAnswer(context.Background(), enrollmentID, slide, "opt-b", shownAt)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 42, res.ResponseSeconds)

	var attempts []model.QuizAttemptModel
	require.NoError(t, db.Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].QuizAttemptIsCorrect)
	assert.Equal(t, "opt-b", attempts[0].QuizAttemptSelectedOptionID)
	assert.Equal(t, 42, attempts[0].QuizAttemptResponseSeconds)

	set, err := ev.Progress.ListCompletedSlideIDs(context.Background(), enrollmentID)
	require.NoError(t, err)
	assert.True(t, set[slide.SlideID], "jawaban benar menandai slide selesai")
}

func TestSubmitAnswer_IncorrectRecordsAttemptOnly(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)

	enrollmentID := uuid.New()
	slide := quizSlide(t)

	res, err := ev.SubmitAnswer(context.Background(), enrollmentID, slide, "opt-a", time.Now())
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0, res.Score)
	assert.Nil(t, res.Explanation, "explanation tidak dibuka untuk jawaban salah")

	var count int64
	require.NoError(t, db.Model(&model.QuizAttemptModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	set, err := ev.Progress.ListCompletedSlideIDs(context.Background(), enrollmentID)
	require.NoError(t, err)
	assert.Empty(t, set, "jawaban salah tidak menandai progress")
}

func TestSubmitAnswer_AttemptsAppendOnly(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)

	enrollmentID := uuid.New()
	slide := quizSlide(t)

	_, err := ev.SubmitAnswer(context.Background(), enrollmentID, slide, "opt-a", time.Now())
	require.NoError(t, err)
	_, err = ev.SubmitAnswer(context.Background(), enrollmentID, slide, "opt-b", time.Now())
	require.NoError(t, err)

	var attempts []model.QuizAttemptModel
	require.NoError(t, db.Order("quiz_attempt_created_at").Find(&attempts).Error)
	assert.Len(t, attempts, 2, "attempt berulang membuat row baru, bukan overwrite")
}

func TestSubmitAnswer_EmptySelectionNoPersistence(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)

	_, err := ev.SubmitAnswer(context.Background(), uuid.New(), quizSlide(t), "   ", time.Now())
	assert.ErrorIs(t, err, ErrEmptySelection)

	var count int64
	require.NoError(t, db.Model(&model.QuizAttemptModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "seleksi kosong ditolak sebelum ada row apa pun")
}

func TestSubmitAnswer_RejectsNonQuizSlide(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)

	content := buildContent([]courseModel.SlideKind{courseModel.SlideKindImage})
	_, err := ev.SubmitAnswer(context.Background(), uuid.New(), &content.Modules[0].Slides[0], "opt-a", time.Now())
	assert.ErrorIs(t, err, ErrNotQuizSlide)
}

func TestSubmitAnswer_ExplanationOnlyWhenCorrect(t *testing.T) {
	db := newTestDB(t)
	ev := NewQuizEvaluator(db)

	content := buildContent([]courseModel.SlideKind{courseModel.SlideKindQuiz})
	slide := &content.Modules[0].Slides[0]
	explanation := "empat adalah hasil 2+2"
	payload := defaultQuizPayload()
	payload.Explanation = &explanation
	require.NoError(t, slide.SetQuizPayload(payload))

	res, err := ev.SubmitAnswer(context.Background(), uuid.New(), slide, "opt-b", time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.Explanation)
	assert.Equal(t, explanation, *res.Explanation)
}
