package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() QuizPayload {
	return QuizPayload{
		Question: "Ibukota Indonesia?",
		Options: []QuizOption{
			{OptionID: "a", OptionText: "Jakarta"},
			{OptionID: "b", OptionText: "Bandung"},
		},
		CorrectOptionID: "a",
	}
}

func TestQuizPayload_ValidateShape(t *testing.T) {
	assert.NoError(t, validPayload().ValidateShape())

	p := validPayload()
	p.Question = "  "
	assert.Error(t, p.ValidateShape(), "question kosong ditolak")

	p = validPayload()
	p.Options = p.Options[:1]
	assert.Error(t, p.ValidateShape(), "minimal 2 opsi")

	p = validPayload()
	p.Options[1].OptionID = "a"
	assert.Error(t, p.ValidateShape(), "option_id duplikat ditolak")

	p = validPayload()
	p.CorrectOptionID = "z"
	assert.Error(t, p.ValidateShape(), "correct harus ada di options")
}

func TestSlideQuizPayload_RoundTrip(t *testing.T) {
	slide := SlideModel{SlideKind: SlideKindQuiz}
	require.NoError(t, slide.SetQuizPayload(validPayload()))

	parsed, err := slide.ParseQuizPayload()
	require.NoError(t, err)
	assert.Equal(t, "a", parsed.CorrectOptionID)
	assert.Len(t, parsed.Options, 2)
}

func TestSlideQuizPayload_NonQuizRejected(t *testing.T) {
	slide := SlideModel{SlideKind: SlideKindImage}
	assert.Error(t, slide.SetQuizPayload(validPayload()))

	_, err := slide.ParseQuizPayload()
	assert.Error(t, err)
}
