// file: internals/features/courses/model/slide_model.go
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SlideKind string

const (
	SlideKindImage SlideKind = "image"
	SlideKindQuiz  SlideKind = "quiz"
	SlideKindVideo SlideKind = "video"
)

type SlideModel struct {
	SlideID       uuid.UUID `gorm:"column:slide_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"slide_id"`
	SlideModuleID uuid.UUID `gorm:"column:slide_module_id;type:uuid;not null;uniqueIndex:uq_slide_rank" json:"slide_module_id"`
	SlideKind     SlideKind `gorm:"column:slide_kind;type:varchar(8);not null" json:"slide_kind"`

	// Rank unik per module — urutan traversal di dalam module
	SlideRank int `gorm:"column:slide_rank;not null;uniqueIndex:uq_slide_rank" json:"slide_rank"`

	SlideTitle *string `gorm:"column:slide_title;type:varchar(180)" json:"slide_title,omitempty"`
	SlideBody  *string `gorm:"column:slide_body;type:text" json:"slide_body,omitempty"`

	// image/video: URL media. quiz: NULL.
	SlideMediaURL *string `gorm:"column:slide_media_url;type:text" json:"slide_media_url,omitempty"`

	// quiz: payload pertanyaan (lihat QuizPayload). image/video: NULL.
	SlideQuizPayload datatypes.JSON `gorm:"column:slide_quiz_payload;type:jsonb" json:"slide_quiz_payload,omitempty"`

	SlideCreatedAt time.Time      `gorm:"column:slide_created_at;not null;autoCreateTime" json:"slide_created_at"`
	SlideUpdatedAt time.Time      `gorm:"column:slide_updated_at;not null;autoUpdateTime" json:"slide_updated_at"`
	SlideDeletedAt gorm.DeletedAt `gorm:"column:slide_deleted_at" json:"slide_deleted_at,omitempty"`
}

func (SlideModel) TableName() string { return "slides" }

// ------------------------
// Helpers
// ------------------------

func (m *SlideModel) IsQuiz() bool  { return m.SlideKind == SlideKindQuiz }
func (m *SlideModel) IsVideo() bool { return m.SlideKind == SlideKindVideo }

// QuizOption: satu opsi jawaban. Kebenaran dinilai dari ID, bukan teks,
// supaya urutan tampilan bebas diacak tanpa mengubah verdict.
type QuizOption struct {
	OptionID   string `json:"option_id"`
	OptionText string `json:"option_text"`
}

type QuizPayload struct {
	Question        string       `json:"question"`
	Options         []QuizOption `json:"options"`
	CorrectOptionID string       `json:"correct_option_id"`
	Explanation     *string      `json:"explanation,omitempty"`
}

// ParseQuizPayload membaca payload quiz dari kolom JSONB.
func (m *SlideModel) ParseQuizPayload() (*QuizPayload, error) {
	if !m.IsQuiz() {
		return nil, errors.New("slide bukan tipe 'quiz'")
	}
	if len(m.SlideQuizPayload) == 0 {
		return nil, errors.New("quiz payload kosong")
	}
	var p QuizPayload
	if err := json.Unmarshal(m.SlideQuizPayload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetQuizPayload memvalidasi bentuk payload lalu menyimpan ke JSONB.
func (m *SlideModel) SetQuizPayload(p QuizPayload) error {
	if !m.IsQuiz() {
		return errors.New("slide bukan tipe 'quiz'")
	}
	if err := p.ValidateShape(); err != nil {
		return err
	}
	b, _ := json.Marshal(p)
	m.SlideQuizPayload = datatypes.JSON(b)
	return nil
}

// ValidateShape → mirror CHECK constraint DB supaya cepat fail di app
func (p QuizPayload) ValidateShape() error {
	if strings.TrimSpace(p.Question) == "" {
		return errors.New("question wajib diisi")
	}
	if len(p.Options) < 2 {
		return errors.New("minimal 2 opsi diperlukan")
	}
	correct := strings.TrimSpace(p.CorrectOptionID)
	if correct == "" {
		return errors.New("correct_option_id wajib diisi")
	}
	seen := map[string]bool{}
	found := false
	for _, op := range p.Options {
		id := strings.TrimSpace(op.OptionID)
		if id == "" {
			return errors.New("option_id tidak boleh kosong")
		}
		if seen[id] {
			return errors.New("option_id duplikat: " + id)
		}
		seen[id] = true
		if strings.TrimSpace(op.OptionText) == "" {
			return errors.New("option_text tidak boleh kosong")
		}
		if id == correct {
			found = true
		}
	}
	if !found {
		return errors.New("correct_option_id tidak ada pada options")
	}
	return nil
}
