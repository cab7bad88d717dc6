// file: internals/features/learning/service/navigation.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	coursesvc "kursusku_backend/internals/features/courses/service"
	courseModel "kursusku_backend/internals/features/courses/model"
)

/* =========================================================
   NAVIGATION STATE
   Nilai state yang serializable & dipegang client per session.
   Completed-set TIDAK ikut di sini — selalu di-derive ulang
   dari storage. VideoWatched transient: hanya membuka tombol
   "tandai selesai" untuk slide video, tidak pernah dipersist.
========================================================= */

type NavigationState struct {
	ModuleIndex           int         `json:"module_index"`
	SlideIndex            int         `json:"slide_index"`
	AwaitingModuleConfirm bool        `json:"awaiting_module_confirm"`
	VideoWatched          []uuid.UUID `json:"video_watched,omitempty"`
	SlideShownAt          time.Time   `json:"slide_shown_at"`
}

func (s NavigationState) HasWatched(slideID uuid.UUID) bool {
	for _, id := range s.VideoWatched {
		if id == slideID {
			return true
		}
	}
	return false
}

func (s NavigationState) WithWatched(slideID uuid.UUID) NavigationState {
	if s.HasWatched(slideID) {
		return s
	}
	s.VideoWatched = append(append([]uuid.UUID(nil), s.VideoWatched...), slideID)
	return s
}

type NavOutcome string

const (
	NavMoved        NavOutcome = "moved"
	NavNeedsConfirm NavOutcome = "needs_module_confirm" // friction point: lintas module butuh konfirmasi eksplisit
	NavBlocked      NavOutcome = "blocked"              // mentok di awal/akhir course
)

var ErrSlideNotCompleted = errors.New("slide saat ini belum selesai")

/* =========================================================
   NAVIGATOR
   State machine murni di atas snapshot konten + completed-set.
   Tidak menyentuh DB sama sekali supaya gampang di-unit-test.
========================================================= */

type Navigator struct {
	Content   *coursesvc.CourseContent
	Completed map[uuid.UUID]bool

	Now func() time.Time
}

func NewNavigator(content *coursesvc.CourseContent, completed map[uuid.UUID]bool) *Navigator {
	if completed == nil {
		completed = map[uuid.UUID]bool{}
	}
	return &Navigator{Content: content, Completed: completed, Now: time.Now}
}

// Clamp menormalkan index yang di luar jangkauan ke posisi valid terdekat.
// Index invalid bukan alasan crash — cukup dijepit.
func (n *Navigator) Clamp(s NavigationState) NavigationState {
	if len(n.Content.Modules) == 0 {
		s.ModuleIndex, s.SlideIndex = 0, 0
		return s
	}
	if s.ModuleIndex < 0 {
		s.ModuleIndex = 0
	}
	if s.ModuleIndex >= len(n.Content.Modules) {
		s.ModuleIndex = len(n.Content.Modules) - 1
	}
	slides := n.Content.Modules[s.ModuleIndex].Slides
	if s.SlideIndex < 0 {
		s.SlideIndex = 0
	}
	if len(slides) == 0 {
		s.SlideIndex = 0
	} else if s.SlideIndex >= len(slides) {
		s.SlideIndex = len(slides) - 1
	}
	return s
}

// CurrentSlide mengembalikan slide di posisi sekarang, nil kalau course kosong.
func (n *Navigator) CurrentSlide(s NavigationState) *courseModel.SlideModel {
	return n.Content.SlideAt(s.ModuleIndex, s.SlideIndex)
}

// CanAdvance: slide sekarang harus sudah selesai DAN masih ada slide
// setelah posisi ini (slide berikut di module, atau module belakangan
// yang punya slide — module kosong dilompati).
func (n *Navigator) CanAdvance(s NavigationState) bool {
	cur := n.CurrentSlide(s)
	if cur == nil {
		return false
	}
	if !n.Completed[cur.SlideID] {
		return false
	}
	return n.hasSlideAfter(s.ModuleIndex, s.SlideIndex)
}

// CanRetreat: true kecuali sudah di slide paling awal course.
func (n *Navigator) CanRetreat(s NavigationState) bool {
	return n.hasSlideBefore(s.ModuleIndex, s.SlideIndex)
}

func (n *Navigator) hasSlideAfter(mi, si int) bool {
	if mi < 0 || mi >= len(n.Content.Modules) {
		return false
	}
	if si+1 < len(n.Content.Modules[mi].Slides) {
		return true
	}
	for i := mi + 1; i < len(n.Content.Modules); i++ {
		if len(n.Content.Modules[i].Slides) > 0 {
			return true
		}
	}
	return false
}

func (n *Navigator) hasSlideBefore(mi, si int) bool {
	if si > 0 {
		return true
	}
	for i := mi - 1; i >= 0; i-- {
		if len(n.Content.Modules[i].Slides) > 0 {
			return true
		}
	}
	return false
}

/* =========================================================
   TRANSISI
========================================================= */

// Next maju satu slide di dalam module. Kalau slide module sudah habis
// tapi masih ada module berikutnya, TIDAK auto-lanjut: state pindah ke
// awaiting_module_confirm dan client harus memanggil ConfirmContinue.
func (n *Navigator) Next(s NavigationState) (NavigationState, NavOutcome, error) {
	s = n.Clamp(s)
	cur := n.CurrentSlide(s)
	if cur == nil {
		return s, NavBlocked, nil
	}
	if !n.Completed[cur.SlideID] {
		return s, NavBlocked, ErrSlideNotCompleted
	}
	if s.SlideIndex+1 < len(n.Content.Modules[s.ModuleIndex].Slides) {
		s.SlideIndex++
		s.AwaitingModuleConfirm = false
		s.SlideShownAt = n.Now() // reset jam elapsed per-slide
		return s, NavMoved, nil
	}
	// akhir module — cek masih ada slide di module belakangan
	if n.hasSlideAfter(s.ModuleIndex, s.SlideIndex) {
		s.AwaitingModuleConfirm = true
		return s, NavNeedsConfirm, nil
	}
	return s, NavBlocked, nil
}

// Prev mundur satu slide; di awal module pindah ke slide terakhir module
// sebelumnya (module kosong dilompati). No-op di awal course.
func (n *Navigator) Prev(s NavigationState) (NavigationState, NavOutcome, error) {
	s = n.Clamp(s)
	s.AwaitingModuleConfirm = false
	if s.SlideIndex > 0 {
		s.SlideIndex--
		s.SlideShownAt = n.Now()
		return s, NavMoved, nil
	}
	for mi := s.ModuleIndex - 1; mi >= 0; mi-- {
		if cnt := len(n.Content.Modules[mi].Slides); cnt > 0 {
			s.ModuleIndex = mi
			s.SlideIndex = cnt - 1
			s.SlideShownAt = n.Now()
			return s, NavMoved, nil
		}
	}
	return s, NavBlocked, nil
}

// ConfirmContinue dieksekusi hanya setelah konfirmasi eksplisit user:
// pindah ke slide pertama module berikutnya yang punya slide.
func (n *Navigator) ConfirmContinue(s NavigationState) (NavigationState, NavOutcome, error) {
	s = n.Clamp(s)
	if !s.AwaitingModuleConfirm {
		return s, NavBlocked, nil
	}
	for mi := s.ModuleIndex + 1; mi < len(n.Content.Modules); mi++ {
		if len(n.Content.Modules[mi].Slides) > 0 {
			s.ModuleIndex = mi
			s.SlideIndex = 0
			s.AwaitingModuleConfirm = false
			s.SlideShownAt = n.Now()
			return s, NavMoved, nil
		}
	}
	s.AwaitingModuleConfirm = false
	return s, NavBlocked, nil
}

// CancelContinue membatalkan dialog lanjut-module; posisi tidak berubah.
func (n *Navigator) CancelContinue(s NavigationState) NavigationState {
	s = n.Clamp(s)
	s.AwaitingModuleConfirm = false
	return s
}

// RerouteAfterFailure dipanggil setelah jawaban quiz salah: scan semua
// slide dalam urutan traversal SEBELUM posisi sekarang, cari quiz
// terakhir, lalu mendarat di slide persis setelah quiz itu (resume dari
// checkpoint terakhir). Kalau tidak ada quiz sebelumnya → slide 0 di
// module sekarang. Tujuannya memaksa review materi sejak checkpoint,
// bukan restart satu module penuh.
func (n *Navigator) RerouteAfterFailure(s NavigationState) NavigationState {
	s = n.Clamp(s)
	s.AwaitingModuleConfirm = false

	type pos struct{ mi, si int }
	var lastQuiz *pos
	for mi := 0; mi <= s.ModuleIndex && mi < len(n.Content.Modules); mi++ {
		slides := n.Content.Modules[mi].Slides
		limit := len(slides)
		if mi == s.ModuleIndex {
			limit = s.SlideIndex // strictly before posisi sekarang
		}
		for si := 0; si < limit; si++ {
			if slides[si].IsQuiz() {
				lastQuiz = &pos{mi, si}
			}
		}
	}

	if lastQuiz == nil {
		s.SlideIndex = 0
		s.SlideShownAt = n.Now()
		return s
	}

	// slide persis setelah quiz tsb dalam urutan traversal
	mi, si := lastQuiz.mi, lastQuiz.si+1
	for mi < len(n.Content.Modules) && si >= len(n.Content.Modules[mi].Slides) {
		mi++
		si = 0
	}
	if mi >= len(n.Content.Modules) {
		// quiz terakhir ada di ujung course (tidak mungkin kalau failure
		// terjadi setelahnya, tapi clamp saja)
		return n.Clamp(s)
	}
	s.ModuleIndex = mi
	s.SlideIndex = si
	s.SlideShownAt = n.Now()
	return s
}
