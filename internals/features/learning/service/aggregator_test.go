package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	courseModel "kursusku_backend/internals/features/courses/model"
)

func TestComputeProgress_EmptyCourse(t *testing.T) {
	content := buildContent()
	snap := ComputeProgress(content, nil)

	assert.Equal(t, 0, snap.TotalSlides)
	assert.Equal(t, 0.0, snap.Ratio, "tanpa slide ratio 0, bukan NaN")
	assert.Equal(t, 0, snap.Percent)
}

func TestComputeProgress_RatioAndPercent(t *testing.T) {
	content := buildContent([]courseModel.SlideKind{
		courseModel.SlideKindImage,
		courseModel.SlideKindImage,
		courseModel.SlideKindQuiz,
	})
	completed := map[uuid.UUID]bool{
		content.Modules[0].Slides[0].SlideID: true,
	}

	snap := ComputeProgress(content, completed)
	assert.Equal(t, 3, snap.TotalSlides)
	assert.Equal(t, 1, snap.CompletedSlides)
	assert.InDelta(t, 1.0/3.0, snap.Ratio, 1e-9)
	assert.Equal(t, 33, snap.Percent, "dibulatkan ke integer terdekat")
	assert.False(t, snap.AllModulesCompleted)
}

func TestComputeProgress_MonotonicNonDecreasing(t *testing.T) {
	content := buildContent(
		[]courseModel.SlideKind{courseModel.SlideKindImage, courseModel.SlideKindQuiz},
		[]courseModel.SlideKind{courseModel.SlideKindImage, courseModel.SlideKindVideo},
	)
	completed := map[uuid.UUID]bool{}

	prev := ComputeProgress(content, completed).Ratio
	for mi := range content.Modules {
		for si := range content.Modules[mi].Slides {
			completed[content.Modules[mi].Slides[si].SlideID] = true
			cur := ComputeProgress(content, completed).Ratio
			assert.GreaterOrEqual(t, cur, prev, "ratio tidak boleh turun")
			prev = cur
		}
	}
	assert.Equal(t, 1.0, prev)
}

func TestComputeProgress_FullOnlyWhenAllComplete(t *testing.T) {
	content := buildContent(
		[]courseModel.SlideKind{courseModel.SlideKindImage, courseModel.SlideKindImage},
	)
	completed := map[uuid.UUID]bool{
		content.Modules[0].Slides[0].SlideID: true,
	}

	snap := ComputeProgress(content, completed)
	assert.Less(t, snap.Ratio, 1.0)
	assert.False(t, snap.AllModulesCompleted)

	completed[content.Modules[0].Slides[1].SlideID] = true
	snap = ComputeProgress(content, completed)
	assert.Equal(t, 1.0, snap.Ratio)
	assert.Equal(t, 100, snap.Percent)
	assert.True(t, snap.AllModulesCompleted)
}

func TestComputeProgress_EmptyModuleVacuouslyComplete(t *testing.T) {
	content := buildContent(
		[]courseModel.SlideKind{courseModel.SlideKindImage},
		[]courseModel.SlideKind{}, // vacuously complete
	)
	completed := completeAll(content)

	snap := ComputeProgress(content, completed)
	assert.Equal(t, 1, snap.TotalSlides, "module kosong tidak menambah total slide")
	assert.True(t, snap.AllModulesCompleted, "module kosong tidak memblokir completion")

	assert.True(t, ModuleComplete(&content.Modules[1], completed))
}

func TestComputeProgress_SnapshotConsistency(t *testing.T) {
	// Persen 100 dan all-completed harus datang dari satu set yang sama:
	// set lengkap → keduanya true, set kurang satu → keduanya false.
	content := buildContent(
		[]courseModel.SlideKind{courseModel.SlideKindImage, courseModel.SlideKindQuiz},
		[]courseModel.SlideKind{courseModel.SlideKindImage},
	)

	full := completeAll(content)
	snap := ComputeProgress(content, full)
	assert.Equal(t, 100, snap.Percent)
	assert.True(t, snap.AllModulesCompleted)

	partial := completeAll(content)
	delete(partial, content.Modules[1].Slides[0].SlideID)
	snap = ComputeProgress(content, partial)
	assert.NotEqual(t, 100, snap.Percent)
	assert.False(t, snap.AllModulesCompleted)
}
