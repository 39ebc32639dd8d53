package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktuncer/wastewise/internal/models"
	"github.com/ktuncer/wastewise/internal/repositories"
)

type fakeUploader struct {
	mu    sync.Mutex
	calls int
	refs  []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, photos []Photo, day models.DayKey) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	refs := make([]string, len(photos))
	for i := range photos {
		refs[i] = fmt.Sprintf("https://bucket/photo-%d.jpg", i)
	}
	f.refs = refs
	return refs, nil
}

type fakeClassifier struct {
	mu      sync.Mutex
	days    []string
	urls    []string
	failFor map[string]error
}

func (f *fakeClassifier) Classify(ctx context.Context, imageURL string, day models.DayKey) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	f.days = append(f.days, day.String())
	f.urls = append(f.urls, imageURL)
	f.mu.Unlock()
	if err := f.failFor[imageURL]; err != nil {
		return nil, err
	}
	return []models.AnalysisRecord{{
		ID:           imageURL,
		ImageURL:     imageURL,
		FoodCategory: "ana-yemek",
		FoodType:     "kabak",
		IsWaste:      false,
		PhotoDay:     day.String(),
		CreatedAt:    time.Now(),
	}}, nil
}

func (f *fakeClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

func photos(n int) []Photo {
	out := make([]Photo, n)
	for i := range out {
		out[i] = Photo{Name: fmt.Sprintf("tray-%d.jpg", i), Data: []byte{0xff}}
	}
	return out
}

func newTestOrchestrator(uploader *fakeUploader, classifier *fakeClassifier) (*Orchestrator, *repositories.MemoryAnalysisRepository) {
	repo := repositories.NewMemoryAnalysisRepository()
	return New(uploader, classifier, repo, repo, nil), repo
}

func TestSubmitRejectsEmptyPhotoSet(t *testing.T) {
	uploader := &fakeUploader{}
	classifier := &fakeClassifier{}
	orch, _ := newTestOrchestrator(uploader, classifier)

	_, err := orch.Submit(context.Background(), nil, models.WeekdayKey(models.Pazartesi))
	assert.ErrorIs(t, err, ErrNoPhotos)
	assert.Equal(t, StateIdle, orch.State())
	assert.Zero(t, uploader.calls)
	assert.Zero(t, classifier.callCount())
}

func TestSubmitUploadFailureReturnsToIdle(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("bucket unreachable")}
	classifier := &fakeClassifier{}
	orch, repo := newTestOrchestrator(uploader, classifier)

	_, err := orch.Submit(context.Background(), photos(2), models.WeekdayKey(models.Sali))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "photo upload failed")
	assert.Equal(t, StateIdle, orch.State())
	// no classification call is issued after a failed upload
	assert.Zero(t, classifier.callCount())

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestSubmitClassifiesEveryUploadedPhoto(t *testing.T) {
	uploader := &fakeUploader{}
	classifier := &fakeClassifier{}
	orch, repo := newTestOrchestrator(uploader, classifier)

	day := models.WeekdayKey(models.Persembe)
	result, err := orch.Submit(context.Background(), photos(3), day)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, 3, classifier.callCount())
	require.Len(t, result.Outcomes, 3)
	assert.Zero(t, result.Failed())

	// every classification call carries the submitted day
	for _, tagged := range classifier.days {
		assert.Equal(t, "Perşembe", tagged)
	}

	count, _ := repo.Count(context.Background())
	assert.Equal(t, 3, count)
	assert.Len(t, result.Records, 3)
}

func TestSubmitSettlesDespitePerItemFailures(t *testing.T) {
	uploader := &fakeUploader{}
	classifier := &fakeClassifier{
		failFor: map[string]error{"https://bucket/photo-1.jpg": errors.New("model timeout")},
	}
	orch, repo := newTestOrchestrator(uploader, classifier)

	result, err := orch.Submit(context.Background(), photos(3), models.WeekdayKey(models.Cuma))
	require.NoError(t, err)

	assert.Equal(t, StateIdle, orch.State())
	assert.Equal(t, 3, classifier.callCount())
	assert.Equal(t, 1, result.Failed())

	// outcomes keep upload order, failures included
	require.Len(t, result.Outcomes, 3)
	assert.NoError(t, result.Outcomes[0].Err)
	assert.Error(t, result.Outcomes[1].Err)
	assert.NoError(t, result.Outcomes[2].Err)

	// only the settled successes are persisted
	count, _ := repo.Count(context.Background())
	assert.Equal(t, 2, count)
}

func TestSubmitRejectsConcurrentBatches(t *testing.T) {
	orch, _ := newTestOrchestrator(&fakeUploader{}, &fakeClassifier{})
	require.NoError(t, orch.begin())

	_, err := orch.Submit(context.Background(), photos(1), models.WeekdayKey(models.Pazartesi))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "uploading", StateUploading.String())
	assert.Equal(t, "uploaded", StateUploaded.String())
	assert.Equal(t, "analyzing", StateAnalyzing.String())
}
