package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ktuncer/wastewise/internal/analytics"
	"github.com/ktuncer/wastewise/internal/models"
)

// State is the orchestrator's position in the upload/analyze cycle.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateUploaded
	StateAnalyzing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateUploaded:
		return "uploaded"
	case StateAnalyzing:
		return "analyzing"
	}
	return "unknown"
}

// ErrNoPhotos rejects an empty submission before any transition.
var ErrNoPhotos = errors.New("at least one photo is required")

// ErrBusy rejects a submission while another batch is in flight.
var ErrBusy = errors.New("a photo batch is already being processed")

// Photo is one raw tray photo to upload.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader is the remote upload capability. It returns one reference
// URL per accepted photo or fails the batch as a whole.
type Uploader interface {
	Upload(ctx context.Context, photos []Photo, day models.DayKey) ([]string, error)
}

// Classifier is the remote classification capability. One call per
// uploaded photo reference; a photo may yield several records after
// the remote side crops the tray into dishes.
type Classifier interface {
	Classify(ctx context.Context, imageURL string, day models.DayKey) ([]models.AnalysisRecord, error)
}

// RecordStore persists classified records between classification and
// the aggregation refresh.
type RecordStore interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
}

// Publisher receives every persisted record, best effort.
type Publisher interface {
	PublishAnalysisRecord(record models.AnalysisRecord) error
}

// Outcome is the settled result of one photo's classification call.
// Callers decide policy for failures; the orchestrator neither retries
// nor rolls back sibling calls.
type Outcome struct {
	ImageURL string                  `json:"image_url"`
	Records  []models.AnalysisRecord `json:"records,omitempty"`
	Err      error                   `json:"-"`
}

// Result reports a finished batch: the upload references, the per-item
// outcomes, and the refreshed record set.
type Result struct {
	UploadedRefs []string                `json:"uploaded_refs"`
	Outcomes     []Outcome               `json:"outcomes"`
	Records      []models.AnalysisRecord `json:"records"`
}

// Failed counts the outcomes that settled with an error.
func (r *Result) Failed() int {
	failed := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed++
		}
	}
	return failed
}

// Orchestrator sequences upload, per-photo classification, and the
// aggregation refresh for one photo batch at a time.
type Orchestrator struct {
	mu    sync.Mutex
	state State

	uploader   Uploader
	classifier Classifier
	store      RecordStore
	source     analytics.RecordSource
	publisher  Publisher
}

// New wires the orchestrator. publisher may be nil.
func New(uploader Uploader, classifier Classifier, store RecordStore, source analytics.RecordSource, publisher Publisher) *Orchestrator {
	return &Orchestrator{
		state:      StateIdle,
		uploader:   uploader,
		classifier: classifier,
		store:      store,
		source:     source,
		publisher:  publisher,
	}
}

// State reports the current machine state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// begin claims the machine for a batch, failing when it is not idle.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return ErrBusy
	}
	o.state = StateUploading
	return nil
}

// Submit runs the full cycle for one batch. An empty photo set is
// rejected synchronously with no transition. An upload failure returns
// the machine to idle without issuing any classification call. Once
// uploaded, classification calls for the batch run concurrently and
// all settle before the record set is refreshed; individual failures
// surface in the per-item outcomes only.
func (o *Orchestrator) Submit(ctx context.Context, photos []Photo, day models.DayKey) (*Result, error) {
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}
	if err := o.begin(); err != nil {
		return nil, err
	}

	refs, err := o.uploader.Upload(ctx, photos, day)
	if err != nil {
		o.setState(StateIdle)
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}
	o.setState(StateUploaded)

	o.setState(StateAnalyzing)
	outcomes := make([]Outcome, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			records, err := o.classifier.Classify(ctx, ref, day)
			outcomes[i] = Outcome{ImageURL: ref, Records: records, Err: err}
		}(i, ref)
	}
	wg.Wait()

	for i := range outcomes {
		if outcomes[i].Err != nil {
			log.Printf("classification failed for %s: %v", outcomes[i].ImageURL, outcomes[i].Err)
			continue
		}
		for j := range outcomes[i].Records {
			record := outcomes[i].Records[j]
			if err := o.store.Create(ctx, &record); err != nil {
				outcomes[i].Err = fmt.Errorf("storing analysis record: %w", err)
				break
			}
			if o.publisher != nil {
				if err := o.publisher.PublishAnalysisRecord(record); err != nil {
					log.Printf("publishing analysis record %s: %v", record.ID, err)
				}
			}
		}
	}

	result := &Result{UploadedRefs: refs, Outcomes: outcomes}
	records, err := o.source.ListAnalysisRecords(ctx)
	o.setState(StateIdle)
	if err != nil {
		return result, fmt.Errorf("refreshing analysis records: %w", err)
	}
	result.Records = records
	return result, nil
}
