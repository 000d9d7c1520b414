// Package workspace holds the per-session state of the question page: the
// submitted form, the generated text, the loading flag and the PDF export.
package workspace

import (
	"context"
	"sync"
	"time"

	"questionai/internal/models"
	"questionai/internal/pdf"
	"questionai/internal/prompt"
	"questionai/internal/render"

	"github.com/sirupsen/logrus"
)

// Generator sends a prompt to a text generation service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Snapshot is a read-only copy of a workspace.
type Snapshot struct {
	ID        string           `json:"id"`
	Form      models.FormInput `json:"form"`
	Text      string           `json:"text"`
	Loading   bool             `json:"loading"`
	Submitted bool             `json:"submitted"`
	PDFState  pdf.State        `json:"pdfState"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// HasPDF reports whether a rendered document is available for download.
func (s Snapshot) HasPDF() bool {
	return s.Text != "" && s.PDFState == pdf.StateReady
}

// Workspace is the state owned by one page session. A new Submit cancels the
// run in flight; results of a superseded run are discarded.
type Workspace struct {
	id    string
	store *Store

	mu        sync.Mutex
	form      models.FormInput
	text      string
	loading   bool
	submitted bool
	seq       uint64
	cancel    context.CancelFunc
	done      chan struct{}
	pdfState  pdf.State
	pdfBytes  []byte
	updatedAt time.Time
	lastSeen  time.Time
}

// ID returns the session identifier.
func (w *Workspace) ID() string {
	return w.id
}

// Submit records the form and starts generation in the background.
func (w *Workspace) Submit(form models.FormInput) {
	if !w.store.begin() {
		w.store.log.WithField("workspace", w.id).Warn("store closed, submit ignored")
		return
	}
	ctx, cancel := w.store.runContext()
	done := make(chan struct{})

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.seq++
	seq := w.seq
	w.cancel = cancel
	w.done = done
	w.form = form
	w.text = ""
	w.loading = true
	w.submitted = true
	w.pdfState = pdf.StateIdle
	w.pdfBytes = nil
	w.updatedAt = w.store.now()
	w.mu.Unlock()

	go w.run(ctx, cancel, seq, form, done)
}

// Wait blocks until the latest run has finished or ctx is done.
func (w *Workspace) Wait(ctx context.Context) error {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		ID:        w.id,
		Form:      w.form,
		Text:      w.text,
		Loading:   w.loading,
		Submitted: w.submitted,
		PDFState:  w.pdfState,
		UpdatedAt: w.updatedAt,
	}
}

// PDF returns the rendered document of the current text, if ready.
func (w *Workspace) PDF() ([]byte, pdf.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pdfBytes, w.pdfState
}

func (w *Workspace) run(ctx context.Context, cancel context.CancelFunc, seq uint64, form models.FormInput, done chan struct{}) {
	defer w.store.wg.Done()
	defer close(done)
	defer cancel()

	log := w.store.log.WithFields(logrus.Fields{"workspace": w.id, "run": seq})
	log.WithFields(logrus.Fields{
		"type":  form.Type,
		"count": form.NumberOfQuestions,
		"topic": form.Topic,
		"level": form.Level,
	}).Info("generating questions")

	started := w.store.now()
	text, err := w.store.gen.Generate(ctx, prompt.Build(form))

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		log.Debug("discarding result of superseded run")
		return
	}
	if err != nil {
		log.WithError(err).Error("error fetching questions from the generation service")
		text = ""
	}
	w.text = text
	w.loading = false
	w.cancel = nil
	w.updatedAt = w.store.now()
	w.mu.Unlock()

	log.WithFields(logrus.Fields{
		"chars":    len(text),
		"duration": w.store.now().Sub(started).String(),
	}).Info("generation finished")

	if text != "" {
		w.renderPDF(log, seq, text)
	}
}

func (w *Workspace) renderPDF(log logrus.FieldLogger, seq uint64, text string) {
	data, err := pdf.RenderBytes(render.DisplayLines(text), pdf.WithStateFunc(func(s pdf.State) {
		// ready is published together with the bytes below
		if s != pdf.StateReady {
			w.setPDFState(seq, s)
		}
	}))
	if err != nil {
		log.WithError(err).Error("failed to render PDF")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.seq {
		return
	}
	w.pdfBytes = data
	w.pdfState = pdf.StateReady
	log.WithField("bytes", len(data)).Debug("PDF ready")
}

func (w *Workspace) setPDFState(seq uint64, s pdf.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq == w.seq {
		w.pdfState = s
	}
}

func (w *Workspace) idle(now time.Time, ttl time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.loading && now.Sub(w.lastSeen) > ttl
}
