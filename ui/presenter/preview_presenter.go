package presenter

import (
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/fanim-go/ui/images"
)

// CompositeSource renders the visible layers.
type CompositeSource interface {
	Composite(background color.Color) *image.RGBA
}

// PreviewView shows the rendered canvas.
type PreviewView interface {
	UpdatePreview(img image.Image)
}

type previewTask struct {
	sequence   uint64
	maxW       int
	maxH       int
	background color.Color
}

type previewResult struct {
	sequence uint64
	img      image.Image
	duration time.Duration
}

// PreviewPresenter re-renders the canvas preview off the Tk thread whenever
// the host flushes. Only the newest request is kept; older pending renders
// are dropped.
type PreviewPresenter struct {
	Source     CompositeSource
	View       PreviewView
	Background color.Color
	MaxW, MaxH int
	logger     *slog.Logger

	dirty    atomic.Bool
	sequence atomic.Uint64
	shown    uint64

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan previewTask
	resultCh   chan previewResult
}

// NewPreviewPresenter returns a presenter rendering into at most maxW x maxH.
func NewPreviewPresenter(source CompositeSource, view PreviewView, background color.Color, maxW, maxH int, logger *slog.Logger) *PreviewPresenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &PreviewPresenter{
		Source:     source,
		View:       view,
		Background: background,
		MaxW:       maxW,
		MaxH:       maxH,
		logger:     logger,
		workCh:     make(chan previewTask, 1),
		resultCh:   make(chan previewResult, 1),
	}
	p.dirty.Store(true)
	return p
}

// MarkDirty requests a new render. It is safe to call from any goroutine
// and is meant to be registered as a host flush callback.
func (p *PreviewPresenter) MarkDirty() {
	if p != nil {
		p.dirty.Store(true)
	}
}

// SetBackground changes the color behind transparent pixels and requests a
// new render. Call it from the UI thread.
func (p *PreviewPresenter) SetBackground(c color.Color) {
	if p == nil {
		return
	}
	p.Background = c
	p.MarkDirty()
}

// ProcessFrame delivers finished renders to the view and schedules a new one
// when the canvas changed. Call it from the UI tick.
func (p *PreviewPresenter) ProcessFrame() {
	if p == nil || p.Source == nil || p.View == nil {
		return
	}
	p.ensureWorker()

	for drained := false; !drained; {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			drained = true
		}
	}

	if !p.dirty.Swap(false) {
		return
	}
	p.dispatch(previewTask{sequence: p.sequence.Add(1), maxW: p.MaxW, maxH: p.MaxH, background: p.Background})
}

// Close stops the render worker.
func (p *PreviewPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.workCh) })
}

func (p *PreviewPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *PreviewPresenter) runWorker() {
	for task := range p.workCh {
		res := p.render(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *PreviewPresenter) dispatch(task previewTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *PreviewPresenter) render(task previewTask) previewResult {
	start := time.Now()
	img := p.Source.Composite(task.background)
	var out image.Image = img
	if task.maxW > 0 && task.maxH > 0 {
		out = images.ScaleToFit(img, task.maxW, task.maxH)
	}
	return previewResult{sequence: task.sequence, img: out, duration: time.Since(start)}
}

func (p *PreviewPresenter) handleResult(res previewResult) {
	if res.sequence <= p.shown || res.img == nil {
		return
	}
	p.shown = res.sequence
	p.View.UpdatePreview(res.img)
	p.logger.Debug("preview rendered", "sequence", res.sequence, "duration", res.duration)
}
