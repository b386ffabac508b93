package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	SuccessText = "Reservation sent successfully ✅"
	FailureText = "Something went wrong ❌"

	bannerDuration = 5 * time.Second
)

// Kind selects the banner styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Banner is the page element that displays submission feedback.
type Banner interface {
	Show(text string, kind Kind)
	Hide()
}

// FormView is the form itself; it is cleared after a successful submission.
type FormView interface {
	Reset()
}

// Notifier shows a banner and hides it after five seconds. A new banner
// replaces the old one and restarts the countdown.
type Notifier struct {
	banner Banner
	clock  clockwork.Clock

	mu    sync.Mutex
	timer clockwork.Timer
	seq   uint64
}

func NewNotifier(banner Banner, clock clockwork.Clock) *Notifier {
	return &Notifier{banner: banner, clock: clock}
}

func (n *Notifier) Show(text string, kind Kind) {
	if n.banner == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.banner.Show(text, kind)
	n.timer = n.clock.AfterFunc(bannerDuration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if seq != n.seq {
			return
		}
		n.timer = nil
		n.banner.Hide()
	})
}

// Submitter ties the form, the API client and the banner together.
type Submitter struct {
	client   *Client
	notifier *Notifier
	form     FormView
	logger   *slog.Logger
}

func NewSubmitter(client *Client, notifier *Notifier, form FormView, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{client: client, notifier: notifier, form: form, logger: logger}
}

// Submit posts the form and reports the outcome. Both failure classes show
// the same banner.
func (s *Submitter) Submit(ctx context.Context, form Form) Outcome {
	outcome, err := s.client.Submit(ctx, form)
	if err != nil {
		s.logger.Error("reservation submit failed", "outcome", outcome.String(), "error", err)
	}

	if outcome == Success {
		s.notifier.Show(SuccessText, KindSuccess)
		if s.form != nil {
			s.form.Reset()
		}
		return outcome
	}
	s.notifier.Show(FailureText, KindError)
	return outcome
}
