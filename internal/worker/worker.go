package worker

import (
	"context"

	"camperwatch/internal/cities"
	"camperwatch/internal/heartbeat"
	"camperwatch/internal/notify"
	"camperwatch/internal/offer"
	"camperwatch/internal/seenstore"
	sentryutil "camperwatch/internal/sentry"
	"camperwatch/logger"
	apperrors "camperwatch/pkg/errors"
)

// ListingFetcher retrieves the current upstream offers
type ListingFetcher interface {
	Fetch() ([]offer.Offer, error)
}

// Worker performs one complete batch pass: fetch, filter, prune,
// notify, persist. Each run is stateless beyond the two state files.
type Worker struct {
	fetcher    ListingFetcher
	store      seenstore.Store
	dispatcher *notify.Dispatcher
	tracker    *heartbeat.Tracker
	cities     []string
	log        *logger.Logger
}

// New creates a worker. cityFilters is the resolved filter list
// (command-line override or configured default); empty means no
// filtering.
func New(
	fetcher ListingFetcher,
	store seenstore.Store,
	dispatcher *notify.Dispatcher,
	tracker *heartbeat.Tracker,
	cityFilters []string,
) *Worker {
	return &Worker{
		fetcher:    fetcher,
		store:      store,
		dispatcher: dispatcher,
		tracker:    tracker,
		cities:     cityFilters,
		log:        logger.ForWorker(),
	}
}

// Run executes one batch pass and returns the process exit code:
// 0 on normal completion (including zero matches after filtering),
// 1 when the fetch fails or yields zero offers.
func (w *Worker) Run(ctx context.Context) int {
	offers, err := w.fetcher.Fetch()
	if err != nil {
		w.log.Error().Err(err).Msg("Fetching offers failed")
		sentryutil.CaptureError(err, map[string]string{"component": "fetcher"})
		w.notifyError(ctx, "Error fetching offers: "+err.Error())
		return 1
	}

	// Zero parsed rows is treated as a scraping break, not a valid empty
	// listing. See DESIGN.md for the open question on legitimately empty days.
	if len(offers) == 0 {
		msg := "No offers found. The page structure may have changed."
		w.log.Error().Msg(msg)
		sentryutil.CaptureError(apperrors.NewFetch("worker", msg, nil),
			map[string]string{"component": "fetcher"})
		w.notifyError(ctx, msg)
		return 1
	}

	filtered := offers
	if len(w.cities) > 0 {
		filtered = cities.Filter(offers, w.cities)
	}
	w.log.Info().
		Int("total", len(offers)).
		Int("matched", len(filtered)).
		Strs("cities", w.cities).
		Msg("Fetched offers")

	seen, err := w.store.Load()
	if err != nil {
		w.log.Warn().Err(err).Msg("Could not load seen state, treating every offer as new")
	}

	// Prune against the full fetched id set, independent of filtering
	if removed := seenstore.Prune(seen, offer.IDs(offers)); len(removed) > 0 {
		w.log.Info().Strs("removed", removed).Msg("Pruned stale offers from seen set")
		if err := w.store.Save(seen); err != nil {
			w.log.Warn().Err(err).Msg("Could not persist pruned seen set")
		}
	}

	for _, o := range filtered {
		_, wasSeen := seen[o.ID]
		w.log.Info().
			Str("offer", o.ID).
			Str("origin", o.Origin).
			Str("arrival", o.Arrival).
			Bool("already_notified", wasSeen).
			Msg("Matched offer")
	}

	if w.dispatcher.Enabled() {
		w.checkHeartbeat(ctx)
		w.notifyNewOffers(ctx, filtered, seen)
	}

	if err := w.store.Save(seen); err != nil {
		w.log.Warn().Err(err).Msg("Could not persist seen set")
	}

	return 0
}

// notifyNewOffers sends every not-yet-seen offer to all chats and marks
// an offer seen only when every chat acknowledged it. Partial success
// leaves the offer unmarked so the next run retries all chats,
// accepting duplicate delivery where a chat already succeeded.
func (w *Worker) notifyNewOffers(ctx context.Context, filtered []offer.Offer, seen map[string]struct{}) {
	for _, o := range filtered {
		if o.ID == "" {
			continue
		}
		if _, ok := seen[o.ID]; ok {
			continue
		}

		results := w.dispatcher.SendToAll(ctx, notify.OfferText(o))
		okCount := notify.SuccessCount(results)

		if w.dispatcher.DeliveredToAll(results) {
			seen[o.ID] = struct{}{}
			w.log.Info().
				Str("offer", o.ID).
				Int("chats", okCount).
				Msg("Offer notified to all chats")
		} else {
			w.log.Warn().
				Str("offer", o.ID).
				Int("ok", okCount).
				Int("total", w.dispatcher.ChatCount()).
				Msg("Offer not marked seen, some notifications failed")
		}
	}
}

// checkHeartbeat runs the liveness state machine once per invocation.
// First-ever run seeds the record without sending; afterwards a message
// goes out only when the idle threshold has passed, and the record
// advances only if at least one chat took the message.
func (w *Worker) checkHeartbeat(ctx context.Context) {
	if w.tracker == nil {
		return
	}

	if _, ok := w.tracker.Last(); !ok {
		w.tracker.Touch()
		w.log.Debug().Msg("Heartbeat record seeded")
		return
	}

	if !w.tracker.Due() {
		return
	}

	w.log.Info().Msg("Idle threshold passed, sending liveness message")
	w.dispatcher.SendToAll(ctx, notify.AliveText)
}

// notifyError reports a fatal run error to the chats, best effort
func (w *Worker) notifyError(ctx context.Context, msg string) {
	if !w.dispatcher.Enabled() {
		return
	}
	w.dispatcher.SendToAll(ctx, notify.ErrorText(msg))
}
