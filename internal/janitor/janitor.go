// Package janitor clears out demo-preview carts on a schedule. Demo
// carts are scratch state from template previews; nothing references
// them after the preview tab closes.
package janitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/storage"
)

type Janitor struct {
	store    storage.Store
	schedule string
	cron     *cron.Cron
}

// New creates a janitor with a cron schedule, e.g. "0 3 * * *" for a
// nightly purge.
func New(store storage.Store, schedule string) *Janitor {
	return &Janitor{store: store, schedule: schedule, cron: cron.New()}
}

func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.purgeDemoCarts)
	if err != nil {
		return fmt.Errorf("janitor: invalid schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	log.Info().Str("schedule", j.schedule).Msg("janitor: demo cart purge scheduled")
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) purgeDemoCarts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	keys, err := j.store.Keys(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("janitor: failed to list keys")
		return
	}

	purged := 0
	for _, key := range keys {
		if !strings.HasSuffix(key, cart.DemoSuffix) {
			continue
		}
		if err := j.store.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("cart_key", key).Msg("janitor: failed to delete demo cart")
			continue
		}
		purged++
	}

	if purged > 0 {
		log.Info().Int("purged", purged).Msg("janitor: removed stale demo carts")
	}
}
