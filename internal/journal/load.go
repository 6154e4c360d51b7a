package journal

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mindease/internal/models"
)

// Source is a display hint for where the loaded list mostly came from.
type Source string

const (
	SourceCloud Source = "cloud"
	SourceLocal Source = "local"
)

type LoadResult struct {
	Entries []models.JournalEntry
	Source  Source
}

// Load merges the cloud list for userID (nil for anonymous) with the device
// list. Store failures degrade to an empty side and are only logged.
func (r *Reconciler) Load(ctx context.Context, userID *string) LoadResult {
	var cloud, local []models.JournalEntry

	g, gctx := errgroup.WithContext(ctx)
	if userID != nil && r.cloud != nil {
		g.Go(func() error {
			list, err := r.cloud.ListByUser(gctx, *userID)
			if err != nil {
				r.log.Warn(gctx, "cloud journal unavailable", "error", err)
				return nil
			}
			cloud = list
			return nil
		})
	}
	g.Go(func() error {
		list, err := r.readLocal(gctx)
		if err != nil {
			r.log.Warn(gctx, "device journal unavailable", "error", err)
			return nil
		}
		local = list
		return nil
	})
	_ = g.Wait()

	return LoadResult{Entries: merge(local, cloud), Source: sourceOf(local, cloud)}
}

// merge concatenates local then cloud, keeps the first entry per id and sorts
// newest first. Equal timestamps keep their merged order.
func merge(local, cloud []models.JournalEntry) []models.JournalEntry {
	seen := make(map[string]bool, len(local)+len(cloud))
	out := make([]models.JournalEntry, 0, len(local)+len(cloud))
	for _, list := range [][]models.JournalEntry{local, cloud} {
		for _, e := range list {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.JournalEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func sourceOf(local, cloud []models.JournalEntry) Source {
	ids := make(map[string]bool, len(local))
	for _, e := range local {
		ids[e.ID] = true
	}
	for _, e := range cloud {
		if !ids[e.ID] {
			return SourceCloud
		}
	}
	return SourceLocal
}
