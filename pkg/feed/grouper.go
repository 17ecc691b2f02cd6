package feed

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Group accumulates every record for one (bucket, post) pair. Names stay
// in first-seen order; the seed record is canonical for kind, comment
// link and post title.
type Group struct {
	Bucket       Bucket
	PostID       uuid.UUID
	CommentID    *uuid.UUID
	PostTitle    string
	Kind         Kind
	Status       Status
	Names        []string
	CreatedOn    time.Time
	Contributors int

	nameSet map[string]struct{}
}

type groupKey struct {
	bucket Bucket
	postID uuid.UUID
}

// BuildGroups collapses records into at most one group per (bucket, post).
// Records are processed oldest first so the first contributor for a given
// name is canonical: when exactly one record ends up in a group, the
// comment link points at the oldest comment, never a later duplicate.
func BuildGroups(records []Record) []*Group {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedOn.Before(sorted[j].CreatedOn)
	})

	groups := make(map[groupKey]*Group)
	var order []groupKey

	for _, r := range sorted {
		key := groupKey{bucket: BucketOf(r.Status), postID: r.PostID}

		g, ok := groups[key]
		if !ok {
			g = &Group{
				Bucket:    key.bucket,
				PostID:    r.PostID,
				CommentID: r.CommentID,
				PostTitle: r.PostTitle,
				Kind:      r.Kind,
				Status:    r.Status,
				CreatedOn: r.CreatedOn,
				Names:     []string{r.ActorName},
				nameSet:   map[string]struct{}{r.ActorName: {}},
			}
			g.Contributors = 1
			groups[key] = g
			order = append(order, key)
			continue
		}

		g.Contributors++
		if _, seen := g.nameSet[r.ActorName]; !seen {
			g.Names = append(g.Names, r.ActorName)
			g.nameSet[r.ActorName] = struct{}{}
		}
		if r.CreatedOn.After(g.CreatedOn) {
			g.CreatedOn = r.CreatedOn
		}
		// Never downgrade visibility: a fresh UNSEEN duplicate pulls a
		// SEEN_ONCE group back to UNSEEN.
		if priority(r.Status) > priority(g.Status) {
			g.Status = r.Status
		}
	}

	out := make([]*Group, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}
