package feed

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

func messageFor(kind Kind, postTitle string) string {
	switch kind {
	case KindComment:
		if postTitle == "" {
			return "commented on your post"
		}
		return fmt.Sprintf("commented on %q", postTitle)
	case KindCommentReply:
		return "replied to your comment"
	default:
		return "New Notification"
	}
}

func attribution(names []string, msg string) string {
	switch len(names) {
	case 0:
		return msg
	case 1:
		return fmt.Sprintf("%s %s", names[0], msg)
	case 2:
		return fmt.Sprintf("%s and %s %s", names[0], names[1], msg)
	default:
		return fmt.Sprintf("%s, %s, and %d others %s", names[0], names[1], len(names)-2, msg)
	}
}

// Render produces the final feed: one entry per group, most visible
// bucket first, most recent first within a bucket. The comment link is
// kept only when a single record contributed, otherwise the entry cannot
// point at one comment.
func Render(groups []*Group) []Entry {
	sorted := make([]*Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Bucket != sorted[j].Bucket {
			return sorted[i].Bucket > sorted[j].Bucket
		}
		return sorted[i].CreatedOn.After(sorted[j].CreatedOn)
	})

	entries := make([]Entry, 0, len(sorted))
	for _, g := range sorted {
		e := Entry{
			ID:          uuid.New(),
			PostID:      g.PostID,
			Message:     attribution(g.Names, messageFor(g.Kind, g.PostTitle)),
			TriggeredBy: g.Names,
			Status:      g.Status,
			CreatedOn:   g.CreatedOn,
		}
		if g.Contributors == 1 {
			e.CommentID = g.CommentID
		}
		entries = append(entries, e)
	}
	return entries
}

// Aggregate is the grouping and rendering pipeline in one call. The
// caller classifies purge candidates out and resolves actor names first.
func Aggregate(records []Record) []Entry {
	return Render(BuildGroups(records))
}
