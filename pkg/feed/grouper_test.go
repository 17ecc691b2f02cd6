package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func record(postID uuid.UUID, name string, status Status, createdOn time.Time) Record {
	commentID := uuid.New()
	return Record{
		ID:        uuid.New(),
		PostID:    postID,
		CommentID: &commentID,
		ActorName: name,
		Kind:      KindComment,
		Status:    status,
		CreatedOn: createdOn,
	}
}

func TestBuildGroupsCollapsesSamePost(t *testing.T) {
	postID := uuid.New()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	// A comments (UNSEEN, t1), B comments (UNSEEN, t2), A comments again
	// (SEEN_ONCE, t3): one group, promoted back to UNSEEN, A not
	// duplicated, latest timestamp wins.
	groups := BuildGroups([]Record{
		record(postID, "Alice Moreau#0417", StatusUnseen, t1),
		record(postID, "Bob Tanaka#2280", StatusUnseen, t2),
		record(postID, "Alice Moreau#0417", StatusSeenOnce, t3),
	})

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]

	if g.Status != StatusUnseen {
		t.Errorf("Status = %q, want UNSEEN (never downgraded)", g.Status)
	}
	if len(g.Names) != 2 || g.Names[0] != "Alice Moreau#0417" || g.Names[1] != "Bob Tanaka#2280" {
		t.Errorf("Names = %v, want [Alice Moreau#0417 Bob Tanaka#2280]", g.Names)
	}
	if !g.CreatedOn.Equal(t3) {
		t.Errorf("CreatedOn = %v, want %v", g.CreatedOn, t3)
	}
	if g.Contributors != 3 {
		t.Errorf("Contributors = %d, want 3", g.Contributors)
	}
}

func TestBuildGroupsStatusPromotion(t *testing.T) {
	postID := uuid.New()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"seen-once then unseen promotes", []Status{StatusSeenOnce, StatusUnseen}, StatusUnseen},
		{"unseen then seen-once stays unseen", []Status{StatusUnseen, StatusSeenOnce}, StatusUnseen},
		{"all seen-once stays seen-once", []Status{StatusSeenOnce, StatusSeenOnce}, StatusSeenOnce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []Record
			for i, s := range tt.statuses {
				records = append(records, record(postID, "Same Actor#0001", s, base.Add(time.Duration(i)*time.Minute)))
			}
			groups := BuildGroups(records)
			if len(groups) != 1 {
				t.Fatalf("expected 1 group, got %d", len(groups))
			}
			if groups[0].Status != tt.want {
				t.Errorf("Status = %q, want %q", groups[0].Status, tt.want)
			}
		})
	}
}

func TestBuildGroupsSplitsByBucket(t *testing.T) {
	postID := uuid.New()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Same post in unseen, unread and read buckets: three groups, at
	// most one per bucket.
	groups := BuildGroups([]Record{
		record(postID, "A#1", StatusUnseen, base),
		record(postID, "B#2", StatusUnread, base.Add(time.Minute)),
		record(postID, "C#3", StatusRead, base.Add(2*time.Minute)),
		record(postID, "D#4", StatusUnread, base.Add(3*time.Minute)),
	})

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	perBucket := map[Bucket]int{}
	for _, g := range groups {
		perBucket[g.Bucket]++
	}
	for bucket, n := range perBucket {
		if n != 1 {
			t.Errorf("bucket %v has %d groups, want 1", bucket, n)
		}
	}
}

func TestBuildGroupsFirstContributorWinsCommentLink(t *testing.T) {
	postID := uuid.New()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	oldest := record(postID, "Alice#0417", StatusUnseen, t1)
	newer := record(postID, "Alice#0417", StatusUnseen, t1.Add(time.Hour))

	// Deliberately feed newest first; ascending sort must restore the
	// oldest record as the seed.
	groups := BuildGroups([]Record{newer, oldest})

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].CommentID == nil || *groups[0].CommentID != *oldest.CommentID {
		t.Errorf("CommentID = %v, want the oldest record's %v", groups[0].CommentID, *oldest.CommentID)
	}
}

func TestBuildGroupsIdempotent(t *testing.T) {
	postA := uuid.New()
	postB := uuid.New()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	records := []Record{
		record(postA, "A#1", StatusUnseen, base),
		record(postB, "B#2", StatusUnread, base.Add(time.Minute)),
		record(postA, "C#3", StatusUnseen, base.Add(2*time.Minute)),
	}

	first := BuildGroups(records)
	second := BuildGroups(records)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].PostID != second[i].PostID ||
			first[i].Status != second[i].Status ||
			first[i].Contributors != second[i].Contributors ||
			len(first[i].Names) != len(second[i].Names) {
			t.Errorf("group %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuildGroupsDoesNotMutateInput(t *testing.T) {
	postID := uuid.New()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	records := []Record{
		record(postID, "B#2", StatusUnseen, t1.Add(time.Hour)),
		record(postID, "A#1", StatusUnseen, t1),
	}

	BuildGroups(records)

	if !records[0].CreatedOn.Equal(t1.Add(time.Hour)) {
		t.Error("BuildGroups reordered the caller's slice")
	}
}
