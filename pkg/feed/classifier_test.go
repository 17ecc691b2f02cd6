package feed

import (
	"testing"
	"time"
)

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   Bucket
	}{
		{"unseen", StatusUnseen, BucketUnseen},
		{"seen once shares the unseen bucket", StatusSeenOnce, BucketUnseen},
		{"unread", StatusUnread, BucketUnread},
		{"read", StatusRead, BucketRead},
		{"unknown status falls back to read", Status("ARCHIVED"), BucketRead},
		{"empty status falls back to read", Status(""), BucketRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketOf(tt.status); got != tt.want {
				t.Errorf("BucketOf(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestPurgeEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-DefaultRetention)

	tests := []struct {
		name      string
		status    Status
		createdOn time.Time
		want      bool
	}{
		{"read and older than retention", StatusRead, cutoff.Add(-time.Hour), true},
		{"read exactly at the boundary is kept", StatusRead, cutoff, false},
		{"read one microsecond older is purged", StatusRead, cutoff.Add(-time.Microsecond), true},
		{"read one microsecond younger is kept", StatusRead, cutoff.Add(time.Microsecond), false},
		{"old but unread is never purged", StatusUnread, cutoff.Add(-time.Hour), false},
		{"old but unseen is never purged", StatusUnseen, cutoff.Add(-time.Hour), false},
		{"fresh read is kept", StatusRead, now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PurgeEligible(tt.status, tt.createdOn, now, DefaultRetention)
			if got != tt.want {
				t.Errorf("PurgeEligible(%q, %v) = %v, want %v", tt.status, tt.createdOn, got, tt.want)
			}
		})
	}
}

func TestPurgeEligibleCustomRetention(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	retention := 24 * time.Hour

	if !PurgeEligible(StatusRead, now.Add(-25*time.Hour), now, retention) {
		t.Error("row older than a 24h retention should be purge-eligible")
	}
	if PurgeEligible(StatusRead, now.Add(-23*time.Hour), now, retention) {
		t.Error("row younger than a 24h retention should be kept")
	}
}
