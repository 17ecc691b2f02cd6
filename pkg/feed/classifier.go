package feed

import "time"

// DefaultRetention is how long READ rows are kept before they become
// purge candidates.
const DefaultRetention = 14 * 24 * time.Hour

// BucketOf bins a status into its visibility bucket. Unknown statuses
// land in the read bucket, the least visible one.
func BucketOf(s Status) Bucket {
	switch s {
	case StatusUnseen, StatusSeenOnce:
		return BucketUnseen
	case StatusUnread:
		return BucketUnread
	default:
		return BucketRead
	}
}

// priority orders statuses for promotion inside a group. A group's status
// is always the highest-priority status among its contributors.
func priority(s Status) int {
	switch s {
	case StatusUnseen:
		return 3
	case StatusSeenOnce:
		return 2
	case StatusUnread:
		return 1
	default:
		return 0
	}
}

// PurgeEligible reports whether a row should be deleted instead of
// rendered: READ and created strictly before now minus retention. A row
// created exactly at the boundary is kept.
func PurgeEligible(status Status, createdOn, now time.Time, retention time.Duration) bool {
	return status == StatusRead && createdOn.Before(now.Add(-retention))
}
