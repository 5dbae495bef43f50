package site

import "time"

// Record mirrors one row in the persistent `site` table of a multisite
// network.  The operational state is captured by two nullable
// timestamps:
//
//   - SuspendedAt – site is temporarily disabled (e.g., billing).
//   - DeletedAt   – site is permanently removed.
//
// Either timestamp being non-NULL prevents the resolver from serving
// the site.
type Record struct {
	ID          uint64     `db:"id"`
	Host        string     `db:"host"`
	Path        string     `db:"path"`         // site path under the network root, "/" for root sites
	NetworkHost string     `db:"network_host"` // shared root domain for network cookies
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
