// internal/cookie/time_test.go
//
// The helpers are now-relative, so every assertion allows a small
// tolerance for test-clock drift.

package cookie

import (
	"testing"
	"time"
)

func TestTimeHelpers(t *testing.T) {
	cases := []struct {
		name string
		got  int64
		want int64
	}{
		{"Seconds(30)", Seconds(30), 30},
		{"Minutes(1)", Minutes(1), 60},
		{"Hours(1)", Hours(1), 3600},
		{"Days(1)", Days(1), 86400},
		{"Weeks(2)", Weeks(2), 2 * 604800},
		{"Months(1)", Months(1), 30 * 86400},
		{"Years(1)", Years(1), 365 * 86400},
	}

	now := time.Now().Unix()
	for _, c := range cases {
		offset := c.got - now
		if diff := offset - c.want; diff < -2 || diff > 2 {
			t.Fatalf("%s offset = %d, want %d (±2)", c.name, offset, c.want)
		}
	}
}
