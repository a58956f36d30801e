package model

import (
	"testing"
	"time"
)

func TestNoticeVisibleAt(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name   string
		notice Notice
		want   bool
	}{
		{name: "active without window", notice: Notice{Active: true}, want: true},
		{name: "inactive", notice: Notice{Active: false}, want: false},
		{name: "not started", notice: Notice{Active: true, StartsAt: &after}, want: false},
		{name: "started", notice: Notice{Active: true, StartsAt: &before, EndsAt: &after}, want: true},
		{name: "ended", notice: Notice{Active: true, EndsAt: &before}, want: false},
		{name: "ends exactly now", notice: Notice{Active: true, EndsAt: &now}, want: false},
	}

	for _, tc := range tests {
		if got := tc.notice.VisibleAt(now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
