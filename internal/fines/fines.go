// Package fines computes overdue days and the money owed for a late return.
package fines

import "time"

const day = 24 * time.Hour

// OverdueDays returns the number of started days between due and now.
// A partial day counts as a full day; now at or before due yields 0.
func OverdueDays(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	elapsed := now.Sub(due)
	days := elapsed / day
	if elapsed%day != 0 {
		days++
	}
	return int(days)
}

// Fine returns overdueDays x perDiem in currency minor units.
// Negative inputs are treated as zero.
func Fine(overdueDays int, perDiem int64) int64 {
	if overdueDays <= 0 || perDiem <= 0 {
		return 0
	}
	return int64(overdueDays) * perDiem
}

// Accrued is Fine(OverdueDays(due, now), perDiem).
func Accrued(due, now time.Time, perDiem int64) int64 {
	return Fine(OverdueDays(due, now), perDiem)
}
