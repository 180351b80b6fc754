package models

// FileDifference is the result of comparing two normalized line sets.
// Lines are reported by set membership only; their order does not follow
// file order.
type FileDifference struct {
	// OnlyInFirst holds lines present in the first file but not the second
	OnlyInFirst []string `json:"only_in_first"`

	// OnlyInSecond holds lines present in the second file but not the first
	OnlyInSecond []string `json:"only_in_second"`
}

// IsEmpty reports whether the comparison found no differing lines
func (d *FileDifference) IsEmpty() bool {
	return len(d.OnlyInFirst) == 0 && len(d.OnlyInSecond) == 0
}
