package models

// PairKey holds the invariant parts of a conventioned filename.
// Two filenames refer to the same logical file iff their keys are equal;
// the version segment is deliberately not part of the key.
type PairKey struct {
	// IDGroup is the second underscore-delimited segment
	IDGroup string

	// DateStamp is the third underscore-delimited segment
	DateStamp string

	// Variant is the second-to-last underscore-delimited segment
	Variant string
}

// String returns the key in its on-disk segment form
func (k PairKey) String() string {
	return k.IDGroup + "_" + k.DateStamp + "_" + k.Variant
}

// FilePair is an ordered pair of matched files, one per directory.
// Each pair is compared independently; pairs share no state.
type FilePair struct {
	// Path1 is the file in the first directory
	Path1 string `json:"path1"`

	// Path2 is the matched file in the second directory
	Path2 string `json:"path2"`
}
