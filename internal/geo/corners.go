package geo

// CornerList holds ascending, unique indices into a ring, each naming a
// corner of that ring (§3). After Adjust (§4.4.4) has run, corners[0]==0
// and len(corners)>=2.
type CornerList []int

// Valid reports whether c is ascending and unique, which §3 requires at
// all times (the stronger postcondition — first element 0, at least two
// entries — only holds after adjustment).
func (c CornerList) Valid() bool {
	for i := 1; i < len(c); i++ {
		if c[i] <= c[i-1] {
			return false
		}
	}
	return true
}
