package borrown

// invariant panics when an internal consistency check fails. A failure is a
// defect in this package, never a caller error, so there is nothing to recover.
func invariant(ok bool, msg string) {
	if !ok {
		panic("borrown: internal invariant violated: " + msg)
	}
}
