package domain

// ValidationResult is Ok when Missing is empty. Table is always the table
// that was validated, so callers can still display it on mismatch.
type ValidationResult struct {
	Table   ResultTable
	Missing []string
}

func (v ValidationResult) OK() bool {
	return len(v.Missing) == 0
}

func (v ValidationResult) Err() error {
	if v.OK() {
		return nil
	}
	return &SchemaMismatchError{Missing: v.Missing}
}
