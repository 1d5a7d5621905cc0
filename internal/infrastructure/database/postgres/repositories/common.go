package repositories

// scanner abstracts sql.Row and sql.Rows so row mapping is written once.
type scanner interface {
	Scan(dest ...interface{}) error
}

//Personal.AI order the ending
