package models

// Chunk is a contiguous slice of a table's data rows paired with its header.
type Chunk struct {
	// Index is the 1-based sequence number of the chunk.
	Index int `json:"index"`
	// Header is shared by every chunk of a table.
	Header []string `json:"header"`
	// Rows holds at most the configured number of rows, in source order.
	Rows []Row `json:"-"`
}

// Len returns the number of data rows in the chunk.
func (c Chunk) Len() int {
	return len(c.Rows)
}
