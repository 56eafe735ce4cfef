package statement

import "errors"

// Structural failures. Each aborts processing of the whole statement; row level
// problems are never reported through these.
var (
	ErrFileRead           = errors.New("error reading file, please try again")
	ErrDecoderUnavailable = errors.New("spreadsheet decoder is not available")
	ErrEmptySheet         = errors.New("spreadsheet has no rows")
	ErrHeaderNotFound     = errors.New("could not find the header row (containing 'Date')")
	ErrNoTransactions     = errors.New("could not parse transaction records")
	ErrNoValidSpends      = errors.New("no valid withdrawal/spend transactions found")
)
