package types

import "strconv"

// EntryID uniquely identifies an entry within one vault.
type EntryID int64

// String returns the decimal form of the identifier.
func (id EntryID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseEntryID parses the decimal form produced by String.
func ParseEntryID(s string) (EntryID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return EntryID(n), nil
}
