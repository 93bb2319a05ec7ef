/*
 Supplier and acceptor of input lines
*/

package strings_storage

import "strings"

// Supplier hands out the lines one by one, "" after the last one
type Supplier interface {
	String() string
	Len() int
}

type Storage struct {
	index   int
	strings []string
}

func NewStorage() *Storage {
	retVal := new(Storage)
	retVal.strings = make([]string, 0)
	return retVal
}

// FromText feeds a new storage with the trimmed lines of the text
func FromText(text string) *Storage {
	retVal := NewStorage()
	for _, line := range strings.Split(text, "\n") {
		retVal.Accept(strings.TrimSpace(line))
	}
	return retVal
}

// String returns the next string, "" when the storage is exhausted
func (storage *Storage) String() string {
	if len(storage.strings) == 0 || storage.index == len(storage.strings) {
		// no more strings in the storage
		return ""
	}
	index := storage.index
	storage.index++
	return storage.strings[index]
}

// empty strings are discarded
func (storage *Storage) Accept(s string) {
	if len(s) > 0 {
		storage.strings = append(storage.strings, s)
	}
}

func (storage *Storage) Len() int {
	return len(storage.strings)
}
