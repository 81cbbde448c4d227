package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/yamlmend/core"
)

// Key prefixes for different data types
const (
	recordPrefix        = "fmtrec"
	recordUpdatedPrefix = "fmtupd"
)

// makeRecordKey generates a key for a format record by ID.
func makeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", recordPrefix, id))
}

// makeUpdatedKey generates a composite key for the update-time index.
// Format: prefix:timestamp:id
func makeUpdatedKey(timestamp time.Time, id core.ID) []byte {
	prefixBytes := []byte(recordUpdatedPrefix + ":")
	buf := make([]byte, len(prefixBytes)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// updatedIndexEnd is a key greater than every update-time index key.
func updatedIndexEnd() []byte {
	return append([]byte(recordUpdatedPrefix+":"), 0xFF)
}
