package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/soundshelf/core"
)

// Key prefixes for different data types
const (
	resourceRecordPrefix = "resrec"
	resourceDatePrefix   = "resrecd"
	resourceIDSeq        = "resrecseq"
	blobRecordPrefix     = "blobrec"
)

// makeResourceKey generates a key for a resource by ID.
func makeResourceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", resourceRecordPrefix, id))
}

// makeResourceDateKey generates a composite key for the recency index.
// Format: prefix:timestamp:id
func makeResourceDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := resourceDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialResourceDateKey generates a partial key for recency seeks.
// Format: prefix:timestamp
func makePartialResourceDateKey(timestamp time.Time) []byte {
	prefix := resourceDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeBlobKey generates a key for a blob by its content ID.
func makeBlobKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", blobRecordPrefix, id))
}
