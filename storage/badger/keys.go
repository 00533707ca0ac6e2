package badger

import (
	"encoding/binary"

	"github.com/poiesic/auctionlens/core"
)

const (
	matchPrefix       = "mtc:"
	matchNamespaceKey = "mtcns"
)

// makeMatchKey generates a composite key for a cached match.
// Format: prefix:namespace:titleID
func makeMatchKey(namespace, titleID core.ID) []byte {
	buf := make([]byte, len(matchPrefix)+16) // 8 bytes namespace + 8 bytes title ID
	offset := copy(buf, matchPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(namespace))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(titleID))
	return buf
}

// makeMatchNamespacePrefix generates the key prefix shared by every match in
// a namespace.
// Format: prefix:namespace
func makeMatchNamespacePrefix(namespace core.ID) []byte {
	buf := make([]byte, len(matchPrefix)+8)
	offset := copy(buf, matchPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(namespace))
	return buf
}
