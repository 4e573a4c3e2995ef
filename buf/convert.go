package buf

import (
	"encoding/binary"
)

// Byte2Uint32 byte array to uint32 value using big order
func Byte2Uint32(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

// Uint32ToBytesTo uint32 value to bytes array using big order
func Uint32ToBytesTo(v uint32, ret []byte) {
	binary.BigEndian.PutUint32(ret, v)
}
