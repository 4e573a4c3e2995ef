package mpool

import (
	"fmt"
)

// MemType is the allocation class of a pool. It does not change how the pool works,
// it tags the memory for trackers and logs.
type MemType int

const (
	// MemTypeUndefined untagged memory
	MemTypeUndefined MemType = iota
	// MemTypeDescriptors request and completion descriptors
	MemTypeDescriptors
	// MemTypeNetworkBuffers packet and bounce buffers
	MemTypeNetworkBuffers
	// MemTypeUserBuffers payload buffers lent to users
	MemTypeUserBuffers
	// MemTypeStatistics counters and statistics
	MemTypeStatistics
)

var memTypeNames = map[MemType]string{
	MemTypeUndefined:      "undefined",
	MemTypeDescriptors:    "descriptors",
	MemTypeNetworkBuffers: "network-buffers",
	MemTypeUserBuffers:    "user-buffers",
	MemTypeStatistics:     "statistics",
}

func (t MemType) String() string {
	if name, ok := memTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("memtype(%d)", int(t))
}
