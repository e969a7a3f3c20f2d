package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewSnowflakeID returns a snowflake id from the process-wide node, whose
// number comes from SNOWFLAKE_NODE (default 1). When the node cannot be
// created the id is a KSUID instead.
func NewSnowflakeID() string {
	nodeOnce.Do(func() {
		id, err := strconv.ParseInt(os.Getenv("SNOWFLAKE_NODE"), 10, 64)
		if err != nil {
			id = 1
		}
		node, _ = snowflake.NewNode(id)
	})
	if node == nil {
		return NewKSUID()
	}
	return node.Generate().String()
}

// NewSnowflakeIDWithNode generates an id on a throwaway node. Ids from two
// calls in the same millisecond collide, so use it for one-offs only.
func NewSnowflakeIDWithNode(nodeID int64) string {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return NewKSUID()
	}
	return n.Generate().String()
}
