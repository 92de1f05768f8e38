package uid

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates 63-bit ids from a per-process node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator. A negative nodeID derives one from the
// hostname so replicas rarely collide.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		nodeID = hostNode()
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func hostNode() int64 {
	host, err := os.Hostname()
	if err != nil {
		return 0
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return int64(h.Sum32() % (1 << snowflake.NodeBits))
}

// Generate returns the next id.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
