package uid

import (
	"crypto/sha256"
	"encoding/binary"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-sortable int64 IDs using a per-node sequence.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator with a node number derived from
// stable machine identity, so multiple instances do not collide.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber())
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new int64 ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() int64 {
	src := ""
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		src = strings.TrimSpace(string(b))
	}
	if src == "" {
		if h, err := os.Hostname(); err == nil {
			src = strings.TrimSpace(h)
		}
	}

	sum := sha256.Sum256([]byte(src))
	// snowflake node numbers are 10 bits (0-1023)
	return int64(binary.BigEndian.Uint16(sum[:2]) % 1024)
}
