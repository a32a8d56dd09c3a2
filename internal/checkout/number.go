package checkout

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// NumberGenerator produces order numbers. Snowflake ids embed a
// millisecond timestamp plus a per-node sequence counter, so two
// submissions landing in the same millisecond still get distinct
// numbers.
type NumberGenerator struct {
	prefix string
	node   *snowflake.Node
}

func NewNumberGenerator(prefix string, nodeID int64) (*NumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("checkout: failed to create snowflake node: %w", err)
	}
	return &NumberGenerator{prefix: prefix, node: node}, nil
}

func (g *NumberGenerator) Next() string {
	return fmt.Sprintf("%s-%s", g.prefix, g.node.Generate())
}
