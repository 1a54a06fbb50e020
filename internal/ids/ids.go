// Package ids hands out unique identifiers for invoices, clients and line items.
package ids

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

func defaultNode() *snowflake.Node {
	once.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			// Node 1 is always within range.
			panic(err)
		}
		node = n
	})
	return node
}

// Next returns a new identifier. Identifiers increase in creation order.
func Next() int64 {
	return defaultNode().Generate().Int64()
}

// NewString returns a new identifier in its decimal string form.
func NewString() string {
	return defaultNode().Generate().String()
}
