package common

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(rand.New(rand.NewSource(time.Now().UnixNano())).Int63n(1023))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a cluster-safe int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}
