package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once

	errNodeIDOutOfRange   = errors.New("snowflake machine/datacenter id must be in [0, 31]")
	errGeneratorUninitial = errors.New("snowflake generator is not initialized")
)

// Init 组装节点号并初始化生成器，machineID 与 dataCenterID 各占 5 位
func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		if machineID < 0 || machineID > 31 || dataCenterID < 0 || dataCenterID > 31 {
			initErr = errNodeIDOutOfRange
			return
		}

		node, initErr = snowflake.NewNode((dataCenterID << 5) | machineID)
	})

	return initErr
}

// NextID 生成打卡记录、消息等实体的全局唯一 ID。
func NextID() (int64, error) {
	if node == nil {
		return 0, errGeneratorUninitial
	}

	return node.Generate().Int64(), nil
}
