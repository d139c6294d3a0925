package balancer

import (
	"strconv"

	"github.com/segmentio/kafka-go"
)

type OrderEventBalancer struct {
	numPartitions int
}

func NewOrderEventBalancer(numPartitions int) *OrderEventBalancer {
	return &OrderEventBalancer{numPartitions: numPartitions}
}

// 購物車事件使用 userid 做 key，同用戶事件固定落在同一個 partition 保序
func (b *OrderEventBalancer) Balance(msg kafka.Message, partitions ...int) (partition int) {
	userID, err := strconv.Atoi(string(msg.Key))
	if err != nil {
		return 0
	}

	if len(partitions) != 0 {
		return partitions[userID%len(partitions)]
	}

	return userID % b.numPartitions
}
