package service

import (
	"sync"

	"spendtrack/models"
)

// subscriberBuffer 单个订阅者的帧缓冲大小，写满即丢帧
const subscriberBuffer = 16

// Notifier 新消费记录的实时推送中心
// 按用户维护订阅者集合，Publish 为 fire-and-forget：
// 没有订阅者、订阅者消费缓慢都不会阻塞或影响写入路径。
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan models.Expense]struct{}
}

// NewNotifier 创建推送中心
func NewNotifier() *Notifier {
	return &Notifier{
		subscribers: make(map[uint]map[chan models.Expense]struct{}),
	}
}

// Subscribe 订阅某用户的新消费记录，返回接收通道和取消函数
// 取消函数可重复调用，取消后通道被关闭
func (n *Notifier) Subscribe(userID uint) (<-chan models.Expense, func()) {
	ch := make(chan models.Expense, subscriberBuffer)

	n.mu.Lock()
	subs, ok := n.subscribers[userID]
	if !ok {
		subs = make(map[chan models.Expense]struct{})
		n.subscribers[userID] = subs
	}
	subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if subs, ok := n.subscribers[userID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(n.subscribers, userID)
				}
			}
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish 向某用户的所有在线客户端推送一条新消费记录
// 非阻塞发送，缓冲写满时直接丢弃该帧，不提供顺序和送达保证
func (n *Notifier) Publish(userID uint, expense models.Expense) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.subscribers[userID] {
		select {
		case ch <- expense:
		default:
			// 订阅者跟不上就丢帧
		}
	}
}

// SubscriberCount 某用户当前在线订阅数
func (n *Notifier) SubscriberCount(userID uint) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers[userID])
}
