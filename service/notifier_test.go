package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/models"
)

func TestNotifier_PublishToSubscriber(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe(1)
	defer cancel()

	n.Publish(1, models.Expense{ID: 1, UserID: 1, Category: "餐饮", Amount: 12.5})

	select {
	case got := <-ch:
		assert.Equal(t, uint(1), got.ID)
		assert.Equal(t, "餐饮", got.Category)
	case <-time.After(time.Second):
		t.Fatal("没有收到推送")
	}
}

func TestNotifier_UserIsolation(t *testing.T) {
	n := NewNotifier()

	ch1, cancel1 := n.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := n.Subscribe(2)
	defer cancel2()

	n.Publish(1, models.Expense{ID: 1, UserID: 1})

	select {
	case got := <-ch1:
		assert.Equal(t, uint(1), got.ID)
	case <-time.After(time.Second):
		t.Fatal("用户 1 没有收到推送")
	}

	// 只推给本人
	select {
	case e := <-ch2:
		t.Fatalf("用户 2 不应收到推送: %+v", e)
	default:
	}
}

func TestNotifier_PublishWithoutSubscribers(t *testing.T) {
	n := NewNotifier()

	// 没有订阅者时不阻塞、不 panic
	n.Publish(1, models.Expense{ID: 1, UserID: 1})
	assert.Equal(t, 0, n.SubscriberCount(1))
}

func TestNotifier_DropWhenBufferFull(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe(1)
	defer cancel()

	// 缓冲写满后继续推送只会丢帧，不会阻塞
	for i := 0; i < subscriberBuffer+5; i++ {
		n.Publish(1, models.Expense{ID: uint(i + 1), UserID: 1})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, subscriberBuffer, received)
			return
		}
	}
}

func TestNotifier_CancelClosesChannel(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe(1)
	require.Equal(t, 1, n.SubscriberCount(1))

	cancel()
	// 取消函数可重复调用
	cancel()

	assert.Equal(t, 0, n.SubscriberCount(1))

	_, ok := <-ch
	assert.False(t, ok, "取消后通道应当已关闭")

	// 取消后的推送是空操作
	n.Publish(1, models.Expense{ID: 9, UserID: 1})
}
