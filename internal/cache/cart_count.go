package cache

import (
	"context"
	"fmt"
	"time"
)

const cartCountCacheTTL = 5 * time.Minute

// CartCountSnapshot 购物车数量快照
// 仅用于服务端 Redis 缓存，避免每次徽标请求都回源数据库
type CartCountSnapshot struct {
	UserID    uint  `json:"user_id"`
	Count     int64 `json:"count"`
	UpdatedAt int64 `json:"updated_at"`
}

func cartCountKey(userID uint) string {
	return fmt.Sprintf("cart:count:%d", userID)
}

// GetCartCount 读取购物车数量快照
func GetCartCount(ctx context.Context, userID uint) (*CartCountSnapshot, bool) {
	if !Enabled() || userID == 0 {
		return nil, false
	}
	var snapshot CartCountSnapshot
	found, err := GetJSON(ctx, cartCountKey(userID), &snapshot)
	if err != nil || !found {
		return nil, false
	}
	return &snapshot, true
}

// SetCartCount 写入购物车数量快照
func SetCartCount(ctx context.Context, userID uint, count int64) {
	if !Enabled() || userID == 0 {
		return
	}
	snapshot := CartCountSnapshot{
		UserID:    userID,
		Count:     count,
		UpdatedAt: time.Now().Unix(),
	}
	_ = SetJSON(ctx, cartCountKey(userID), snapshot, cartCountCacheTTL)
}

// InvalidateCartCount 删除购物车数量快照（购物车变更后调用）
func InvalidateCartCount(ctx context.Context, userID uint) {
	if !Enabled() || userID == 0 {
		return
	}
	_ = Del(ctx, cartCountKey(userID))
}
