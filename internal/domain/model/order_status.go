package model

import (
	"strings"
)

type OrderStatus string

const (
	OrderStatusPlaced          OrderStatus = "PLACED"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusProcessing      OrderStatus = "PROCESSING"
	OrderStatusPacking         OrderStatus = "PACKING"
	OrderStatusPacked          OrderStatus = "PACKED"
	OrderStatusShipped         OrderStatus = "SHIPPED"
	OrderStatusInTransit       OrderStatus = "IN_TRANSIT"
	OrderStatusOutForDelivery  OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered       OrderStatus = "DELIVERED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusCancelRequested OrderStatus = "CANCEL_REQUESTED"

	// 舊資料相容
	OrderStatusSuccess OrderStatus = "SUCCESS"
	OrderStatusPending OrderStatus = "PENDING"
)

// AllOrderStatuses 依流程順序排列
var AllOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusPacking,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusInTransit,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusCancelRequested,
	OrderStatusSuccess,
	OrderStatusPending,
}

func (s OrderStatus) IsValid() bool {
	for _, v := range AllOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus 轉大寫, '-' 與空白視為 '_'
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	s := OrderStatus(normalized)
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

type ActorRole string

const (
	ActorUser  ActorRole = "user"
	ActorAdmin ActorRole = "admin"
)

// 一般使用者只能取消或申請取消
var userAllowedTargets = []OrderStatus{
	OrderStatusCancelled,
	OrderStatusCancelRequested,
}

// TransitionTable role -> 目前狀態 -> 可轉移的狀態
type TransitionTable map[ActorRole]map[OrderStatus][]OrderStatus

var fallbackTargets = map[ActorRole][]OrderStatus{
	ActorUser:  userAllowedTargets,
	ActorAdmin: AllOrderStatuses,
}

// 管理者可以改成任何狀態, 不限制只能往前
var orderTransitions = buildTransitionTable()

func buildTransitionTable() TransitionTable {
	table := TransitionTable{
		ActorUser:  make(map[OrderStatus][]OrderStatus, len(AllOrderStatuses)),
		ActorAdmin: make(map[OrderStatus][]OrderStatus, len(AllOrderStatuses)),
	}
	for _, from := range AllOrderStatuses {
		table[ActorUser][from] = append([]OrderStatus(nil), userAllowedTargets...)
		table[ActorAdmin][from] = append([]OrderStatus(nil), AllOrderStatuses...)
	}
	return table
}

// OrderTransitions 回傳副本, 呼叫端修改不影響內部表
func OrderTransitions() TransitionTable {
	out := make(TransitionTable, len(orderTransitions))
	for role, byStatus := range orderTransitions {
		out[role] = make(map[OrderStatus][]OrderStatus, len(byStatus))
		for from, next := range byStatus {
			out[role][from] = append([]OrderStatus(nil), next...)
		}
	}
	return out
}

// AllowedTransitions 未知的 role 或狀態回傳 nil
func AllowedTransitions(role ActorRole, from OrderStatus) []OrderStatus {
	byStatus, ok := orderTransitions[role]
	if !ok {
		return nil
	}
	return append([]OrderStatus(nil), byStatus[from]...)
}

// 資料庫內不在列舉中的舊狀態, 依該 role 的預設目標判斷
func CanTransition(role ActorRole, from, to OrderStatus) bool {
	targets, ok := orderTransitions[role][from]
	if !ok {
		targets = fallbackTargets[role]
	}
	for _, next := range targets {
		if next == to {
			return true
		}
	}
	return false
}
