package engine

import "github.com/efreitasn/deliexchange/internal/domain"

// restingOrder is a node in a price level's FIFO list. The node exclusively
// owns its order while it rests on the book.
type restingOrder struct {
	order domain.Order
	level *priceLevel
	prev  *restingOrder
	next  *restingOrder
}

// priceLevel is the FIFO queue of resting orders sharing one exact price.
// Arrival order is preserved, including under removal from the middle.
// All queue operations are O(1).
type priceLevel struct {
	price       int64
	head        *restingOrder
	tail        *restingOrder
	totalVolume int64
	orderCount  int
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price}
}

// pushBack appends an order at the back of the queue and returns its node.
func (l *priceLevel) pushBack(o domain.Order) *restingOrder {
	n := &restingOrder{order: o, level: l}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		n.prev = l.tail
		l.tail = n
	}
	l.totalVolume += o.Volume
	l.orderCount++
	return n
}

// front returns the oldest resting order at this level, or nil when empty.
func (l *priceLevel) front() *restingOrder {
	return l.head
}

// unlink removes a node from the queue. The relative order of the remaining
// orders is unchanged.
func (l *priceLevel) unlink(n *restingOrder) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	n.level = nil
	l.totalVolume -= n.order.Volume
	l.orderCount--
}

// reduce decrements the remaining volume of a resting order and the level's
// aggregate by the same amount.
func (l *priceLevel) reduce(n *restingOrder, volume int64) {
	n.order.Volume -= volume
	l.totalVolume -= volume
}

// empty reports whether no orders rest at this level.
func (l *priceLevel) empty() bool {
	return l.head == nil
}
