package kestrel

// CDT list sub-operation codes. Server contract; do not renumber.
const (
	cdtListSetOrder           = 0
	cdtListAppend             = 1
	cdtListAppendItems        = 2
	cdtListInsert             = 3
	cdtListInsertItems        = 4
	cdtListPop                = 5
	cdtListRemove             = 7
	cdtListRemoveRange        = 8
	cdtListSet                = 9
	cdtListTrim               = 10
	cdtListClear              = 11
	cdtListIncrement          = 12
	cdtListSort               = 13
	cdtListSize               = 16
	cdtListGet                = 17
	cdtListGetRange           = 18
	cdtListGetByIndex         = 19
	cdtListGetByRank          = 21
	cdtListGetByValue         = 22
	cdtListGetByIndexRange    = 24
	cdtListGetByRankRange     = 26
	cdtListRemoveByIndex      = 32
	cdtListRemoveByRank       = 34
	cdtListRemoveByIndexRange = 36
	cdtListRemoveByRankRange  = 38
	cdtListRemoveByValue      = 40
)

// ListOrder describes how a list stores its elements.
type ListOrder int

const (
	ListUnordered ListOrder = 0
	ListOrdered   ListOrder = 1
)

// ListReturnType selects what a read/remove list operation returns.
type ListReturnType int

const (
	ListReturnNone   ListReturnType = 0
	ListReturnIndex  ListReturnType = 1
	ListReturnRank   ListReturnType = 3
	ListReturnCount  ListReturnType = 5
	ListReturnValue  ListReturnType = 7
	ListReturnExists ListReturnType = 13
)

// ListAppendOp appends a value to the list bin, optionally inside a nested
// context. Missing nested structures along the path are created.
func ListAppendOp(bin string, v any, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListAppend, ctx, true, NewValue(v))
}

// ListAppendItemsOp appends several values in one operation.
func ListAppendItemsOp(bin string, items []any, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListAppendItems, ctx, true, ListValue(items))
}

// ListInsertOp inserts a value before the given index.
func ListInsertOp(bin string, index int, v any, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListInsert, ctx, true, IntegerValue(index), NewValue(v))
}

// ListSetOp replaces the value at the given index.
func ListSetOp(bin string, index int, v any, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListSet, ctx, false, IntegerValue(index), NewValue(v))
}

// ListIncrementOp adds delta to the numeric value at the given index.
func ListIncrementOp(bin string, index int, delta int64, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListIncrement, ctx, false, IntegerValue(index), IntegerValue(delta))
}

// ListSizeOp returns the element count of the list bin.
func ListSizeOp(bin string, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtListSize, ctx, false)
}

// ListClearOp removes all elements.
func ListClearOp(bin string, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListClear, ctx, false)
}

// ListSortOp sorts the list. flags is a server-defined sort flag bitmask.
func ListSortOp(bin string, flags int, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListSort, ctx, false, IntegerValue(flags))
}

// ListSetOrderOp switches the list's storage order.
func ListSetOrderOp(bin string, order ListOrder, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListSetOrder, ctx, false, IntegerValue(order))
}

// ListGetByIndexOp reads the element at index.
func ListGetByIndexOp(bin string, index int, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtListGetByIndex, ctx, false, IntegerValue(rt), IntegerValue(index))
}

// ListGetByIndexRangeOp reads count elements starting at index.
func ListGetByIndexRangeOp(bin string, index, count int, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtListGetByIndexRange, ctx, false, IntegerValue(rt), IntegerValue(index), IntegerValue(count))
}

// ListGetByRankRangeOp reads count elements starting at the given rank.
func ListGetByRankRangeOp(bin string, rank, count int, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtListGetByRankRange, ctx, false, IntegerValue(rt), IntegerValue(rank), IntegerValue(count))
}

// ListGetByValueOp reads all elements equal to v. Use WildCardValue to match
// any element.
func ListGetByValueOp(bin string, v Value, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtListGetByValue, ctx, false, IntegerValue(rt), v)
}

// ListRemoveByIndexOp removes the element at index.
func ListRemoveByIndexOp(bin string, index int, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListRemoveByIndex, ctx, false, IntegerValue(rt), IntegerValue(index))
}

// ListRemoveByIndexRangeOp removes count elements starting at index.
func ListRemoveByIndexRangeOp(bin string, index, count int, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListRemoveByIndexRange, ctx, false, IntegerValue(rt), IntegerValue(index), IntegerValue(count))
}

// ListRemoveByValueOp removes all elements equal to v.
func ListRemoveByValueOp(bin string, v Value, rt ListReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtListRemoveByValue, ctx, false, IntegerValue(rt), v)
}
