package kestrel

// CDT map sub-operation codes. Server contract; do not renumber.
const (
	cdtMapSetPolicy        = 64
	cdtMapPut              = 67
	cdtMapPutItems         = 68
	cdtMapIncrement        = 73
	cdtMapClear            = 75
	cdtMapRemoveByKey      = 76
	cdtMapRemoveByIndex    = 78
	cdtMapRemoveByRank     = 80
	cdtMapRemoveByKeyRange = 82
	cdtMapSize             = 96
	cdtMapGetByKey         = 97
	cdtMapGetByIndex       = 99
	cdtMapGetByRank        = 101
	cdtMapGetByKeyRange    = 103
	cdtMapGetByIndexRange  = 105
	cdtMapGetByRankRange   = 107
)

// MapReturnType selects what a read/remove map operation returns.
type MapReturnType int

const (
	MapReturnNone     MapReturnType = 0
	MapReturnIndex    MapReturnType = 1
	MapReturnRank     MapReturnType = 3
	MapReturnCount    MapReturnType = 5
	MapReturnKey      MapReturnType = 6
	MapReturnValue    MapReturnType = 7
	MapReturnKeyValue MapReturnType = 8
	MapReturnExists   MapReturnType = 13
)

// MapPolicy controls map write operations: the storage order applied when a
// write creates the map, and server-defined write flags.
type MapPolicy struct {
	Order MapOrder `yaml:"order"`
	Flags int      `yaml:"flags"`
}

// DefaultMapPolicy is an unordered map with no write flags.
func DefaultMapPolicy() *MapPolicy {
	return &MapPolicy{Order: MapUnordered}
}

// MapSetPolicyOp changes the storage order of an existing map bin.
func MapSetPolicyOp(policy *MapPolicy, bin string, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapSetPolicy, ctx, false, IntegerValue(policy.Order))
}

// MapPutOp writes a key/value entry into the map bin. Missing nested
// structures along the context path are created.
func MapPutOp(policy *MapPolicy, bin string, key, value any, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapPut, ctx, true,
		NewValue(key), NewValue(value), IntegerValue(policy.Order), IntegerValue(policy.Flags))
}

// MapPutItemsOp writes several entries in one operation. The pairs must be
// supplied in key order.
func MapPutItemsOp(policy *MapPolicy, bin string, items []MapPair, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapPutItems, ctx, true,
		SortedMapValue(items), IntegerValue(policy.Order), IntegerValue(policy.Flags))
}

// MapIncrementOp adds delta to the numeric value stored under key.
func MapIncrementOp(policy *MapPolicy, bin string, key any, delta int64, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapIncrement, ctx, false,
		NewValue(key), IntegerValue(delta), IntegerValue(policy.Order))
}

// MapClearOp removes all entries.
func MapClearOp(bin string, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapClear, ctx, false)
}

// MapSizeOp returns the entry count of the map bin.
func MapSizeOp(bin string, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtMapSize, ctx, false)
}

// MapGetByKeyOp reads the entry stored under key.
func MapGetByKeyOp(bin string, key any, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtMapGetByKey, ctx, false, IntegerValue(rt), NewValue(key))
}

// MapGetByKeyRangeOp reads entries with keyBegin <= key < keyEnd. Use
// InfinityValue for an unbounded end of the range.
func MapGetByKeyRangeOp(bin string, keyBegin, keyEnd Value, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtMapGetByKeyRange, ctx, false, IntegerValue(rt), keyBegin, keyEnd)
}

// MapGetByIndexRangeOp reads count entries starting at index.
func MapGetByIndexRangeOp(bin string, index, count int, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtMapGetByIndexRange, ctx, false, IntegerValue(rt), IntegerValue(index), IntegerValue(count))
}

// MapGetByRankRangeOp reads count entries starting at the given rank.
func MapGetByRankRangeOp(bin string, rank, count int, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTRead, bin, cdtMapGetByRankRange, ctx, false, IntegerValue(rt), IntegerValue(rank), IntegerValue(count))
}

// MapRemoveByKeyOp removes the entry stored under key.
func MapRemoveByKeyOp(bin string, key any, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapRemoveByKey, ctx, false, IntegerValue(rt), NewValue(key))
}

// MapRemoveByIndexOp removes the entry at index.
func MapRemoveByIndexOp(bin string, index int, rt MapReturnType, ctx ...*CDTContext) (*Operation, error) {
	return newCDTOperation(OpCDTModify, bin, cdtMapRemoveByIndex, ctx, false, IntegerValue(rt), IntegerValue(index))
}
