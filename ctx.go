package kestrel

// CDTContext addresses one step of a path into a nested list/map structure.
// A sequence of contexts selects the location an operation applies to.
type CDTContext struct {
	id  int
	val Value
}

// Context selector ids. The low nibble distinguishes selectors, the 0x10/0x20
// prefix distinguishes list/map, and ctxFlagCreate may be OR'd into the last
// selector of a path when the operation requests implicit creation of missing
// nested structures.
const (
	ctxTypeListIndex = 0x10
	ctxTypeListRank  = 0x11
	ctxTypeListValue = 0x13
	ctxTypeMapIndex  = 0x20
	ctxTypeMapRank   = 0x21
	ctxTypeMapKey    = 0x22
	ctxTypeMapValue  = 0x23

	ctxFlagCreate = 0x40
)

// ctxWrapperMarker is the first element of the 3-element context wrapper
// array that prefixes a command packed with a non-empty context path.
const ctxWrapperMarker = 0xff

func CtxListIndex(index int) *CDTContext {
	return &CDTContext{ctxTypeListIndex, IntegerValue(index)}
}

func CtxListRank(rank int) *CDTContext {
	return &CDTContext{ctxTypeListRank, IntegerValue(rank)}
}

func CtxListValue(v Value) *CDTContext {
	return &CDTContext{ctxTypeListValue, v}
}

func CtxMapIndex(index int) *CDTContext {
	return &CDTContext{ctxTypeMapIndex, IntegerValue(index)}
}

func CtxMapRank(rank int) *CDTContext {
	return &CDTContext{ctxTypeMapRank, IntegerValue(rank)}
}

func CtxMapKey(key Value) *CDTContext {
	return &CDTContext{ctxTypeMapKey, key}
}

func CtxMapValue(v Value) *CDTContext {
	return &CDTContext{ctxTypeMapValue, v}
}

// packCDTCommand emits the plain command form: one array holding the command
// code followed by its arguments.
func packCDTCommand(pk *Packer, cmd int, args []Value) error {
	pk.PackArrayBegin(len(args) + 1)
	pk.PackInt64(int64(cmd))
	for _, arg := range args {
		if err := arg.Pack(pk); err != nil {
			return err
		}
	}
	return nil
}

// packCDTOperation emits a command addressed by a context path. With an empty
// path the bytes are identical to packCDTCommand. Otherwise the command is
// wrapped as [0xff, [id0, value0, ...], command]; when create is set the last
// selector id carries the create flag.
func packCDTOperation(pk *Packer, cmd int, ctx []*CDTContext, create bool, args []Value) error {
	if len(ctx) == 0 {
		return packCDTCommand(pk, cmd, args)
	}
	pk.PackArrayBegin(3)
	pk.PackInt64(ctxWrapperMarker)
	pk.PackArrayBegin(len(ctx) * 2)
	for i, c := range ctx {
		id := c.id
		if create && i == len(ctx)-1 {
			id |= ctxFlagCreate
		}
		pk.PackInt64(int64(id))
		if err := c.val.Pack(pk); err != nil {
			return err
		}
	}
	return packCDTCommand(pk, cmd, args)
}
