package kestrel

// OperationType classifies an operation for the command dispatcher.
type OperationType int

const (
	OpRead OperationType = iota
	OpWrite
	OpCDTRead
	OpCDTModify
)

// Operation is one packed sub-operation of a command: a bin name plus the
// wire-format payload the server executes against that bin.
type Operation struct {
	OpType  OperationType
	BinName string
	payload []byte
}

// Payload returns the packed operation body.
func (op *Operation) Payload() []byte {
	return op.payload
}

func newCDTOperation(t OperationType, bin string, cmd int, ctx []*CDTContext, create bool, args ...Value) (*Operation, error) {
	pk := NewPacker()
	if err := packCDTOperation(pk, cmd, ctx, create, args); err != nil {
		return nil, err
	}
	return &Operation{OpType: t, BinName: bin, payload: pk.Bytes()}, nil
}
