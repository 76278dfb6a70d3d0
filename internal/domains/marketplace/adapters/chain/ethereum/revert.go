package ethereum

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertError reports a call the contract rejected.
type RevertError struct {
	Contract string
	Method   string
	Reason   string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s.%s reverted", e.Contract, e.Method)
	}
	return fmt.Sprintf("%s.%s reverted: %s", e.Contract, e.Method, e.Reason)
}

// asRevert extracts a revert from a node error carrying revert data.
func asRevert(contract, method string, err error) (*RevertError, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	return &RevertError{Contract: contract, Method: method, Reason: revertReason(dataErr.ErrorData())}, true
}

func revertReason(data interface{}) string {
	encoded, ok := data.(string)
	if !ok {
		return ""
	}
	raw, err := hexutil.Decode(encoded)
	if err != nil {
		return ""
	}
	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		return ""
	}
	return reason
}
