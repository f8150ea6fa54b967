package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	registerEvent  = "Register"
	registerMethod = "register"
)

// mailboxABI covers the part of the mailbox contract the client uses.
const mailboxABI = `[
  {
    "anonymous": false,
    "inputs": [{"indexed": true, "internalType": "address", "name": "addr", "type": "address"}],
    "name": "Register",
    "type": "event"
  },
  {
    "inputs": [],
    "name": "register",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

// parsedMailboxABI is parsed once at init; the JSON above is a constant.
var parsedMailboxABI = mustParseABI(mailboxABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
