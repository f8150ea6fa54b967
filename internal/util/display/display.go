// Package display formats values for terminal output.
package display

import "github.com/ethereum/go-ethereum/common"

// PrettyPrintAddress shortens address to its first six characters, an
// ellipsis and its last four, e.g. "0xf39F…2266". Shorter inputs are not
// padded, so the head and tail may overlap.
func PrettyPrintAddress(address string) string {
	head := address[:min(6, len(address))]
	tail := address[max(0, len(address)-4):]
	return head + "…" + tail
}

// Address is PrettyPrintAddress over the checksummed form of addr.
func Address(addr common.Address) string {
	return PrettyPrintAddress(addr.Hex())
}
