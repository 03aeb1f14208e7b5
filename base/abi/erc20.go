package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC20TokenABI covers the standard ERC20 surface plus the mintable /
// burnable / signature-mint extensions of drop-style token contracts.
var ERC20TokenABI abi.ABI

var erc20ABI = `[` +
	`{"type":"function","name":"name","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},` +
	`{"type":"function","name":"symbol","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},` +
	`{"type":"function","name":"decimals","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},` +
	`{"type":"function","name":"totalSupply","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"balanceOf","constant":true,"stateMutability":"view","inputs":[{"type":"address","name":"account"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"allowance","constant":true,"stateMutability":"view","inputs":[{"type":"address","name":"owner"},{"type":"address","name":"spender"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"amount"}],"outputs":[{"type":"bool"}]},` +
	`{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"amount"}],"outputs":[{"type":"bool"}]},` +
	`{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"type":"address","name":"spender"},{"type":"uint256","name":"amount"}],"outputs":[{"type":"bool"}]},` +
	`{"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"amount"}],"outputs":[]},` +
	`{"type":"function","name":"burn","stateMutability":"nonpayable","inputs":[{"type":"uint256","name":"amount"}],"outputs":[]},` +
	`{"type":"function","name":"burnFrom","stateMutability":"nonpayable","inputs":[{"type":"address","name":"account"},{"type":"uint256","name":"amount"}],"outputs":[]},` +
	`{"type":"function","name":"primarySaleRecipient","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},` +
	`{"type":"function","name":"verify","constant":true,"stateMutability":"view","inputs":[{"type":"tuple","name":"req","components":` + mintRequestComponents + `},{"type":"bytes","name":"signature"}],"outputs":[{"type":"bool"},{"type":"address"}]},` +
	`{"type":"function","name":"mintWithSignature","stateMutability":"payable","inputs":[{"type":"tuple","name":"req","components":` + mintRequestComponents + `},{"type":"bytes","name":"signature"}],"outputs":[]}` +
	`]`

// mintRequestComponents is the exact field name/type list of the signature
// mint voucher. Order and types are part of the wire contract.
const mintRequestComponents = `[` +
	`{"type":"address","name":"to"},` +
	`{"type":"address","name":"primarySaleRecipient"},` +
	`{"type":"uint256","name":"quantity"},` +
	`{"type":"uint256","name":"price"},` +
	`{"type":"address","name":"currency"},` +
	`{"type":"uint128","name":"validityStartTimestamp"},` +
	`{"type":"uint128","name":"validityEndTimestamp"},` +
	`{"type":"bytes32","name":"uid"}` +
	`]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic("Failed to parse erc20 abi")
	}
	ERC20TokenABI = _abi
}
