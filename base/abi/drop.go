package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DropERC20ABI covers the claim-condition surface of drop-style contracts.
var DropERC20ABI abi.ABI

var dropERC20ABI = `[` +
	`{"type":"function","name":"getActiveClaimConditionId","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getClaimConditionById","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"conditionId"}],"outputs":[{"type":"tuple","name":"condition","components":` + claimConditionComponents + `}]},` +
	`{"type":"function","name":"claim","stateMutability":"payable","inputs":[` +
	`{"type":"address","name":"receiver"},` +
	`{"type":"uint256","name":"quantity"},` +
	`{"type":"address","name":"currency"},` +
	`{"type":"uint256","name":"pricePerToken"},` +
	`{"type":"tuple","name":"allowlistProof","components":` + allowlistProofComponents + `},` +
	`{"type":"bytes","name":"data"}` +
	`],"outputs":[]}` +
	`]`

const claimConditionComponents = `[` +
	`{"type":"uint256","name":"startTimestamp"},` +
	`{"type":"uint256","name":"maxClaimableSupply"},` +
	`{"type":"uint256","name":"supplyClaimed"},` +
	`{"type":"uint256","name":"quantityLimitPerWallet"},` +
	`{"type":"bytes32","name":"merkleRoot"},` +
	`{"type":"uint256","name":"pricePerToken"},` +
	`{"type":"address","name":"currency"},` +
	`{"type":"string","name":"metadata"}` +
	`]`

const allowlistProofComponents = `[` +
	`{"type":"bytes32[]","name":"proof"},` +
	`{"type":"uint256","name":"quantityLimitPerWallet"},` +
	`{"type":"uint256","name":"pricePerToken"},` +
	`{"type":"address","name":"currency"}` +
	`]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(dropERC20ABI))
	if err != nil {
		panic("Failed to parse drop erc20 abi")
	}
	DropERC20ABI = _abi
}
