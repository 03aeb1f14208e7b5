// Package contract implements the token transport against live contracts
// through the chain read/write services.
package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/dropapi/base/abi"
	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
	"github.com/x-xyz/dropapi/service/chain"
)

type Erc20 struct {
	chainService chain.Client
	sender       chain.Sender
	erc20Abi     ethabi.ABI
	dropAbi      ethabi.ABI
}

func NewErc20(chainService chain.Client, sender chain.Sender) token.Transport {
	return &Erc20{
		chainService: chainService,
		sender:       sender,
		erc20Abi:     baseabi.ERC20TokenABI,
		dropAbi:      baseabi.DropERC20ABI,
	}
}

func (e *Erc20) Name(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (string, error) {
	unpacked, err := e.read(ctx, chainId, addr, "name")
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc20) Symbol(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (string, error) {
	unpacked, err := e.read(ctx, chainId, addr, "symbol")
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc20) Decimals(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (int32, error) {
	unpacked, err := e.read(ctx, chainId, addr, "decimals")
	if err != nil {
		return 0, err
	}
	return int32(unpacked[0].(uint8)), nil
}

func (e *Erc20) TotalSupply(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*big.Int, error) {
	unpacked, err := e.read(ctx, chainId, addr, "totalSupply")
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner domain.Address) (*big.Int, error) {
	unpacked, err := e.read(ctx, chainId, addr, "balanceOf", hexAddr(owner))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, spender domain.Address) (*big.Int, error) {
	unpacked, err := e.read(ctx, chainId, addr, "allowance", hexAddr(owner), hexAddr(spender))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) PrimarySaleRecipient(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (domain.Address, error) {
	unpacked, err := e.read(ctx, chainId, addr, "primarySaleRecipient")
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (e *Erc20) Transfer(ctx bCtx.Ctx, chainId domain.ChainId, addr, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "transfer", hexAddr(to), amount)
}

func (e *Erc20) TransferFrom(ctx bCtx.Ctx, chainId domain.ChainId, addr, from, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "transferFrom", hexAddr(from), hexAddr(to), amount)
}

func (e *Erc20) Approve(ctx bCtx.Ctx, chainId domain.ChainId, addr, spender domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "approve", hexAddr(spender), amount)
}

func (e *Erc20) MintTo(ctx bCtx.Ctx, chainId domain.ChainId, addr, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "mintTo", hexAddr(to), amount)
}

func (e *Erc20) Burn(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "burn", amount)
}

func (e *Erc20) BurnFrom(ctx bCtx.Ctx, chainId domain.ChainId, addr, holder domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, nil, "burnFrom", hexAddr(holder), amount)
}

func (e *Erc20) read(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, method string, params ...interface{}) ([]interface{}, error) {
	return e.chainService.Call(ctx, int32(chainId), hexAddr(addr), e.erc20Abi, method, params...)
}

func (e *Erc20) write(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, value *big.Int, method string, params ...interface{}) (*domain.TransactionResult, error) {
	return e.sender.Send(ctx, int32(chainId), hexAddr(addr), value, e.erc20Abi, method, params...)
}

func hexAddr(a domain.Address) common.Address {
	return common.HexToAddress(a.ToLowerStr())
}
