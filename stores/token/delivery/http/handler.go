package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/delivery"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
	"github.com/x-xyz/dropapi/domain/token"
	"github.com/x-xyz/dropapi/middleware"
)

type handler struct {
	uc     token.Usecase
	claims token.ClaimConditionResolver
	minter token.SignatureMinter
}

// New registers the token routes.
func New(e *echo.Echo, uc token.Usecase, claims token.ClaimConditionResolver, minter token.SignatureMinter) {
	h := &handler{
		uc:     uc,
		claims: claims,
		minter: minter,
	}
	g := e.Group("/token/:chainId/:address", middleware.IsValidAddress("address"))
	g.GET("/currency", h.getCurrency)
	g.GET("/total-supply", h.getTotalSupply)
	g.GET("/balance", h.getBalance)
	g.GET("/balance/:owner", h.getBalanceOf, middleware.IsValidAddress("owner"))
	g.GET("/allowance/:spender", h.getAllowance, middleware.IsValidAddress("spender"))
	g.GET("/allowance/:owner/:spender", h.getAllowanceOf, middleware.IsValidAddress("owner"), middleware.IsValidAddress("spender"))
	g.GET("/claim-condition", h.getClaimCondition)

	g.POST("/transfer", h.transfer)
	g.POST("/transfer-from", h.transferFrom)
	g.POST("/allowance", h.setAllowance)
	g.POST("/mint", h.mintTo)
	g.POST("/burn", h.burn)
	g.POST("/claim", h.claim)
	g.POST("/signature/generate", h.generateSignature)
	g.POST("/signature/verify", h.verifySignature)
	g.POST("/signature/mint", h.mintWithSignature)
}

func (h *handler) params(c echo.Context) (domain.ChainId, domain.Address, error) {
	chainId, err := strconv.ParseInt(c.Param("chainId"), 10, 32)
	if err != nil {
		return 0, "", domain.ErrBadParamInput
	}
	return domain.ChainId(chainId), domain.Address(c.Param("address")).ToLower(), nil
}

func (h *handler) getCurrency(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	cv, err := h.uc.Get(ctx, chainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getTotalSupply(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	cv, err := h.uc.TotalSupply(ctx, chainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	cv, err := h.uc.Balance(ctx, chainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getBalanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	owner := domain.Address(c.Param("owner"))
	cv, err := h.uc.BalanceOf(ctx, chainId, address, owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getAllowance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	spender := domain.Address(c.Param("spender"))
	cv, err := h.uc.Allowance(ctx, chainId, address, spender)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getAllowanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	owner := domain.Address(c.Param("owner"))
	spender := domain.Address(c.Param("spender"))
	cv, err := h.uc.AllowanceOf(ctx, chainId, address, owner, spender)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cv)
}

func (h *handler) getClaimCondition(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	cond, err := h.claims.GetActive(ctx, chainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cond)
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		To     domain.Address `json:"to" validate:"required,eth_addr_any_case"`
		Amount string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.uc.Transfer(ctx, chainId, address, p.To, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) transferFrom(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		From   domain.Address `json:"from" validate:"required,eth_addr_any_case"`
		To     domain.Address `json:"to" validate:"required,eth_addr_any_case"`
		Amount string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.uc.TransferFrom(ctx, chainId, address, p.From, p.To, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setAllowance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Spender domain.Address `json:"spender" validate:"required,eth_addr_any_case"`
		Amount  string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.uc.SetAllowance(ctx, chainId, address, p.Spender, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mintTo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		To     domain.Address `json:"to" validate:"required,eth_addr_any_case"`
		Amount string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.uc.MintTo(ctx, chainId, address, p.To, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// burn burns from the connected wallet, or from holder when given.
func (h *handler) burn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Holder domain.Address `json:"holder" validate:"omitempty,eth_addr_any_case"`
		Amount string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var res *domain.TransactionResult
	if p.Holder.IsEmpty() {
		res, err = h.uc.Burn(ctx, chainId, address, p.Amount)
	} else {
		res, err = h.uc.BurnFrom(ctx, chainId, address, p.Holder, p.Amount)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// claim claims to the connected wallet, or to the given receiver.
func (h *handler) claim(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		To     domain.Address `json:"to" validate:"omitempty,eth_addr_any_case"`
		Amount string         `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var res *domain.TransactionResult
	if p.To.IsEmpty() {
		res, err = h.uc.Claim(ctx, chainId, address, p.Amount)
	} else {
		res, err = h.uc.ClaimTo(ctx, chainId, address, p.To, p.Amount)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) generateSignature(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &mint.Payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.To.IsEmpty() || p.Quantity == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	fillPayloadDefaults(p)

	sp, err := h.minter.GenerateSignature(ctx, chainId, address, p, nil)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, sp)
}

func (h *handler) verifySignature(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	sp := &mint.SignedPayload{}
	if err := c.Bind(sp); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ok, err := h.minter.VerifySignature(ctx, chainId, address, sp)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ok)
}

func (h *handler) mintWithSignature(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	chainId, address, err := h.params(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	sp := &mint.SignedPayload{}
	if err := c.Bind(sp); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.minter.MintWithSignature(ctx, chainId, address, sp)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// fillPayloadDefaults backfills the optional voucher fields the same way a
// freshly built payload gets them.
func fillPayloadDefaults(p *mint.Payload) {
	defaults := mint.NewPayload(p.To, p.Quantity)
	if p.Price == "" {
		p.Price = defaults.Price
	}
	if p.CurrencyAddress.IsEmpty() {
		p.CurrencyAddress = defaults.CurrencyAddress
	}
	if p.PrimarySaleRecipient.IsEmpty() {
		p.PrimarySaleRecipient = defaults.PrimarySaleRecipient
	}
	if p.Uid == "" {
		p.Uid = defaults.Uid
	}
	if p.MintStartTime == 0 {
		p.MintStartTime = defaults.MintStartTime
	}
	if p.MintEndTime == 0 {
		p.MintEndTime = defaults.MintEndTime
	}
}
