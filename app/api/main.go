package main

import (
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/log"
	bValidator "github.com/x-xyz/dropapi/base/validator"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
	mmiddleware "github.com/x-xyz/dropapi/middleware"
	"github.com/x-xyz/dropapi/service/bridge"
	currencycache "github.com/x-xyz/dropapi/service/cache/currency"
	"github.com/x-xyz/dropapi/service/chain"
	"github.com/x-xyz/dropapi/service/chain/contract"
	token_delivery "github.com/x-xyz/dropapi/stores/token/delivery/http"
	token_usecase "github.com/x-xyz/dropapi/stores/token/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// the transport mode is chosen once here and never per call
	var transport token.Transport
	var wallet domain.WalletContext
	if viper.IsSet("bridge.baseUrl") {
		context.Info("init bridge transport")
		bridgeClient := bridge.NewClient(&bridge.ClientCfg{
			HttpClient: http.Client{},
			BaseUrl:    viper.GetString("bridge.baseUrl"),
			Timeout:    viper.GetDuration("bridge.timeout"),
		})
		transport = bridge.NewTransport(bridgeClient)
		wallet = bridge.NewWallet(bridgeClient)
	} else {
		context.Info("init chain transport")
		networks := viper.Sub("networks")
		keys := networks.AllSettings()
		rpcs := make(map[int32]string)
		for k := range keys {
			chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
			rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
			rpcs[chainId] = rpcUrl
		}
		chainService, err := chain.NewClient(context, &chain.ClientCfg{RpcUrls: rpcs})
		if err != nil {
			context.WithField("err", err).Warn("chainService started with error")
		}
		sender, err := chain.NewSender(context, &chain.SenderCfg{
			RpcUrls:    rpcs,
			PrivateKey: viper.GetString("wallet.privateKey"),
		})
		if err != nil {
			panic(err)
		}
		transport = contract.NewErc20(chainService, sender)
		wallet = chain.NewStaticWallet(
			domain.Address(strings.ToLower(sender.From().Hex())),
			domain.ChainId(viper.GetInt32("wallet.chainId")),
		)
	}

	displayDecimals := viper.GetInt32("display.decimals")
	if displayDecimals == 0 {
		displayDecimals = 6
	}

	currencyResolver := token_usecase.NewCurrencyResolver(&token_usecase.CurrencyResolverCfg{
		Transport: transport,
		Cache: currencycache.NewCache(
			viper.GetInt("cache.sizeInMb"),
			viper.GetDuration("cache.currencyTtl"),
		),
	})
	claimResolver := token_usecase.NewClaimConditionResolver(&token_usecase.ClaimConditionResolverCfg{
		Transport:       transport,
		Currency:        currencyResolver,
		DisplayDecimals: displayDecimals,
	})

	var signingKey *ecdsa.PrivateKey
	if viper.IsSet("signer.privateKey") {
		key, err := crypto.HexToECDSA(viper.GetString("signer.privateKey"))
		if err != nil {
			panic(err)
		}
		signingKey = key
	}
	minter := token_usecase.NewSignatureMinter(&token_usecase.SignatureMinterCfg{
		Transport:  transport,
		SigningKey: signingKey,
	})

	tokenUC := token_usecase.NewTokenUsecase(&token_usecase.TokenUsecaseCfg{
		Transport:       transport,
		Wallet:          wallet,
		ClaimConditions: claimResolver,
		Currency:        currencyResolver,
		DisplayDecimals: displayDecimals,
	})

	token_delivery.New(e, tokenUC, claimResolver, minter)

	e.GET("/healthcheck", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
