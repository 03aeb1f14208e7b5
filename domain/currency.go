package domain

// Currency is a per-call snapshot of a token's display metadata. Staleness is
// acceptable to callers, so snapshots may be cached.
type Currency struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals int32   `json:"decimals"`
	ChainId  ChainId `json:"chainId"`
	Address  Address `json:"address"`
}

// CurrencyValue couples a base-unit integer amount with the currency it is
// denominated in. Value holds the exact integer, DisplayValue a truncated
// human rendering.
type CurrencyValue struct {
	Currency
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
}

// chainIdNativeCurrencyMap names the native token per supported chain.
// Unlisted chains fall back to Ether naming; native tokens are 18 decimals on
// every EVM chain.
var chainIdNativeCurrencyMap = map[ChainId]Currency{
	1:     {Name: "Ether", Symbol: "ETH", Decimals: 18},
	3:     {Name: "Ropsten Ether", Symbol: "ETH", Decimals: 18},
	5:     {Name: "Goerli Ether", Symbol: "ETH", Decimals: 18},
	56:    {Name: "Binance Coin", Symbol: "BNB", Decimals: 18},
	137:   {Name: "Matic", Symbol: "MATIC", Decimals: 18},
	250:   {Name: "Fantom", Symbol: "FTM", Decimals: 18},
	43114: {Name: "Avalanche", Symbol: "AVAX", Decimals: 18},
}

// NativeCurrency returns the native token snapshot for a chain.
func NativeCurrency(chainId ChainId) Currency {
	cur, ok := chainIdNativeCurrencyMap[chainId]
	if !ok {
		cur = Currency{Name: "Ether", Symbol: "ETH", Decimals: 18}
	}
	cur.ChainId = chainId
	cur.Address = NativeTokenAddress
	return cur
}
