package report

import (
	"time"

	"github.com/dkozlov/p2prates/exchange"
)

const (
	fiatRUB = "RUB"

	defaultMinAmount = 5000
	defaultInterval  = time.Minute * 5
)

// defaultAssets are the tracked P2P assets, in sheet row order
var defaultAssets = []string{"USDT", "BTC", "ETH"}

// bankPayMethods are the tracked payment methods, in sheet column order
var bankPayMethods = []string{
	exchange.PayTinkoff,
	exchange.PayRosbank,
	exchange.PayQIWI,
	exchange.PayYandexMoney,
	exchange.PayAlfaBank,
	exchange.PayPochtaBank,
	exchange.PayRaiffeisen,
}

// tableRanges addresses one P2P table block on the sheet
type tableRanges struct {
	updatedAt string // the "Updated at" stamp cells
	table     string // the best-price matrix cells
}

// p2pLayout is the fixed sheet layout of the P2P tables,
// keyed by lower-cased exchange name and trade direction
var p2pLayout = map[string]map[exchange.Side]tableRanges{
	"binance": {
		exchange.SideBuy:  {updatedAt: "B2:B3", table: "C5:I7"},
		exchange.SideSell: {updatedAt: "B9:B10", table: "C12:I14"},
	},
	"bybit": {
		exchange.SideBuy:  {updatedAt: "K2:K3", table: "L5:R7"},
		exchange.SideSell: {updatedAt: "K9:K10", table: "L12:R14"},
	},
	"garantex": {
		exchange.SideBuy:  {updatedAt: "AU2:AU3", table: "AV5:AV7"},
		exchange.SideSell: {updatedAt: "AU9:AU10", table: "AV12:AV14"},
	},
}

// marketExchanges and marketSymbols span the market data tables
var (
	marketExchanges = []string{"binance", "bybit", "garantex"}
	marketSymbols   = []string{"BTCUSDT", "ETHUSDT", "ETHBTC", "USDTETH", "USDTBTC", "BTCETH"}
)

// marketLayout is the fixed sheet layout of the market data cells,
// keyed by lower-cased exchange name and upper-cased symbol
var marketLayout = map[string]map[string]string{
	"binance": {
		"ETHUSDT": "C16",
		"BTCUSDT": "C17",
		"ETHBTC":  "E16",
		"USDTETH": "E17",
		"USDTBTC": "G16",
		"BTCETH":  "G17",
	},
	"bybit": {
		"ETHUSDT": "L16",
		"BTCUSDT": "L17",
		"ETHBTC":  "N16",
		"USDTETH": "N17",
		"USDTBTC": "P16",
		"BTCETH":  "P17",
	},
	"garantex": {
		"ETHUSDT": "AV16",
		"BTCUSDT": "AV17",
		"ETHBTC":  "AX16",
		"USDTETH": "AX17",
		"USDTBTC": "AZ16",
		"BTCETH":  "AZ17",
	},
}

// currentDatetime formats the "Updated at" stamp in sheet-local time
func currentDatetime(now time.Time) string {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		loc = time.FixedZone("MSK", 3*60*60)
	}

	return now.In(loc).Format("2006-01-02 15:04:05")
}
