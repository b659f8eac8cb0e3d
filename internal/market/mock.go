package market

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Alias1177/CoinCast/models"
)

type mockCoin struct {
	symbol    string
	name      string
	basePrice float64
}

var mockCoins = []mockCoin{
	{"btc", "Bitcoin", 43000},
	{"eth", "Ethereum", 2250},
	{"usdt", "Tether", 1.00},
	{"bnb", "BNB", 310},
	{"sol", "Solana", 98},
	{"xrp", "XRP", 0.62},
	{"usdc", "USD Coin", 1.00},
	{"ada", "Cardano", 0.58},
	{"avax", "Avalanche", 37},
	{"doge", "Dogecoin", 0.09},
	{"dot", "Polkadot", 7.2},
	{"matic", "Polygon", 0.89},
	{"link", "Chainlink", 14.5},
	{"trx", "TRON", 0.10},
	{"dai", "Dai", 1.00},
	{"ltc", "Litecoin", 72},
	{"uni", "Uniswap", 6.8},
	{"atom", "Cosmos", 10.2},
	{"etc", "Ethereum Classic", 20.5},
	{"xlm", "Stellar", 0.13},
}

// MockSource generates plausible snapshots around fixed base prices
type MockSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewMockSource creates a generator; the same seed yields the same sequence of lists
func NewMockSource(seed int64) *MockSource {
	return &MockSource{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Name implements models.SnapshotSource
func (m *MockSource) Name() string { return "mock" }

// TopByVolume returns up to limit generated snapshots, at most one per known coin
func (m *MockSource) TopByVolume(_ context.Context, limit int) ([]models.AssetSnapshot, error) {
	if limit > len(mockCoins) {
		limit = len(mockCoins)
	}
	if limit < 0 {
		limit = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	snapshots := make([]models.AssetSnapshot, 0, limit)
	for i, coin := range mockCoins[:limit] {
		// price within ±5% of base
		price := coin.basePrice * (1 + m.rnd.Float64()*0.1 - 0.05)
		change1h := m.rnd.Float64()*4 - 2

		snapshots = append(snapshots, models.AssetSnapshot{
			ID:                coin.symbol,
			Symbol:            strings.ToUpper(coin.symbol),
			Name:              coin.name,
			CurrentPrice:      price,
			High24h:           price * 1.05,
			Low24h:            price * 0.95,
			PriceChangePct24h: m.rnd.Float64()*20 - 10,
			PriceChangePct1h:  &change1h,
			Volume24h:         price * float64(100000-i*1000),
			MarketCap:         price * float64(1000000-i*10000),
			UpdatedAt:         now,
		})
	}
	return snapshots, nil
}
