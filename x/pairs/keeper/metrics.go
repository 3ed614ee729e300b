package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	"github.com/hashicorp/go-metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// PairsMetrics holds all Prometheus metrics for the pairs module
type PairsMetrics struct {
	PairsCreated prometheus.Counter
	PairsTotal   prometheus.Gauge

	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	LiquidityMinted *prometheus.CounterVec
	LiquidityBurned *prometheus.CounterVec

	ProtocolFeeCollections *prometheus.CounterVec
	ReentrancyRejections   *prometheus.CounterVec
}

var (
	pairsMetricsOnce sync.Once
	pairsMetrics     *PairsMetrics
)

// NewPairsMetrics creates and registers pairs metrics (singleton pattern)
func NewPairsMetrics() *PairsMetrics {
	pairsMetricsOnce.Do(func() {
		pairsMetrics = &PairsMetrics{
			PairsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "pawswap",
				Subsystem: "pairs",
				Name:      "pairs_created_total",
				Help:      "Total number of pairs created",
			}),
			PairsTotal: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "pawswap",
				Subsystem: "pairs",
				Name:      "pairs",
				Help:      "Number of registered pairs",
			}),
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"pair", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pair"},
			),
			LiquidityMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "liquidity_minted_total",
					Help:      "Total liquidity shares minted",
				},
				[]string{"pair"},
			),
			LiquidityBurned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "liquidity_burned_total",
					Help:      "Total liquidity shares burned",
				},
				[]string{"pair"},
			),
			ProtocolFeeCollections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "protocol_fee_collections_total",
					Help:      "Protocol fee collections by outcome",
				},
				[]string{"status"},
			),
			ReentrancyRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pairs",
					Name:      "reentrancy_rejections_total",
					Help:      "Operations rejected because the pair was locked",
				},
				[]string{"operation"},
			),
		}
	})
	return pairsMetrics
}

// intToFloat converts an amount for metric reporting; precision loss is acceptable there.
func intToFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// recordSwapTelemetry mirrors a settled swap into the SDK telemetry sink.
func recordSwapTelemetry(pair string, amountIn math.Int) {
	labels := []metrics.Label{telemetry.NewLabel("pair", pair)}
	telemetry.IncrCounterWithLabels([]string{types.ModuleName, "swap"}, 1, labels)
	telemetry.IncrCounterWithLabels([]string{types.ModuleName, "swap", "volume"}, float32(intToFloat(amountIn)), labels)
}
