package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/pairs/keeper"
	"github.com/paw-chain/pawswap/x/pairs/types"
)

func (suite *KeeperTestSuite) enableProtocolFee(pct uint64) sdk.AccAddress {
	treasury := keepertest.TestAddr("treasury")
	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, treasury))
	suite.Require().NoError(suite.keeper.SetProtocolFee(suite.ctx, suite.admin, pct))
	return treasury
}

func (suite *KeeperTestSuite) TestProtocolFeeAccrual() {
	suite.enableProtocolFee(types.MaxProtocolFeePercentage)
	pair := suite.setupPool(1_000_000)

	// 10000 in at 0.3% is a 30 fee, half of it for the protocol
	suite.swapIn(pair, suite.bob, tokenA, 10_000)
	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15, record.TotalFeeCollected0)
	suite.requireIntEqual(0, record.TotalFeeCollected1)

	suite.swapIn(pair, suite.bob, tokenB, 2_000)
	record, err = suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15, record.TotalFeeCollected0)
	suite.requireIntEqual(3, record.TotalFeeCollected1)

	stats, err := suite.keeper.GetPairStats(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15, stats.TotalFeeCollected0)
	// 10000 uatom plus 2000 upaw, counted in base units of either token
	suite.requireIntEqual(12_000, stats.Volume)
}

func (suite *KeeperTestSuite) TestProtocolFeeOffAccruesNothing() {
	pair := suite.setupPool(1_000_000)
	suite.swapIn(pair, suite.bob, tokenA, 10_000)

	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().True(record.TotalFeeCollected0.IsZero())
}

func (suite *KeeperTestSuite) TestCollectProtocolFees() {
	treasury := suite.enableProtocolFee(types.MaxProtocolFeePercentage)
	pair := suite.setupPool(1_000_000)
	suite.swapIn(pair, suite.bob, tokenA, 10_000)

	r0Before, _ := suite.reserves(pair)
	amount0, amount1, err := suite.keeper.CollectProtocolFees(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15, amount0)
	suite.requireIntEqual(0, amount1)
	suite.requireIntEqual(15, suite.balance(treasury, tokenA))

	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().True(record.TotalFeeCollected0.IsZero())
	suite.Require().Equal(r0Before.SubRaw(15).String(), record.Reserve0.String())
	suite.Require().Equal(suite.balance(pair, tokenA).String(), record.Reserve0.String())

	ev, found := suite.lastEvent(types.EventTypeProtocolFeePaid)
	suite.Require().True(found)
	suite.Require().Equal("15", eventAttr(ev, types.AttributeKeyAmount0))
	suite.Require().Equal(treasury.String(), eventAttr(ev, types.AttributeKeyFeeTo))

	// nothing left to collect
	amount0, _, err = suite.keeper.CollectProtocolFees(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().True(amount0.IsZero())
}

func (suite *KeeperTestSuite) TestCollectProtocolFeeErrors() {
	suite.enableProtocolFee(types.MaxProtocolFeePercentage)
	pair := suite.setupPool(1_000_000)

	_, _, err := suite.keeper.CollectProtocolFee(suite.ctx, suite.alice, pair)
	suite.Require().ErrorIs(err, types.ErrForbidden)

	_, _, err = suite.keeper.CollectProtocolFees(suite.ctx, suite.alice)
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, nil))
	_, _, err = suite.keeper.CollectProtocolFees(suite.ctx, pair)
	suite.Require().ErrorIs(err, types.ErrNoFeeRecipient)

	_, err = suite.keeper.CollectAllProtocolFees(suite.ctx)
	suite.Require().ErrorIs(err, types.ErrNoFeeRecipient)
}

func (suite *KeeperTestSuite) TestCollectAllProtocolFeesIsolatesFailures() {
	treasury := suite.enableProtocolFee(types.MaxProtocolFeePercentage)

	tokens := [][2]string{{"uaaa", "ubbb"}, {"uccc", "ufail"}, {"uddd", "ueee"}}
	pairs := make([]sdk.AccAddress, len(tokens))
	for i, tk := range tokens {
		pairs[i] = suite.createPair(tk[0], tk[1])
		suite.addLiquidity(pairs[i], suite.alice, 1_000_000, 1_000_000)
		suite.swapIn(pairs[i], suite.bob, tk[0], 10_000)
	}

	// token0 of the middle pair can no longer move
	suite.bank.FailTransfersOf("uccc")

	results, err := suite.keeper.CollectAllProtocolFees(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)

	suite.Require().True(results[0].Succeeded())
	suite.requireIntEqual(15, results[0].Amount0)
	suite.Require().False(results[1].Succeeded())
	suite.Require().ErrorIs(results[1].Err, types.ErrTransferFailed)
	suite.requireIntEqual(0, results[1].Amount0)
	suite.Require().True(results[2].Succeeded())
	suite.requireIntEqual(15, results[2].Amount0)

	for i, want := range pairs {
		suite.Require().Equal(want, results[i].Pair)
	}

	suite.requireIntEqual(15, suite.balance(treasury, "uaaa"))
	suite.requireIntEqual(0, suite.balance(treasury, "uccc"))
	suite.requireIntEqual(15, suite.balance(treasury, "uddd"))

	// the failed pair keeps its accrual for a later attempt
	record, err := suite.keeper.GetPairRecord(suite.ctx, pairs[1])
	suite.Require().NoError(err)
	suite.requireIntEqual(15, record.TotalFeeCollected0)
	suite.Require().False(suite.keeper.IsPairLocked(suite.ctx, pairs[1]))
}

func (suite *KeeperTestSuite) TestCollectAfterFullExit() {
	treasury := suite.enableProtocolFee(types.MaxProtocolFeePercentage)
	pair := suite.setupPool(1_000_000_000)

	// 1e7 in at 0.3% is a 30000 fee, half of it for the protocol
	suite.swapIn(pair, suite.bob, tokenA, 10_000_000)
	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15_000, record.TotalFeeCollected0)

	shares := suite.keeper.BalanceOf(suite.ctx, pair, suite.alice)
	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pair, suite.alice, pair, shares))
	_, _, err = suite.keeper.Burn(suite.ctx, pair, suite.alice)
	suite.Require().NoError(err)
	suite.Require().True(suite.balance(pair, tokenA).GTE(math.NewInt(15_000)))

	amount0, amount1, err := suite.keeper.CollectProtocolFees(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(15_000, amount0)
	suite.requireIntEqual(0, amount1)
	suite.requireIntEqual(15_000, suite.balance(treasury, tokenA))

	msg, broken := keeper.AllInvariants(*suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)
}

func (suite *KeeperTestSuite) TestCollectSettlesLiquidityFee() {
	treasury := suite.enableProtocolFee(types.MaxProtocolFeePercentage)
	pair := suite.setupPool(1_000_000)

	// reserves 1010000/990129: sqrt(k) grew 1000000 -> 1000015, so
	// 1000000*15 / (5*1000015 + 1000000) = 2 shares are owed
	suite.swapIn(pair, suite.bob, tokenA, 10_000)

	_, _, err := suite.keeper.CollectProtocolFees(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(2, suite.keeper.BalanceOf(suite.ctx, pair, treasury))

	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().Equal(record.Reserve0.Mul(record.Reserve1).String(), record.KLast.String())

	// no growth since the collection, so nothing more is minted
	suite.addLiquidity(pair, suite.alice, 10_000, 10_000)
	suite.requireIntEqual(2, suite.keeper.BalanceOf(suite.ctx, pair, treasury))
}
