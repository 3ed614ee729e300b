package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

func (suite *KeeperTestSuite) TestMintFirstDeposit() {
	pair := suite.createPair(tokenA, tokenB)
	liquidity := suite.addLiquidity(pair, suite.alice, 10_000, 10_000)

	suite.requireIntEqual(9_000, liquidity)
	suite.requireIntEqual(9_000, suite.keeper.BalanceOf(suite.ctx, pair, suite.alice))
	suite.requireIntEqual(types.MinimumLiquidity, suite.keeper.BalanceOf(suite.ctx, pair, types.BurnSinkAddress))

	supply, err := suite.keeper.TotalSupply(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(10_000, supply)

	r0, r1 := suite.reserves(pair)
	suite.requireIntEqual(10_000, r0)
	suite.requireIntEqual(10_000, r1)

	ev, found := suite.lastEvent(types.EventTypeMint)
	suite.Require().True(found)
	suite.Require().Equal("9000", eventAttr(ev, types.AttributeKeyLiquidity))
	suite.Require().Equal(suite.alice.String(), eventAttr(ev, types.AttributeKeyTo))
}

func (suite *KeeperTestSuite) TestMintFirstDepositTooSmall() {
	pair := suite.createPair(tokenA, tokenB)
	suite.deposit(pair, suite.alice, sdk.NewInt64Coin(tokenA, 500), sdk.NewInt64Coin(tokenB, 500))

	_, err := suite.keeper.Mint(suite.ctx, pair, suite.alice)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)

	supply, err := suite.keeper.TotalSupply(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().True(supply.IsZero())
	suite.Require().False(suite.keeper.IsPairLocked(suite.ctx, pair))
}

func (suite *KeeperTestSuite) TestMintProportional() {
	pair := suite.setupPool(10_000)

	// the smaller side sets the shares; the excess of token1 is donated
	liquidity := suite.addLiquidity(pair, suite.bob, 1_000, 2_000)
	suite.requireIntEqual(1_000, liquidity)

	supply, err := suite.keeper.TotalSupply(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(11_000, supply)

	r0, r1 := suite.reserves(pair)
	suite.requireIntEqual(11_000, r0)
	suite.requireIntEqual(12_000, r1)
}

func (suite *KeeperTestSuite) TestMintNothingDeposited() {
	pair := suite.setupPool(10_000)

	_, err := suite.keeper.Mint(suite.ctx, pair, suite.bob)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)

	_, err = suite.keeper.Mint(suite.ctx, pair, nil)
	suite.Require().ErrorIs(err, types.ErrZeroAddress)

	_, err = suite.keeper.Mint(suite.ctx, suite.bob, suite.bob)
	suite.Require().ErrorIs(err, types.ErrInvalidPair)
}

func (suite *KeeperTestSuite) TestMintOverflow() {
	pair := suite.createPair(tokenA, tokenB)
	suite.deposit(pair, suite.alice,
		sdk.NewCoin(tokenA, types.MaxReserve.AddRaw(1)),
		sdk.NewInt64Coin(tokenB, 10_000),
	)

	_, err := suite.keeper.Mint(suite.ctx, pair, suite.alice)
	suite.Require().ErrorIs(err, types.ErrOverflow)
}

func (suite *KeeperTestSuite) TestBurnPullThenBurn() {
	pair := suite.setupPool(10_000)

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pair, suite.alice, pair, math.NewInt(9_000)))
	suite.requireIntEqual(9_000, suite.keeper.BalanceOf(suite.ctx, pair, pair))

	amount0, amount1, err := suite.keeper.Burn(suite.ctx, pair, suite.alice)
	suite.Require().NoError(err)
	suite.requireIntEqual(9_000, amount0)
	suite.requireIntEqual(9_000, amount1)

	suite.requireIntEqual(9_000, suite.balance(suite.alice, tokenA))
	suite.requireIntEqual(9_000, suite.balance(suite.alice, tokenB))
	suite.requireIntEqual(0, suite.keeper.BalanceOf(suite.ctx, pair, pair))

	supply, err := suite.keeper.TotalSupply(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(types.MinimumLiquidity, supply)

	r0, r1 := suite.reserves(pair)
	suite.requireIntEqual(1_000, r0)
	suite.requireIntEqual(1_000, r1)

	ev, found := suite.lastEvent(types.EventTypeBurn)
	suite.Require().True(found)
	suite.Require().Equal("9000", eventAttr(ev, types.AttributeKeyLiquidity))
}

func (suite *KeeperTestSuite) TestBurnIncludesDonations() {
	pair := suite.setupPool(10_000)
	suite.deposit(pair, suite.bob, sdk.NewInt64Coin(tokenA, 1_000))

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pair, suite.alice, pair, math.NewInt(5_000)))
	amount0, amount1, err := suite.keeper.Burn(suite.ctx, pair, suite.alice)
	suite.Require().NoError(err)

	// burn pays out of balances, not reserves
	suite.requireIntEqual(5_500, amount0)
	suite.requireIntEqual(5_000, amount1)
}

func (suite *KeeperTestSuite) TestBurnWithoutShares() {
	pair := suite.setupPool(10_000)

	_, _, err := suite.keeper.Burn(suite.ctx, pair, suite.alice)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityBurned)

	_, _, err = suite.keeper.Burn(suite.ctx, pair, nil)
	suite.Require().ErrorIs(err, types.ErrZeroAddress)
}

func (suite *KeeperTestSuite) TestTransferShares() {
	pair := suite.setupPool(10_000)

	err := suite.keeper.TransferShares(suite.ctx, pair, suite.bob, suite.alice, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInsufficientShares)

	err = suite.keeper.TransferShares(suite.ctx, pair, suite.alice, nil, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrZeroAddress)

	err = suite.keeper.TransferShares(suite.ctx, suite.bob, suite.alice, suite.bob, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pair, suite.alice, suite.bob, math.NewInt(4_000)))
	suite.requireIntEqual(5_000, suite.keeper.BalanceOf(suite.ctx, pair, suite.alice))
	suite.requireIntEqual(4_000, suite.keeper.BalanceOf(suite.ctx, pair, suite.bob))

	ev, found := suite.lastEvent(types.EventTypeTransfer)
	suite.Require().True(found)
	suite.Require().Equal(suite.alice.String(), eventAttr(ev, types.AttributeKeyFrom))
	suite.Require().Equal(suite.bob.String(), eventAttr(ev, types.AttributeKeyTo))
	suite.Require().Equal("4000", eventAttr(ev, types.AttributeKeyAmount))
}

func (suite *KeeperTestSuite) TestProtocolFeeMintedOnGrowth() {
	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, suite.bob))
	suite.Require().NoError(suite.keeper.SetTradingFee(suite.ctx, suite.admin, types.MaxTradingFee))

	pair := suite.setupPool(10_000)
	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(100_000_000, record.KLast)

	// 5000 in at a 10% fee leaves reserves 15000/6897
	out := suite.swapIn(pair, suite.alice, tokenA, 5_000)
	suite.requireIntEqual(3_103, out)

	// sqrt(k) grew 10000 -> 10171; the fee recipient gets
	// 10000*171 / (5*10171 + 10000) = 28 shares on the next liquidity event
	suite.addLiquidity(pair, suite.alice, 1_500, 690)
	suite.requireIntEqual(28, suite.keeper.BalanceOf(suite.ctx, pair, suite.bob))

	record, err = suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().Equal(record.Reserve0.Mul(record.Reserve1).String(), record.KLast.String())
}

func (suite *KeeperTestSuite) TestKLastClearedWhenFeeOff() {
	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, suite.bob))
	pair := suite.setupPool(10_000)

	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().False(record.KLast.IsZero())

	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, nil))
	suite.addLiquidity(pair, suite.alice, 1_000, 1_000)

	record, err = suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().True(record.KLast.IsZero())
	suite.requireIntEqual(0, suite.keeper.BalanceOf(suite.ctx, pair, suite.bob))
}
