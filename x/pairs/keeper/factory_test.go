package keeper_test

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/pairs/types"
)

func (suite *KeeperTestSuite) TestCreatePairRegistersBothDirections() {
	pair, err := suite.keeper.CreatePair(suite.ctx, suite.alice, tokenB, tokenA)
	suite.Require().NoError(err)

	ab, found := suite.keeper.GetPair(suite.ctx, tokenA, tokenB)
	suite.Require().True(found)
	ba, found := suite.keeper.GetPair(suite.ctx, tokenB, tokenA)
	suite.Require().True(found)
	suite.Require().Equal(pair, ab)
	suite.Require().Equal(pair, ba)

	record, err := suite.keeper.GetPairRecord(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().Equal(tokenA, record.Token0)
	suite.Require().Equal(tokenB, record.Token1)
	suite.Require().True(record.Reserve0.IsZero())
	suite.Require().True(record.TotalSupply.IsZero())

	suite.Require().Equal(uint64(1), suite.keeper.AllPairsLength(suite.ctx))
	first, err := suite.keeper.AllPairs(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Require().Equal(pair, first)
}

func (suite *KeeperTestSuite) TestCreatePairEmitsEvent() {
	pair := suite.createPair(tokenA, tokenB)

	ev, found := suite.lastEvent(types.EventTypePairCreated)
	suite.Require().True(found)
	suite.Require().Equal(tokenA, eventAttr(ev, types.AttributeKeyToken0))
	suite.Require().Equal(tokenB, eventAttr(ev, types.AttributeKeyToken1))
	suite.Require().Equal(pair.String(), eventAttr(ev, types.AttributeKeyPair))
	suite.Require().Equal("1", eventAttr(ev, types.AttributeKeyAllPairsLength))
}

func (suite *KeeperTestSuite) TestPredictPairAddressMatchesCreate() {
	predicted, err := suite.keeper.PredictPairAddress(suite.ctx, tokenB, tokenA)
	suite.Require().NoError(err)

	pair := suite.createPair(tokenA, tokenB)
	suite.Require().Equal(predicted, pair)

	offline, err := types.ComputePairAddress(types.ModuleAddress(), tokenA, tokenB)
	suite.Require().NoError(err)
	suite.Require().Equal(offline, pair)
}

func (suite *KeeperTestSuite) TestCreatePairValidation() {
	tests := []struct {
		name     string
		a, b     string
		expError error
	}{
		{name: "identical tokens", a: tokenA, b: tokenA, expError: types.ErrIdenticalAddresses},
		{name: "empty token", a: "", b: tokenB, expError: types.ErrZeroAddress},
		{name: "malformed token", a: "9x", b: tokenB, expError: types.ErrZeroAddress},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.keeper.CreatePair(suite.ctx, suite.alice, tc.a, tc.b)
			suite.Require().ErrorIs(err, tc.expError)
		})
	}

	// failed attempts leave no cooldown behind
	_, err := suite.keeper.CreatePair(suite.ctx, suite.alice, tokenA, tokenB)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), suite.keeper.AllPairsLength(suite.ctx))

	_, err = suite.keeper.CreatePair(suite.ctx, nil, tokenA, "uosmo")
	suite.Require().ErrorIs(err, types.ErrZeroAddress)
}

func (suite *KeeperTestSuite) TestCreatePairExists() {
	_, err := suite.keeper.CreatePair(suite.ctx, suite.alice, tokenA, tokenB)
	suite.Require().NoError(err)

	_, err = suite.keeper.CreatePair(suite.ctx, suite.bob, tokenB, tokenA)
	suite.Require().ErrorIs(err, types.ErrPairExists)
	suite.Require().Equal(uint64(1), suite.keeper.AllPairsLength(suite.ctx))
}

func (suite *KeeperTestSuite) TestCreatePairCooldown() {
	_, err := suite.keeper.CreatePair(suite.ctx, suite.alice, tokenA, tokenB)
	suite.Require().NoError(err)

	// the cooldown is checked before anything about the tokens
	for _, args := range [][2]string{{"uosmo", "ujuno"}, {tokenA, tokenA}, {"", ""}, {tokenA, tokenB}} {
		_, err = suite.keeper.CreatePair(suite.ctx, suite.alice, args[0], args[1])
		suite.Require().ErrorIs(err, types.ErrCooldown, "args %v", args)
	}

	// another creator is not affected
	_, err = suite.keeper.CreatePair(suite.ctx, suite.bob, "uosmo", "ujuno")
	suite.Require().NoError(err)

	suite.advance(59 * time.Second)
	_, err = suite.keeper.CreatePair(suite.ctx, suite.alice, "uosmo", "uakt")
	suite.Require().ErrorIs(err, types.ErrCooldown)

	suite.advance(time.Second)
	_, err = suite.keeper.CreatePair(suite.ctx, suite.alice, "uosmo", "uakt")
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), suite.keeper.AllPairsLength(suite.ctx))
}

func (suite *KeeperTestSuite) TestAllPairsKeepsCreationOrder() {
	tokens := [][2]string{{"uzzz", "uyyy"}, {"uaaa", "ubbb"}, {"ummm", "unnn"}}
	var created []sdk.AccAddress
	for _, tk := range tokens {
		created = append(created, suite.createPair(tk[0], tk[1]))
	}

	suite.Require().Equal(uint64(len(tokens)), suite.keeper.AllPairsLength(suite.ctx))
	for i, want := range created {
		got, err := suite.keeper.AllPairs(suite.ctx, uint64(i))
		suite.Require().NoError(err)
		suite.Require().Equal(want, got)
	}
	_, err := suite.keeper.AllPairs(suite.ctx, uint64(len(tokens)))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)
}

func (suite *KeeperTestSuite) TestSetTradingFee() {
	err := suite.keeper.SetTradingFee(suite.ctx, suite.alice, 10)
	suite.Require().ErrorIs(err, types.ErrForbidden)

	err = suite.keeper.SetTradingFee(suite.ctx, suite.admin, types.MaxTradingFee+1)
	suite.Require().ErrorIs(err, types.ErrFeeTooHigh)

	suite.Require().NoError(suite.keeper.SetTradingFee(suite.ctx, suite.admin, types.MaxTradingFee))
	fs, err := suite.keeper.GetFactoryState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(100), fs.TradingFee)

	ev, found := suite.lastEvent(types.EventTypeTradingFeeSet)
	suite.Require().True(found)
	suite.Require().Equal("100", eventAttr(ev, types.AttributeKeyFee))
}

func (suite *KeeperTestSuite) TestSetProtocolFee() {
	err := suite.keeper.SetProtocolFee(suite.ctx, suite.bob, 10)
	suite.Require().ErrorIs(err, types.ErrForbidden)

	err = suite.keeper.SetProtocolFee(suite.ctx, suite.admin, 51)
	suite.Require().ErrorIs(err, types.ErrProtocolFeeTooHigh)

	suite.Require().NoError(suite.keeper.SetProtocolFee(suite.ctx, suite.admin, 50))
	fs, err := suite.keeper.GetFactoryState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(50), fs.ProtocolFeePercentage)
}

func (suite *KeeperTestSuite) TestSetFeeToAndSetter() {
	err := suite.keeper.SetFeeTo(suite.ctx, suite.alice, suite.alice)
	suite.Require().ErrorIs(err, types.ErrForbidden)

	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, suite.bob))
	fs, err := suite.keeper.GetFactoryState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(suite.bob, fs.FeeTo)
	suite.Require().True(fs.FeeOn())

	// an empty recipient switches the protocol fee off
	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, nil))
	fs, err = suite.keeper.GetFactoryState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().False(fs.FeeOn())

	err = suite.keeper.SetFeeToSetter(suite.ctx, suite.admin, nil)
	suite.Require().ErrorIs(err, types.ErrZeroAddress)

	suite.Require().NoError(suite.keeper.SetFeeToSetter(suite.ctx, suite.admin, suite.alice))
	err = suite.keeper.SetTradingFee(suite.ctx, suite.admin, 5)
	suite.Require().ErrorIs(err, types.ErrForbidden)
	suite.Require().NoError(suite.keeper.SetTradingFee(suite.ctx, suite.alice, 5))

	ev, found := suite.lastEvent(types.EventTypeFeeToSetterSet)
	suite.Require().True(found)
	suite.Require().Equal(suite.alice.String(), eventAttr(ev, types.AttributeKeyFeeToSetter))
}

func (suite *KeeperTestSuite) TestGetPairTradingFee() {
	pair := suite.createPair(tokenA, tokenB)

	suite.Require().Equal(types.DefaultTradingFee, suite.keeper.GetPairTradingFee(suite.ctx, pair))
	suite.Require().Equal(uint64(0), suite.keeper.GetPairTradingFee(suite.ctx, suite.alice))
	suite.Require().Equal(uint64(0), suite.keeper.GetPairTradingFee(suite.ctx, nil))

	suite.Require().NoError(suite.keeper.SetTradingFee(suite.ctx, suite.admin, 10))
	suite.Require().Equal(uint64(10), suite.keeper.GetPairTradingFee(suite.ctx, pair))
	suite.Require().Equal(uint64(10), suite.keeper.GetTradingFee(suite.ctx, pair))
}

func (suite *KeeperTestSuite) TestUpdatePairVolume() {
	pair := suite.createPair(tokenA, tokenB)
	other := suite.createPair("uosmo", "ujuno")

	err := suite.keeper.UpdatePairVolume(suite.ctx, suite.alice, pair, math.NewInt(5))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	err = suite.keeper.UpdatePairVolume(suite.ctx, other, pair, math.NewInt(5))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	stranger := keepertest.TestAddr("stranger")
	err = suite.keeper.UpdatePairVolume(suite.ctx, stranger, stranger, math.NewInt(5))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	suite.Require().NoError(suite.keeper.UpdatePairVolume(suite.ctx, pair, pair, math.NewInt(5)))
	suite.advance(time.Minute)
	suite.Require().NoError(suite.keeper.UpdatePairVolume(suite.ctx, pair, pair, math.NewInt(7)))
	suite.Require().NoError(suite.keeper.UpdatePairVolume(suite.ctx, other, other, math.NewInt(1)))

	vol, err := suite.keeper.GetPairVolume(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.requireIntEqual(12, vol.Volume)
	suite.Require().Equal(suite.ctx.BlockTime().Unix(), vol.LastUpdate)
	suite.requireIntEqual(13, suite.keeper.GetTotalVolume(suite.ctx))

	ev, found := suite.lastEvent(types.EventTypeVolumeUpdated)
	suite.Require().True(found)
	suite.Require().Equal(other.String(), eventAttr(ev, types.AttributeKeyPair))
	suite.Require().Equal("13", eventAttr(ev, types.AttributeKeyTotalVolume))
}

func (suite *KeeperTestSuite) TestStats() {
	_, err := suite.keeper.GetPairStats(suite.ctx, suite.alice)
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	pair := suite.setupPool(10_000)
	stats, err := suite.keeper.GetPairStats(suite.ctx, pair)
	suite.Require().NoError(err)
	suite.Require().Equal(tokenA, stats.Token0)
	suite.Require().Equal(tokenB, stats.Token1)
	suite.requireIntEqual(10_000, stats.Reserve0)
	suite.requireIntEqual(10_000, stats.TotalSupply)
	suite.requireIntEqual(0, stats.Volume)
	suite.Require().Equal(types.DefaultTradingFee, stats.TradingFee)

	suite.Require().NoError(suite.keeper.SetFeeTo(suite.ctx, suite.admin, suite.bob))
	dex, err := suite.keeper.GetDEXStats(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), dex.PairCount)
	suite.Require().Equal(types.DefaultTradingFee, dex.TradingFee)
	suite.Require().Equal(types.DefaultProtocolFeePercentage, dex.ProtocolFeePercentage)
	suite.Require().Equal(suite.bob, dex.FeeTo)
	suite.requireIntEqual(0, dex.TotalVolume)
}
