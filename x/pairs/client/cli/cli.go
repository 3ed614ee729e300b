package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/x/pairs/types"
)

// GetCmd returns the offline commands of the pairs module. Flag values are read
// through v, so they may also come from the config file or the environment.
func GetCmd(v *viper.Viper) *cobra.Command {
	pairsCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Pair address derivation, quotes and genesis tooling",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pairsCmd.AddCommand(
		GetCmdPredictAddress(v),
		GetCmdQuoteOut(v),
		GetCmdQuoteIn(v),
		GetCmdTWAP(v),
		GetCmdDefaultGenesis(),
		GetCmdValidateGenesis(),
	)

	return pairsCmd
}

// GetCmdPredictAddress returns the command deriving a pair address offline
func GetCmdPredictAddress(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict-address [token-a] [token-b]",
		Short: "Derive the address of the pair of two tokens",
		Long: `Derive the deterministic address the factory assigns to the pair of two tokens.
The argument order does not matter.

Example:
  $ pawswapd pairs predict-address upaw uatom`,
		Args:    cobra.ExactArgs(2),
		PreRunE: bindFlagsPreRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := types.ModuleAddress()
			if raw := v.GetString(FlagFactory); raw != "" {
				addr, err := sdk.AccAddressFromBech32(raw)
				if err != nil {
					return fmt.Errorf("invalid factory address: %w", err)
				}
				factory = addr
			}

			token0, token1, err := types.SortTokens(args[0], args[1])
			if err != nil {
				return err
			}
			pair, err := types.ComputePairAddress(factory, token0, token1)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]string{
				"factory": factory.String(),
				"token0":  token0,
				"token1":  token1,
				"pair":    pair.String(),
			})
		},
	}

	cmd.Flags().String(FlagFactory, "", "Bech32 factory address (defaults to the pairs module account)")
	return cmd
}

// GetCmdQuoteOut returns the command computing the output of an exact-input swap
func GetCmdQuoteOut(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote-out [amount-in] [reserve-in] [reserve-out]",
		Short: "Compute the output bought by an exact input",
		Long: `Compute the maximum output a swap of amount-in can take from a pair with the
given reserves, rounded down.

Example:
  $ pawswapd pairs quote-out 1000 100000 100000 --fee 3`,
		Args:    cobra.ExactArgs(3),
		PreRunE: bindFlagsPreRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "amount-in", "reserve-in", "reserve-out")
			if err != nil {
				return err
			}
			fee, err := cast.ToUint64E(v.Get(FlagFee))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", FlagFee, err)
			}

			out, err := types.GetAmountOut(amounts[0], amounts[1], amounts[2], fee)
			if err != nil {
				return err
			}
			cmd.Println(out.String())
			return nil
		},
	}

	cmd.Flags().Uint64(FlagFee, types.DefaultTradingFee, "Trading fee in parts per thousand")
	return cmd
}

// GetCmdQuoteIn returns the command computing the input of an exact-output swap
func GetCmdQuoteIn(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote-in [amount-out] [reserve-in] [reserve-out]",
		Short: "Compute the input needed for an exact output",
		Long: `Compute the minimum input that buys amount-out from a pair with the given
reserves, rounded up.

Example:
  $ pawswapd pairs quote-in 987 100000 100000 --fee 3`,
		Args:    cobra.ExactArgs(3),
		PreRunE: bindFlagsPreRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "amount-out", "reserve-in", "reserve-out")
			if err != nil {
				return err
			}
			fee, err := cast.ToUint64E(v.Get(FlagFee))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", FlagFee, err)
			}

			in, err := types.GetAmountIn(amounts[0], amounts[1], amounts[2], fee)
			if err != nil {
				return err
			}
			cmd.Println(in.String())
			return nil
		},
	}

	cmd.Flags().Uint64(FlagFee, types.DefaultTradingFee, "Trading fee in parts per thousand")
	return cmd
}

// GetCmdTWAP returns the command averaging a price between two accumulator samples
func GetCmdTWAP(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twap [cumulative-start] [cumulative-end]",
		Short: "Average price between two cumulative price samples",
		Long: `Compute the time-weighted average price from two samples of a pair's price
accumulator taken --elapsed seconds apart. Samples wrap at 2^256 and are handled
across the wrap.

Example:
  $ pawswapd pairs twap 0 51922968585348276285304963292200960 --elapsed 10`,
		Args:    cobra.ExactArgs(2),
		PreRunE: bindFlagsPreRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := types.NewPriceCumulative(args[0])
			if err != nil {
				return err
			}
			end, err := types.NewPriceCumulative(args[1])
			if err != nil {
				return err
			}
			elapsed, err := cast.ToUint32E(v.Get(FlagElapsed))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", FlagElapsed, err)
			}

			avg, err := types.AveragePrice(start, end, elapsed)
			if err != nil {
				return err
			}
			cmd.Println(types.UQ112x112ToDec(avg).String())
			return nil
		},
	}

	cmd.Flags().Uint32(FlagElapsed, 0, "Seconds between the two samples")
	return cmd
}

// GetCmdDefaultGenesis returns the command printing the default genesis state
func GetCmdDefaultGenesis() *cobra.Command {
	return &cobra.Command{
		Use:   "default-genesis",
		Short: "Print the default genesis state of the pairs module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bz, err := types.MarshalGenesis(*types.DefaultGenesis())
			if err != nil {
				return err
			}
			cmd.Println(string(bz))
			return nil
		},
	}
}

// GetCmdValidateGenesis returns the command validating a genesis file
func GetCmdValidateGenesis() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a pairs genesis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			gs, err := types.UnmarshalGenesis(bz)
			if err != nil {
				return err
			}
			cmd.Printf("genesis is valid: %d pairs\n", len(gs.Pairs))
			return nil
		},
	}
}

func parseAmounts(args []string, names ...string) ([]math.Int, error) {
	amounts := make([]math.Int, len(args))
	for i, arg := range args {
		amt, ok := math.NewIntFromString(arg)
		if !ok {
			return nil, fmt.Errorf("invalid %s: %q", names[i], arg)
		}
		amounts[i] = amt
	}
	return amounts, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(bz))
	return nil
}

// bindFlagsPreRun binds every flag of the command to v, so that an unset flag
// falls back to the config file and environment.
func bindFlagsPreRun(v *viper.Viper) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return BindFlags(cmd.Flags(), v)
	}
}

// BindFlags binds each flag in fs to the key of the same name in v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	return err
}
