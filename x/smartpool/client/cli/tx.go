package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// GetTxCmd returns the transaction commands for the smartpool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "smartpool",
		Short:                      "Smartpool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdBindToken(),
		CmdRebindToken(),
		CmdUnbindToken(),
		CmdGulp(),
		CmdFinalize(),
		CmdJoinPool(),
		CmdExitPool(),
		CmdSwapExactAmountIn(),
		CmdSwapExactAmountOut(),
		CmdSetSwapFee(),
		CmdSetPublicSwap(),
	)

	return cmd
}

// parseAmountMap parses "denom=amount,denom=amount" pairs
func parseAmountMap(s string) (map[string]string, error) {
	out := map[string]string{}
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid amount pair %q, expected denom=amount", pair)
		}
		out[parts[0]] = parts[1]
	}
	return out, nil
}

// CmdCreatePool returns the command to create a pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a new smart pool controlled by the sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreatePool{
				Creator: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdBindToken returns the command to bind a token
func CmdBindToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind [pool-id] [token] [balance] [denorm] [feed-id]",
		Short: "Bind a token to an unfinalized pool",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgBindToken{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
				Token:      args[1],
				Balance:    args[2],
				Denorm:     args[3],
				FeedId:     args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRebindToken returns the command to rebind a token
func CmdRebindToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebind [pool-id] [token] [balance] [denorm] [feed-id]",
		Short: "Adjust the balance and weight of a bound token",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgRebindToken{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
				Token:      args[1],
				Balance:    args[2],
				Denorm:     args[3],
				FeedId:     args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUnbindToken returns the command to unbind a token
func CmdUnbindToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unbind [pool-id] [token]",
		Short: "Remove a token from an unfinalized pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgUnbindToken{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
				Token:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdGulp returns the command to reconcile a token balance
func CmdGulp() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gulp [pool-id] [token]",
		Short: "Sync a pool's recorded token balance with its actual holdings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgGulp{
				Caller: clientCtx.GetFromAddress().String(),
				PoolId: poolId,
				Token:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalize returns the command to finalize a pool
func CmdFinalize() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize [pool-id]",
		Short: "Finalize a pool, freezing its bindings and opening it for trading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgFinalize{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdJoinPool returns the command to join a pool
func CmdJoinPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [pool-id] [shares-out] [max-amounts-in]",
		Short: "Join a pool, depositing up to max-amounts-in (denom=amount,...) for shares-out",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}
			maxAmountsIn, err := parseAmountMap(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgJoinPool{
				Sender:       clientCtx.GetFromAddress().String(),
				PoolId:       poolId,
				SharesOut:    args[1],
				MaxAmountsIn: maxAmountsIn,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExitPool returns the command to exit a pool
func CmdExitPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit [pool-id] [shares-in] [min-amounts-out]",
		Short: "Exit a pool, burning shares-in for at least min-amounts-out (denom=amount,...)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}
			minAmountsOut, err := parseAmountMap(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgExitPool{
				Sender:        clientCtx.GetFromAddress().String(),
				PoolId:        poolId,
				SharesIn:      args[1],
				MinAmountsOut: minAmountsOut,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactAmountIn returns the command for an exact-in swap
func CmdSwapExactAmountIn() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-in [pool-id] [token-in] [amount-in] [token-out] [min-amount-out] [max-price]",
		Short: "Swap an exact amount of token-in for token-out",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgSwapExactAmountIn{
				Trader:       clientCtx.GetFromAddress().String(),
				PoolId:       poolId,
				TokenIn:      args[1],
				AmountIn:     args[2],
				TokenOut:     args[3],
				MinAmountOut: args[4],
				MaxPrice:     args[5],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactAmountOut returns the command for an exact-out swap
func CmdSwapExactAmountOut() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-out [pool-id] [token-in] [max-amount-in] [token-out] [amount-out] [max-price]",
		Short: "Swap token-in for an exact amount of token-out",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgSwapExactAmountOut{
				Trader:      clientCtx.GetFromAddress().String(),
				PoolId:      poolId,
				TokenIn:     args[1],
				MaxAmountIn: args[2],
				TokenOut:    args[3],
				AmountOut:   args[4],
				MaxPrice:    args[5],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetSwapFee returns the command to set the swap fee
func CmdSetSwapFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-swap-fee [pool-id] [fee]",
		Short: "Set the swap fee of an unfinalized pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgSetSwapFee{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
				SwapFee:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetPublicSwap returns the command to toggle public swapping
func CmdSetPublicSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-public-swap [pool-id] [true|false]",
		Short: "Enable or disable public swapping on an unfinalized pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}
			public, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid bool: %v", err)
			}

			msg := &types.MsgSetPublicSwap{
				Controller: clientCtx.GetFromAddress().String(),
				PoolId:     poolId,
				Public:     public,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
