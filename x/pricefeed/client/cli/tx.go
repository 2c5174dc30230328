package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// GetTxCmd returns the transaction commands for the pricefeed module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "pricefeed",
		Short:                      "Pricefeed module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRegisterFeed(),
		CmdSubmitRound(),
	)

	return cmd
}

// CmdRegisterFeed returns the command to register a price feed
func CmdRegisterFeed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [feed-id] [decimals] [description]",
		Short: "Register a new price feed owned by the sender",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			decimals, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid decimals: %v", err)
			}
			description := ""
			if len(args) == 3 {
				description = args[2]
			}

			msg := &types.MsgRegisterFeed{
				Owner:       clientCtx.GetFromAddress().String(),
				FeedId:      args[0],
				Decimals:    uint8(decimals),
				Description: description,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSubmitRound returns the command to submit a price round
func CmdSubmitRound() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [feed-id] [price]",
		Short: "Submit the next round of a price feed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSubmitRound{
				Owner:  clientCtx.GetFromAddress().String(),
				FeedId: args[0],
				Price:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
