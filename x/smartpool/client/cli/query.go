package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the smartpool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "smartpool",
		Short:                      "Querying commands for the smartpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQuerySpotPrice(),
		CmdQueryParams(),
	)

	return cmd
}

// CmdQueryPool returns the command to query a pool
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a pool by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pool query requires running node connection")
			fmt.Printf("Use REST API: GET /dynaswap/smartpool/v1/pool/%s\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPools returns the command to query all pools
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query all pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pools query requires running node connection")
			fmt.Println("Use REST API: GET /dynaswap/smartpool/v1/pools")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySpotPrice returns the command to query a pair's spot price
func CmdQuerySpotPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spot-price [pool-id] [token-in] [token-out]",
		Short: "Query the fee-inclusive spot price of a pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Spot price query requires running node connection")
			fmt.Printf("Use REST API: GET /dynaswap/smartpool/v1/spot-price/%s/%s/%s\n", args[0], args[1], args[2])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryParams returns the command to query module parameters
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the smartpool module parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Params query requires running node connection")
			fmt.Println("Use REST API: GET /dynaswap/smartpool/v1/params")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
