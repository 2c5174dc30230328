package smartpool

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/dynaswap/dynaswap/x/smartpool/keeper"
	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for smartpool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreatePool{}, "smartpool/MsgCreatePool", nil)
	cdc.RegisterConcrete(&types.MsgBindToken{}, "smartpool/MsgBindToken", nil)
	cdc.RegisterConcrete(&types.MsgRebindToken{}, "smartpool/MsgRebindToken", nil)
	cdc.RegisterConcrete(&types.MsgUnbindToken{}, "smartpool/MsgUnbindToken", nil)
	cdc.RegisterConcrete(&types.MsgGulp{}, "smartpool/MsgGulp", nil)
	cdc.RegisterConcrete(&types.MsgFinalize{}, "smartpool/MsgFinalize", nil)
	cdc.RegisterConcrete(&types.MsgJoinPool{}, "smartpool/MsgJoinPool", nil)
	cdc.RegisterConcrete(&types.MsgExitPool{}, "smartpool/MsgExitPool", nil)
	cdc.RegisterConcrete(&types.MsgSwapExactAmountIn{}, "smartpool/MsgSwapExactAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgSwapExactAmountOut{}, "smartpool/MsgSwapExactAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgSetSwapFee{}, "smartpool/MsgSetSwapFee", nil)
	cdc.RegisterConcrete(&types.MsgSetPublicSwap{}, "smartpool/MsgSetPublicSwap", nil)
	cdc.RegisterConcrete(&types.MsgSetController{}, "smartpool/MsgSetController", nil)
	cdc.RegisterConcrete(&types.MsgSetCoverageParams{}, "smartpool/MsgSetCoverageParams", nil)
	cdc.RegisterConcrete(&types.MsgSetLookback{}, "smartpool/MsgSetLookback", nil)
	cdc.RegisterConcrete(&types.MsgUpdateParams{}, "smartpool/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreatePool{},
		&types.MsgBindToken{},
		&types.MsgRebindToken{},
		&types.MsgUnbindToken{},
		&types.MsgGulp{},
		&types.MsgFinalize{},
		&types.MsgJoinPool{},
		&types.MsgExitPool{},
		&types.MsgSwapExactAmountIn{},
		&types.MsgSwapExactAmountOut{},
		&types.MsgSetSwapFee{},
		&types.MsgSetPublicSwap{},
		&types.MsgSetController{},
		&types.MsgSetCoverageParams{},
		&types.MsgSetLookback{},
		&types.MsgUpdateParams{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	bz, _ := json.Marshal(types.DefaultGenesisState())
	return bz
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	if bz == nil {
		return nil
	}
	var genState types.GenesisState
	if err := json.Unmarshal(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", ModuleName, err)
	}
	return genState.Validate()
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
}

// AppModule implements an application module for the smartpool module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices registers module services
func (am AppModule) RegisterServices(cfg module.Configurator) {
	_ = keeper.NewMsgServerImpl(am.keeper)
	_ = keeper.NewQueryServerImpl(am.keeper)
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}

// InitGenesis initializes the module state from genesis
func (am AppModule) InitGenesis(ctx sdk.Context, cdc codec.JSONCodec, bz json.RawMessage) {
	genState := types.DefaultGenesisState()
	if bz != nil {
		_ = json.Unmarshal(bz, genState)
	}
	if err := am.keeper.InitGenesis(ctx, genState); err != nil {
		panic(err)
	}
}

// ExportGenesis exports the module state as raw bytes
func (am AppModule) ExportGenesis(ctx sdk.Context, cdc codec.JSONCodec) json.RawMessage {
	bz, _ := json.Marshal(am.keeper.ExportGenesis(ctx))
	return bz
}
