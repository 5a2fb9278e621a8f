package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jvsteiner/otc-agent/internal/patch"
	"github.com/jvsteiner/otc-agent/internal/sighelper"
)

// parseKinds maps the --kind flag value to the call kinds to process.
func parseKinds(s string) ([]patch.Kind, error) {
	switch s {
	case "", "all":
		return patch.AllKinds, nil
	case "swap":
		return []patch.Kind{patch.KindSwapNative}, nil
	case "revert":
		return []patch.Kind{patch.KindRevertNative}, nil
	default:
		return nil, fmt.Errorf("invalid kind %q (want swap, revert or all)", s)
	}
}

// newPatcher builds a template patcher from the loaded configuration.
func newPatcher() *patch.Patcher {
	p := patch.New()
	if cfg != nil {
		p.HelperVar = cfg.HelperVar
		p.BrokerVar = cfg.BrokerVar
		p.KeyVar = cfg.KeyVar
		p.DefaultCaller = cfg.DefaultCaller
	}
	return p
}

func parseAddress(s, name string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address: %q", name, s)
	}
	return common.HexToAddress(s), nil
}

func parseUint256(s, name string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q (want a non-negative decimal integer)", name, s)
	}
	return v, nil
}

func parseFlag(s, name string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q (want true or false)", name, s)
	}
	return v, nil
}

// swapAuthFromArgs builds a SwapAuth from positional CLI arguments:
// dealId, payback, recipient, feeRecipient, amount, fees, caller.
func swapAuthFromArgs(args []string, broker common.Address) (sighelper.SwapAuth, error) {
	var a sighelper.SwapAuth
	var err error

	a.Broker = broker
	if a.DealID, err = sighelper.ParseDealID(args[0]); err != nil {
		return a, err
	}
	if a.Payback, err = parseFlag(args[1], "payback"); err != nil {
		return a, err
	}
	if a.Recipient, err = parseAddress(args[2], "recipient"); err != nil {
		return a, err
	}
	if a.FeeRecipient, err = parseAddress(args[3], "feeRecipient"); err != nil {
		return a, err
	}
	if a.Amount, err = parseUint256(args[4], "amount"); err != nil {
		return a, err
	}
	if a.Fees, err = parseUint256(args[5], "fees"); err != nil {
		return a, err
	}
	if a.Caller, err = parseAddress(args[6], "caller"); err != nil {
		return a, err
	}
	return a, nil
}

// revertAuthFromArgs builds a RevertAuth from positional CLI arguments:
// dealId, payback, feeRecipient, fees, caller.
func revertAuthFromArgs(args []string, broker common.Address) (sighelper.RevertAuth, error) {
	var a sighelper.RevertAuth
	var err error

	a.Broker = broker
	if a.DealID, err = sighelper.ParseDealID(args[0]); err != nil {
		return a, err
	}
	if a.Payback, err = parseFlag(args[1], "payback"); err != nil {
		return a, err
	}
	if a.FeeRecipient, err = parseAddress(args[2], "feeRecipient"); err != nil {
		return a, err
	}
	if a.Fees, err = parseUint256(args[3], "fees"); err != nil {
		return a, err
	}
	if a.Caller, err = parseAddress(args[4], "caller"); err != nil {
		return a, err
	}
	return a, nil
}

// brokerAddress resolves the broker contract address from the flag value
// or the configured default.
func brokerAddress(flagVal string) (common.Address, error) {
	s := flagVal
	if s == "" && cfg != nil {
		s = cfg.BrokerAddress
	}
	if s == "" {
		return common.Address{}, fmt.Errorf("no broker address — pass --broker or set it: otc-agent config set broker-address <addr>")
	}
	return parseAddress(s, "broker")
}
