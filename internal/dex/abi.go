package dex

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"conicPool/internal/curve"
)

const demoPoolABIJSON = `[
  {
    "inputs": [{"internalType": "int128[6]", "name": "params", "type": "int128[6]"}],
    "stateMutability": "nonpayable",
    "type": "constructor"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "xBal", "type": "uint256"},
      {"internalType": "uint256", "name": "yBal", "type": "uint256"},
      {"internalType": "uint256", "name": "totalSupply", "type": "uint256"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "uint8", "name": "token", "type": "uint8"}
    ],
    "name": "deposit",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "xBal", "type": "uint256"},
      {"internalType": "uint256", "name": "yBal", "type": "uint256"},
      {"internalType": "uint256", "name": "totalSupply", "type": "uint256"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "uint8", "name": "token", "type": "uint8"}
    ],
    "name": "withdraw",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "xBal", "type": "uint256"},
      {"internalType": "uint256", "name": "yBal", "type": "uint256"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "uint8", "name": "token", "type": "uint8"}
    ],
    "name": "swap",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  }
]`

var (
	demoPoolABI     abi.ABI
	demoPoolABIOnce sync.Once
	demoPoolABIErr  error
)

// DemoPoolABI returns the parsed ABI of the on-chain demo pool.
func DemoPoolABI() (abi.ABI, error) {
	demoPoolABIOnce.Do(func() {
		demoPoolABI, demoPoolABIErr = abi.JSON(strings.NewReader(demoPoolABIJSON))
	})
	return demoPoolABI, demoPoolABIErr
}

// PackDeployParams ABI-encodes the curve coefficients as the demo pool's
// int128[6] constructor argument in 64.64 fixed point.
func PackDeployParams(coeffs curve.Coefficients) ([]byte, error) {
	parsed, err := DemoPoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse demo pool abi: %w", err)
	}

	params, err := DeployParams(coeffs)
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("", params)
	if err != nil {
		return nil, fmt.Errorf("pack constructor: %w", err)
	}
	return data, nil
}

// DeployParams converts the coefficients to 64.64 fixed point.
func DeployParams(coeffs curve.Coefficients) ([6]*big.Int, error) {
	var params [6]*big.Int
	for i, value := range coeffs.Strings() {
		fixed, err := ToFixed64x64String(value)
		if err != nil {
			return params, fmt.Errorf("coefficient %d: %w", i, err)
		}
		params[i] = fixed
	}
	return params, nil
}
