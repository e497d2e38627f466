package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Identity is an opaque 32-byte account key, base58 encoded on the wire and in storage.
type Identity = solana.PublicKey

type StateSeed string

const (
	SeedHonoraryPosition StateSeed = "honorary_position"
	SeedPolicy           StateSeed = "policy"
	SeedProgress         StateSeed = "progress"
)

// DeriveStateKey derives the per-position storage key for seed, scoped to the pool key.
func DeriveStateKey(programID Identity, seed StateSeed, pool Identity) (Identity, error) {
	key, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(seed), pool.Bytes()},
		programID,
	)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to derive %s key for pool %s: %w", seed, pool, err)
	}
	return key, nil
}

func ParseIdentity(s string) (Identity, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return Identity{}, NewErrorWithMsg(InvalidPoolConfig, "invalid identity %q: %v", s, err)
	}
	return key, nil
}
