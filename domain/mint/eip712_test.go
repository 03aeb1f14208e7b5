package mint

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/dropapi/base/ethereum"
	"github.com/x-xyz/dropapi/domain"
)

const (
	testTokenName = "Drop Token"
	testChainId   = domain.ChainId(1)
	testContract  = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
)

func buildTestRequest(t *testing.T) *Request {
	p := NewPayload("0x939ae6a4c8dfdbb1f7085189574f0a938013952a", "10")
	p.Price = "0.5"
	r, err := BuildRequest(p, "0x0ab1c48327eb7e48bd4a2f5c1a03dced6b99fb1b")
	require.NoError(t, err)
	return r
}

func TestTypedDataHashIsDeterministic(t *testing.T) {
	req := require.New(t)
	r := buildTestRequest(t)

	h1, err := r.TypedDataHash(testTokenName, testChainId, testContract)
	req.NoError(err)
	h2, err := r.TypedDataHash(testTokenName, testChainId, testContract)
	req.NoError(err)
	req.Equal(h1, h2)

	key, pub, err := ethereum.GenerateKey()
	req.NoError(err)
	sig1, err := ethereum.SignHash(h1, key)
	req.NoError(err)
	sig2, err := ethereum.SignHash(h2, key)
	req.NoError(err)

	a1, err := ethereum.RecoverHashSigner(h1, sig1)
	req.NoError(err)
	a2, err := ethereum.RecoverHashSigner(h2, sig2)
	req.NoError(err)
	req.Equal(crypto.PubkeyToAddress(*pub), a1)
	req.Equal(a1, a2)
}

func TestTypedDataHashDependsOnDomain(t *testing.T) {
	req := require.New(t)
	r := buildTestRequest(t)

	h1, err := r.TypedDataHash(testTokenName, testChainId, testContract)
	req.NoError(err)
	h2, err := r.TypedDataHash(testTokenName, domain.ChainId(137), testContract)
	req.NoError(err)
	req.NotEqual(h1, h2)

	h3, err := r.TypedDataHash("Other Token", testChainId, testContract)
	req.NoError(err)
	req.NotEqual(h1, h3)
}

func TestTypedDataHashTamperSensitivity(t *testing.T) {
	req := require.New(t)
	r := buildTestRequest(t)

	key, pub, err := ethereum.GenerateKey()
	req.NoError(err)
	signer := crypto.PubkeyToAddress(*pub)

	digest, err := r.TypedDataHash(testTokenName, testChainId, testContract)
	req.NoError(err)
	sig, err := ethereum.SignHash(digest, key)
	req.NoError(err)

	tampers := []struct {
		desc   string
		mutate func(r *Request)
	}{
		{
			desc:   "uid byte flip",
			mutate: func(r *Request) { r.Uid[7] ^= 0xff },
		},
		{
			desc:   "quantity change",
			mutate: func(r *Request) { r.Quantity = new(big.Int).Add(r.Quantity, domain.Big10) },
		},
		{
			desc:   "to address byte flip",
			mutate: func(r *Request) { r.To[0] ^= 0x01 },
		},
	}
	for _, tt := range tampers {
		tampered := *r
		tt.mutate(&tampered)

		tamperedDigest, err := tampered.TypedDataHash(testTokenName, testChainId, testContract)
		req.NoError(err, tt.desc)
		req.NotEqual(digest, tamperedDigest, tt.desc)

		recovered, err := ethereum.RecoverHashSigner(tamperedDigest, sig)
		req.NoError(err, tt.desc)
		req.NotEqual(signer, recovered, tt.desc)
	}
}

func TestStructHashIgnoresDomain(t *testing.T) {
	req := require.New(t)
	r := buildTestRequest(t)
	h1, err := r.Hash()
	req.NoError(err)
	req.Len(h1, 32)

	// struct hash is domain independent; only the final digest mixes it in
	h2, err := r.Hash()
	req.NoError(err)
	req.Equal(h1, h2)
}
