package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store/iavl"
	"github.com/iov-one/htlc/weavetest"
	"github.com/iov-one/htlc/x/cash"
	"github.com/iov-one/htlc/x/escrow"
	"github.com/iov-one/htlc/x/factory"
	"github.com/iov-one/htlc/x/token"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func newTestChain(t testing.TB, height int64, accounts ...cash.GenesisAccount) *Chain {
	t.Helper()
	raw, err := json.Marshal(accounts)
	require.NoError(t, err)
	chain := NewChain(iavl.NewMemCommitStore(), log.NewNopLogger())
	gen := &Genesis{
		ChainID:       "test-chain",
		InitialHeight: height,
		AppState:      htlc.Options{"cash": raw},
	}
	_, err = chain.InitChain(gen, DefaultInitializer())
	require.NoError(t, err)
	return chain
}

func salt(b byte) []byte {
	s := make([]byte, SaltLength)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestTokenEscrowScenario(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	resolver := weavetest.NewAddress()
	chain := newTestChain(t, 1,
		cash.GenesisAccount{Address: alice, Balance: 100},
		cash.GenesisAccount{Address: resolver, Balance: 1},
	)

	fact, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)
	tid, err := chain.TemplateID(fact)
	require.NoError(t, err)
	require.Equal(t, escrow.TemplateID, tid)

	tok, err := chain.DeployToken(alice, &token.CreateParams{Name: "Test", Symbol: "TST", InitialSupply: 1000}, nil)
	require.NoError(t, err)
	require.NoError(t, chain.Approve(alice, tok, fact, 500))

	secret := []byte("my very secret preimage")
	hash := escrow.Hash(secret)
	req := factory.TokenRequest{
		Token:           tok,
		Amount:          500,
		Beneficiary:     bob,
		HashedSecret:    hash,
		ExpiryOffset:    100,
		ResolverDeposit: 10,
	}
	esc, err := chain.CreateTokenEscrow(alice, fact, req, 10)
	require.NoError(t, err)

	last, err := chain.LastEscrow(fact)
	require.NoError(t, err)
	require.Equal(t, esc, last)

	info, err := chain.EscrowInfo(esc)
	require.NoError(t, err)
	require.Equal(t, alice, info.Initiator)
	require.Equal(t, bob, info.Beneficiary)
	require.Equal(t, uint64(500), info.LockedAmount)
	require.Equal(t, uint64(10), info.ResolverDeposit)
	require.Equal(t, escrow.AssetToken, info.AssetKind)
	require.Equal(t, tok, info.Token)
	require.Equal(t, int64(101), info.Expiry)

	assertToken(t, chain, tok, alice, 500)
	assertToken(t, chain, tok, esc, 500)
	assertNative(t, chain, alice, 90)
	assertNative(t, chain, esc, 10)

	ok, err := chain.VerifySecret(esc, secret)
	require.NoError(t, err)
	require.True(t, ok)

	records, err := chain.Claim(resolver, esc, secret)
	require.NoError(t, err)

	assertToken(t, chain, tok, bob, 500)
	assertToken(t, chain, tok, esc, 0)
	assertNative(t, chain, resolver, 11)
	assertNative(t, chain, esc, 0)

	var revealed bool
	for _, r := range records {
		if rec, ok := r.(escrow.SecretRevealedRecord); ok {
			require.Equal(t, secret, rec.Secret)
			revealed = true
		}
	}
	require.True(t, revealed, "secret not disclosed")

	_, err = chain.Claim(resolver, esc, secret)
	require.True(t, escrow.ErrAlreadyFinalized.Is(err))
	_, err = chain.Refund(resolver, esc)
	require.True(t, escrow.ErrAlreadyFinalized.Is(err))
}

func TestNativeEscrowRefund(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	chain := newTestChain(t, 5, cash.GenesisAccount{Address: alice, Balance: 1000})

	fact, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)

	req := factory.NativeRequest{
		Beneficiary:     bob,
		HashedSecret:    escrow.Hash([]byte("secret")),
		ExpiryOffset:    3,
		ResolverDeposit: 7,
	}
	esc, err := chain.CreateNativeEscrow(alice, fact, req, 107)
	require.NoError(t, err)
	assertNative(t, chain, alice, 893)
	assertNative(t, chain, fact, 0)
	assertNative(t, chain, esc, 107)

	info, err := chain.EscrowInfo(esc)
	require.NoError(t, err)
	require.Equal(t, uint64(100), info.LockedAmount)

	_, err = chain.Refund(bob, esc)
	require.True(t, escrow.ErrNotExpired.Is(err))

	_, err = chain.Tick(3)
	require.NoError(t, err)

	_, err = chain.Claim(bob, esc, []byte("secret"))
	require.True(t, errors.ErrExpired.Is(err))

	_, err = chain.Refund(bob, esc)
	require.NoError(t, err)
	assertNative(t, chain, alice, 993)
	assertNative(t, chain, bob, 7)
	assertNative(t, chain, esc, 0)

	again, err := chain.EscrowInfo(esc)
	require.NoError(t, err)
	require.True(t, again.Refunded)
	require.False(t, again.Claimed)
}

func TestTokenEscrowRollback(t *testing.T) {
	alice := weavetest.NewAddress()
	chain := newTestChain(t, 1, cash.GenesisAccount{Address: alice, Balance: 100})

	fact, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)
	tok, err := chain.DeployToken(alice, &token.CreateParams{Symbol: "TST", InitialSupply: 1000}, nil)
	require.NoError(t, err)
	// Allowance is too small for the requested amount.
	require.NoError(t, chain.Approve(alice, tok, fact, 499))

	req := factory.TokenRequest{
		Token:           tok,
		Amount:          500,
		Beneficiary:     weavetest.NewAddress(),
		HashedSecret:    escrow.Hash([]byte("secret")),
		ExpiryOffset:    100,
		ResolverDeposit: 10,
		Salt:            salt(1),
	}
	_, err = chain.CreateTokenEscrow(alice, fact, req, 10)
	require.True(t, token.ErrInsufficientAllowance.Is(err), "%+v", err)

	args, err := escrow.EncodeParams(&escrow.Params{
		Initiator:       alice,
		Beneficiary:     req.Beneficiary,
		HashedSecret:    req.HashedSecret,
		ExpiryOffset:    req.ExpiryOffset,
		ResolverDeposit: req.ResolverDeposit,
		AssetKind:       escrow.AssetToken,
		Token:           tok,
		Amount:          req.Amount,
	})
	require.NoError(t, err)
	_, err = chain.EscrowInfo(InstanceAddress(escrow.TemplateID, args, req.Salt))
	require.True(t, errors.ErrNotFound.Is(err))

	_, err = chain.LastEscrow(fact)
	require.True(t, errors.ErrNotFound.Is(err))
	assertNative(t, chain, alice, 100)
	assertNative(t, chain, fact, 0)
	assertToken(t, chain, tok, alice, 1000)

	// The same request succeeds once the allowance is raised. Nothing of
	// the failed call occupies the address.
	require.NoError(t, chain.Approve(alice, tok, fact, 500))
	esc, err := chain.CreateTokenEscrow(alice, fact, req, 10)
	require.NoError(t, err)
	require.Equal(t, InstanceAddress(escrow.TemplateID, args, req.Salt), esc)
}

func TestDeterministicAddress(t *testing.T) {
	alice := weavetest.NewAddress()
	carol := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	hash := escrow.Hash([]byte("secret"))

	create := func(t *testing.T, caller htlc.Address) htlc.Address {
		t.Helper()
		chain := newTestChain(t, 1, cash.GenesisAccount{Address: caller, Balance: 1000})
		fact, err := chain.DeployFactory(caller, nil, salt(9))
		require.NoError(t, err)

		req := factory.NativeRequest{
			Beneficiary:     bob,
			HashedSecret:    hash,
			ExpiryOffset:    10,
			ResolverDeposit: 1,
			Salt:            salt(7),
		}
		addr, err := chain.CreateNativeEscrow(caller, fact, req, 50)
		require.NoError(t, err)

		_, err = chain.CreateNativeEscrow(caller, fact, req, 50)
		require.True(t, errors.ErrDuplicate.Is(err), "%+v", err)
		return addr
	}

	// The factory address does not depend on who deployed it. The initiator
	// is part of the escrow arguments, so a different caller yields a
	// different escrow.
	first := create(t, alice)
	second := create(t, alice)
	require.Equal(t, first, second)
	third := create(t, carol)
	require.NotEqual(t, first, third)
}

func TestDeployerSalt(t *testing.T) {
	alice := weavetest.NewAddress()
	chain := newTestChain(t, 1)

	_, err := chain.DeployFactory(alice, nil, []byte("short"))
	require.True(t, errors.ErrInput.Is(err))

	a, err := chain.DeployFactory(alice, nil, salt(3))
	require.NoError(t, err)
	_, err = chain.DeployFactory(alice, nil, salt(3))
	require.True(t, errors.ErrDuplicate.Is(err))

	// Without a salt every deployment gets a fresh address.
	b, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)
	c, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, b, c)
	require.NotEqual(t, a, b)

	err = chain.Query(func(ctx context.Context, db htlc.KVStore) error {
		inst, err := chain.Deployer.Instance(db, a)
		require.NoError(t, err)
		require.Equal(t, factory.TemplateID, inst.TemplateID)
		require.Equal(t, alice, inst.Creator)
		return nil
	})
	require.NoError(t, err)
}

func TestExecRollback(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	chain := newTestChain(t, 1, cash.GenesisAccount{Address: alice, Balance: 10})

	cases := map[string]struct {
		fn      CallFunc
		wantErr *errors.Error
	}{
		"error": {
			fn: func(ctx context.Context, db htlc.KVStore) error {
				return errors.Wrap(errors.ErrState, "nope")
			},
			wantErr: errors.ErrState,
		},
		"panic": {
			fn: func(ctx context.Context, db htlc.KVStore) error {
				panic("boom")
			},
			wantErr: errors.ErrPanic,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			records, err := chain.Exec(alice, bob, 4, func(ctx context.Context, db htlc.KVStore) error {
				htlc.Emit(ctx, escrow.SecretRevealedRecord{Secret: []byte("x")})
				return tc.fn(ctx, db)
			})
			require.True(t, tc.wantErr.Is(err), "%+v", err)
			require.Nil(t, records)
			assertNative(t, chain, alice, 10)
			assertNative(t, chain, bob, 0)
		})
	}
	require.Empty(t, chain.Records())

	records, err := chain.Exec(alice, bob, 4, func(ctx context.Context, db htlc.KVStore) error {
		caller, ok := htlc.GetCaller(ctx)
		require.True(t, ok)
		require.Equal(t, alice, caller)
		htlc.Emit(ctx, escrow.SecretRevealedRecord{Secret: []byte("x")})
		return nil
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, chain.Records(), 1)
	assertNative(t, chain, alice, 6)
	assertNative(t, chain, bob, 4)

	_, err = chain.Exec(alice, bob, 7, func(ctx context.Context, db htlc.KVStore) error {
		return nil
	})
	require.True(t, errors.ErrInsufficientAmount.Is(err))
}

type panickingLedger struct {
	TokenLedger
}

func (panickingLedger) TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error {
	panic("token ledger is broken")
}

func TestTokenSubcallPanic(t *testing.T) {
	alice := weavetest.NewAddress()
	chain := newTestChain(t, 1, cash.GenesisAccount{Address: alice, Balance: 100})
	chain.Factories = factory.NewController(chain.Deployer, NewTokenInvoker(panickingLedger{TokenLedger: chain.Tokens}))

	factAddr, err := chain.DeployFactory(alice, nil, nil)
	require.NoError(t, err)
	req := factory.TokenRequest{
		Token:           weavetest.NewAddress(),
		Amount:          5,
		Beneficiary:     weavetest.NewAddress(),
		HashedSecret:    escrow.Hash([]byte("secret")),
		ExpiryOffset:    10,
		ResolverDeposit: 1,
	}
	_, err = chain.CreateTokenEscrow(alice, factAddr, req, 1)
	require.True(t, errors.ErrPanic.Is(err), "%+v", err)
	assertNative(t, chain, alice, 100)
}

func TestTickCommits(t *testing.T) {
	chain := newTestChain(t, 10)
	before := chain.CommitInfo()
	require.Equal(t, int64(1), before.Version)

	id, err := chain.Tick(5)
	require.NoError(t, err)
	require.Equal(t, int64(2), id.Version)

	h, err := chain.Height()
	require.NoError(t, err)
	require.Equal(t, int64(15), h)

	_, err = chain.InitChain(&Genesis{}, DefaultInitializer())
	require.True(t, errors.ErrState.Is(err))
}

func assertNative(t testing.TB, chain *Chain, addr htlc.Address, want uint64) {
	t.Helper()
	got, err := chain.Balance(addr)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func assertToken(t testing.TB, chain *Chain, tok, addr htlc.Address, want uint64) {
	t.Helper()
	got, err := chain.TokenBalance(tok, addr)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
