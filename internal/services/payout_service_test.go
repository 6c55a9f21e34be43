package services

import (
	"context"
	"testing"

	"betting-ledger/internal/models"
)

func TestClaimWinningsFullScenario(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	events := NewEventService(repo)
	bets := NewBetService(repo)
	resolution := NewResolutionService(repo)
	payouts := NewPayoutService(repo)

	creator := createTestUser(t, repo, "creator-wallet-tttttttttttttttttttttttt", 0)
	alice := createTestUser(t, repo, "alice-wallet-tttttttttttttttttttttttttt", 10)
	bob := createTestUser(t, repo, "bob-wallet-tttttttttttttttttttttttttttt", 10)
	carol := createTestUser(t, repo, "carol-wallet-tttttttttttttttttttttttttt", 10)

	// Stakes 1/2/3 on candidates 0/1/2 by three distinct identities
	event, err := events.CreateEvent(ctx, creator, "Presidential Election", 3)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := bets.PlaceBet(ctx, event.EventID, alice, 0, 1); err != nil {
		t.Fatalf("alice PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, bob, 1, 2); err != nil {
		t.Fatalf("bob PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, carol, 2, 3); err != nil {
		t.Fatalf("carol PlaceBet failed: %v", err)
	}

	totals, err := bets.GetEventTotalBets(ctx, event.EventID)
	if err != nil {
		t.Fatalf("GetEventTotalBets failed: %v", err)
	}
	want := []int64{1, 2, 3}
	for i, total := range totals {
		if total != want[i] {
			t.Errorf("candidate %d: expected total %d, got %d", i, want[i], total)
		}
	}

	if err := events.CloseBetting(ctx, event.EventID, creator); err != nil {
		t.Fatalf("CloseBetting failed: %v", err)
	}
	if err := resolution.ResolveEvent(ctx, event.EventID, creator, 0); err != nil {
		t.Fatalf("ResolveEvent failed: %v", err)
	}

	// Stake 1, winning pool 1, total pool 6 => payout 6
	payout, err := payouts.ClaimWinnings(ctx, event.EventID, alice)
	if err != nil {
		t.Fatalf("ClaimWinnings failed: %v", err)
	}
	if payout != 6 {
		t.Errorf("expected payout 6, got %d", payout)
	}

	// Alice staked 1 of her 10 and got 6 back
	if balance := userBalance(t, repo, alice); balance != 15 {
		t.Errorf("expected alice balance 15, got %d", balance)
	}
}

func TestClaimWinningsTwoCandidates(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	events := NewEventService(repo)
	bets := NewBetService(repo)
	resolution := NewResolutionService(repo)
	payouts := NewPayoutService(repo)

	creator := createTestUser(t, repo, "creator-wallet-uuuuuuuuuuuuuuuuuuuuuuuu", 0)
	alice := createTestUser(t, repo, "alice-wallet-uuuuuuuuuuuuuuuuuuuuuuuuuu", 10)
	bob := createTestUser(t, repo, "bob-wallet-uuuuuuuuuuuuuuuuuuuuuuuuuuuu", 10)

	event, err := events.CreateEvent(ctx, creator, "Some Event", 2)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := bets.PlaceBet(ctx, event.EventID, alice, 0, 1); err != nil {
		t.Fatalf("alice PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, bob, 1, 1); err != nil {
		t.Fatalf("bob PlaceBet failed: %v", err)
	}

	if err := events.CloseBetting(ctx, event.EventID, creator); err != nil {
		t.Fatalf("CloseBetting failed: %v", err)
	}
	if err := resolution.ResolveEvent(ctx, event.EventID, creator, 0); err != nil {
		t.Fatalf("ResolveEvent failed: %v", err)
	}

	payout, err := payouts.ClaimWinnings(ctx, event.EventID, alice)
	if err != nil {
		t.Fatalf("ClaimWinnings failed: %v", err)
	}
	if payout != 2 {
		t.Errorf("expected payout 2, got %d", payout)
	}

	// Bob backed the loser
	if _, err := payouts.ClaimWinnings(ctx, event.EventID, bob); err != models.ErrNotAWinner {
		t.Errorf("expected ErrNotAWinner for bob, got %v", err)
	}
	if balance := userBalance(t, repo, bob); balance != 9 {
		t.Errorf("expected bob balance 9, got %d", balance)
	}
}

func TestClaimWinningsRejections(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	events := NewEventService(repo)
	bets := NewBetService(repo)
	resolution := NewResolutionService(repo)
	payouts := NewPayoutService(repo)

	creator := createTestUser(t, repo, "creator-wallet-vvvvvvvvvvvvvvvvvvvvvvvv", 0)
	alice := createTestUser(t, repo, "alice-wallet-vvvvvvvvvvvvvvvvvvvvvvvvvv", 10)
	idler := createTestUser(t, repo, "idler-wallet-vvvvvvvvvvvvvvvvvvvvvvvvvv", 10)

	event, err := events.CreateEvent(ctx, creator, "Not resolved event", 3)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := payouts.ClaimWinnings(ctx, 999, alice); err != models.ErrEventNotFound {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}

	if _, err := bets.PlaceBet(ctx, event.EventID, alice, 0, 1); err != nil {
		t.Fatalf("PlaceBet failed: %v", err)
	}

	// Unresolved event
	if _, err := payouts.ClaimWinnings(ctx, event.EventID, alice); err != models.ErrNotResolved {
		t.Errorf("expected ErrNotResolved, got %v", err)
	}

	if err := resolution.ResolveEvent(ctx, event.EventID, creator, 0); err != nil {
		t.Fatalf("ResolveEvent failed: %v", err)
	}

	// Caller without a bet
	if _, err := payouts.ClaimWinnings(ctx, event.EventID, idler); err != models.ErrNoBet {
		t.Errorf("expected ErrNoBet, got %v", err)
	}

	// First claim succeeds, second is rejected
	if _, err := payouts.ClaimWinnings(ctx, event.EventID, alice); err != nil {
		t.Fatalf("first ClaimWinnings failed: %v", err)
	}
	if _, err := payouts.ClaimWinnings(ctx, event.EventID, alice); err != models.ErrAlreadyClaimed {
		t.Errorf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimWinningsConservation(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	events := NewEventService(repo)
	bets := NewBetService(repo)
	resolution := NewResolutionService(repo)
	payouts := NewPayoutService(repo)

	creator := createTestUser(t, repo, "creator-wallet-wwwwwwwwwwwwwwwwwwwwwwww", 0)
	alice := createTestUser(t, repo, "alice-wallet-wwwwwwwwwwwwwwwwwwwwwwwwww", 100)
	bob := createTestUser(t, repo, "bob-wallet-wwwwwwwwwwwwwwwwwwwwwwwwwwww", 100)
	carol := createTestUser(t, repo, "carol-wallet-wwwwwwwwwwwwwwwwwwwwwwwwww", 100)

	event, err := events.CreateEvent(ctx, creator, "Conservation Event", 2)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	// Winning pool 1+2=3, losing pool 3, total 6
	if _, err := bets.PlaceBet(ctx, event.EventID, alice, 0, 1); err != nil {
		t.Fatalf("alice PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, bob, 0, 2); err != nil {
		t.Fatalf("bob PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, carol, 1, 3); err != nil {
		t.Fatalf("carol PlaceBet failed: %v", err)
	}

	if err := events.CloseBetting(ctx, event.EventID, creator); err != nil {
		t.Fatalf("CloseBetting failed: %v", err)
	}
	if err := resolution.ResolveEvent(ctx, event.EventID, creator, 0); err != nil {
		t.Fatalf("ResolveEvent failed: %v", err)
	}

	alicePayout, err := payouts.ClaimWinnings(ctx, event.EventID, alice)
	if err != nil {
		t.Fatalf("alice ClaimWinnings failed: %v", err)
	}
	bobPayout, err := payouts.ClaimWinnings(ctx, event.EventID, bob)
	if err != nil {
		t.Fatalf("bob ClaimWinnings failed: %v", err)
	}

	// 1*6/3=2 and 2*6/3=4: every unit of the pool is paid out
	if alicePayout != 2 {
		t.Errorf("expected alice payout 2, got %d", alicePayout)
	}
	if bobPayout != 4 {
		t.Errorf("expected bob payout 4, got %d", bobPayout)
	}
	if alicePayout+bobPayout != 6 {
		t.Errorf("expected payouts to sum to the total pool 6, got %d", alicePayout+bobPayout)
	}
}

func TestClaimWinningsTruncationNeverExceedsPool(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	events := NewEventService(repo)
	bets := NewBetService(repo)
	resolution := NewResolutionService(repo)
	payouts := NewPayoutService(repo)

	creator := createTestUser(t, repo, "creator-wallet-xxxxxxxxxxxxxxxxxxxxxxxx", 0)
	alice := createTestUser(t, repo, "alice-wallet-xxxxxxxxxxxxxxxxxxxxxxxxxx", 100)
	bob := createTestUser(t, repo, "bob-wallet-xxxxxxxxxxxxxxxxxxxxxxxxxxxx", 100)
	carol := createTestUser(t, repo, "carol-wallet-xxxxxxxxxxxxxxxxxxxxxxxxxx", 100)

	event, err := events.CreateEvent(ctx, creator, "Dust Event", 2)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	// Winning pool 1+2=3, losing pool 4, total 7: shares floor to 2 and 4
	if _, err := bets.PlaceBet(ctx, event.EventID, alice, 0, 1); err != nil {
		t.Fatalf("alice PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, bob, 0, 2); err != nil {
		t.Fatalf("bob PlaceBet failed: %v", err)
	}
	if _, err := bets.PlaceBet(ctx, event.EventID, carol, 1, 4); err != nil {
		t.Fatalf("carol PlaceBet failed: %v", err)
	}

	if err := resolution.ResolveEvent(ctx, event.EventID, creator, 0); err != nil {
		t.Fatalf("ResolveEvent failed: %v", err)
	}

	alicePayout, err := payouts.ClaimWinnings(ctx, event.EventID, alice)
	if err != nil {
		t.Fatalf("alice ClaimWinnings failed: %v", err)
	}
	bobPayout, err := payouts.ClaimWinnings(ctx, event.EventID, bob)
	if err != nil {
		t.Fatalf("bob ClaimWinnings failed: %v", err)
	}

	// Floor division leaves the dust in the pool
	if alicePayout != 2 {
		t.Errorf("expected alice payout 2 (floor of 7/3), got %d", alicePayout)
	}
	if bobPayout != 4 {
		t.Errorf("expected bob payout 4 (floor of 14/3), got %d", bobPayout)
	}
	if alicePayout+bobPayout > 7 {
		t.Errorf("payouts %d exceed total pool 7", alicePayout+bobPayout)
	}
}

func TestComputePayout(t *testing.T) {
	cases := []struct {
		name        string
		amount      int64
		totalPool   int64
		winningPool int64
		want        int64
	}{
		{"sole winner takes all", 1, 6, 1, 6},
		{"even split", 1, 2, 1, 2},
		{"proportional share", 2, 6, 3, 4},
		{"floor division", 1, 7, 3, 2},
		{"empty winning pool", 1, 7, 0, 0},
		// amount * totalPool overflows int64; big.Int keeps the result exact
		{"wide intermediate", 4_000_000_000_000_000_000, 8_000_000_000_000_000_000, 8_000_000_000_000_000_000, 4_000_000_000_000_000_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := computePayout(tc.amount, tc.totalPool, tc.winningPool); got != tc.want {
				t.Errorf("computePayout(%d, %d, %d) = %d, want %d",
					tc.amount, tc.totalPool, tc.winningPool, got, tc.want)
			}
		})
	}
}
