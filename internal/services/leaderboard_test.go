package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/types"
)

func TestGetGlobalLeaderboardRanks(t *testing.T) {
	log := testLogger(t)
	users := []*types.User{
		{ID: uuid.New(), Name: "ana", Coins: 100, XP: 250},
		{ID: uuid.New(), Name: "ben", Coins: 50},
		{ID: uuid.New(), Name: "cai", Coins: 50},
		{ID: uuid.New(), Name: "dee", Coins: 10},
	}
	svc := NewLeaderboardService(nil, log, newFakeUserRepo(users...))

	entries, err := svc.GetGlobalLeaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetGlobalLeaderboard: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries: want=4 got=%d", len(entries))
	}
	wantCoins := []int{100, 50, 50, 10}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Fatalf("rank[%d]: want=%d got=%d", i, i+1, entry.Rank)
		}
		if entry.Coins != wantCoins[i] {
			t.Fatalf("coins[%d]: want=%d got=%d", i, wantCoins[i], entry.Coins)
		}
	}
	if entries[0].Level != 3 {
		t.Fatalf("level derives from xp: want=3 got=%d", entries[0].Level)
	}
}

func TestGetGlobalLeaderboardHonorsLimit(t *testing.T) {
	log := testLogger(t)
	users := []*types.User{
		{ID: uuid.New(), Name: "ana", Coins: 30},
		{ID: uuid.New(), Name: "ben", Coins: 20},
		{ID: uuid.New(), Name: "cai", Coins: 10},
	}
	svc := NewLeaderboardService(nil, log, newFakeUserRepo(users...))

	entries, err := svc.GetGlobalLeaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetGlobalLeaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: want=2 got=%d", len(entries))
	}
}

func TestGetUserRankCountsStrictlyGreater(t *testing.T) {
	log := testLogger(t)
	tied := &types.User{ID: uuid.New(), Name: "ben", Coins: 50}
	users := []*types.User{
		{ID: uuid.New(), Name: "ana", Coins: 100},
		tied,
		{ID: uuid.New(), Name: "cai", Coins: 50},
		{ID: uuid.New(), Name: "dee", Coins: 10},
	}
	svc := NewLeaderboardService(nil, log, newFakeUserRepo(users...))

	rank, err := svc.GetUserRank(context.Background(), tied.ID)
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank != 2 {
		t.Fatalf("tied rank: want=2 got=%d", rank)
	}

	rank, err = svc.GetUserRank(context.Background(), users[3].ID)
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank != 4 {
		t.Fatalf("bottom rank: want=4 got=%d", rank)
	}
}

func TestGetUserRankUnknownUser(t *testing.T) {
	log := testLogger(t)
	svc := NewLeaderboardService(nil, log, newFakeUserRepo())

	_, err := svc.GetUserRank(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
