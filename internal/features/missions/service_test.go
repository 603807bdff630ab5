package missions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

type creditCall struct {
	UserID int64
	Amount int64
	Type   string
}

type fakeLedger struct {
	credits []creditCall
}

func (f *fakeLedger) Credit(_ context.Context, userID int64, amount int64, txType string, _ map[string]any) error {
	f.credits = append(f.credits, creditCall{userID, amount, txType})
	return nil
}

type fakeCounters struct {
	completions map[string]int
}

func (f *fakeCounters) IncrementMission(_ context.Context, _ int64, missionID string) error {
	if f.completions == nil {
		f.completions = make(map[string]int)
	}
	f.completions[missionID]++
	return nil
}

func TestComplete_DailyMission(t *testing.T) {
	ledger := &fakeLedger{}
	counters := &fakeCounters{}
	svc := NewService(ledger, counters)

	reward, err := svc.Complete(context.Background(), 1, "post_activity")
	require.NoError(t, err)
	assert.Equal(t, int64(20), reward)

	require.Len(t, ledger.credits, 1)
	assert.Equal(t, creditCall{1, 20, economy.TxTypeMissionReward}, ledger.credits[0])
	assert.Equal(t, 1, counters.completions["post_activity"])
}

func TestComplete_WeeklyMission(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(ledger, &fakeCounters{})

	reward, err := svc.Complete(context.Background(), 1, "most_helpful")
	require.NoError(t, err)
	assert.Equal(t, int64(200), reward)
}

func TestComplete_UnknownMission(t *testing.T) {
	ledger := &fakeLedger{}
	counters := &fakeCounters{}
	svc := NewService(ledger, counters)

	_, err := svc.Complete(context.Background(), 1, "взломать_пентагон")
	assert.ErrorIs(t, err, common.ErrUnknownMission)

	// Неизвестная миссия не трогает ни счётчики, ни баланс
	assert.Empty(t, ledger.credits)
	assert.Empty(t, counters.completions)
}

func TestReward(t *testing.T) {
	reward, ok := Reward("give_review")
	assert.True(t, ok)
	assert.Equal(t, int64(15), reward)

	reward, ok = Reward("top_contributor")
	assert.True(t, ok)
	assert.Equal(t, int64(100), reward)

	_, ok = Reward("nope")
	assert.False(t, ok)
}
