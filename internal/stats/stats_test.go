package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestStore_RecordCreatesLazily(t *testing.T) {
	store := NewStore()

	assert.Empty(t, store.Snapshot(1))

	store.Record(1, "Угадай слово", true)

	snap := store.Snapshot(1)
	assert.Equal(t, Entry{Played: 1, Wins: 1}, snap["Угадай слово"])
}

func TestStore_RecordIncrements(t *testing.T) {
	store := NewStore()

	store.Record(1, "Шарада", false)
	store.Record(1, "Шарада", true)
	store.Record(1, "Шарада", false)

	assert.Equal(t, Entry{Played: 3, Wins: 1}, store.Snapshot(1)["Шарада"])
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.Record(1, "Викторина", true)

	snap := store.Snapshot(1)
	snap["Викторина"] = Entry{Played: 99, Wins: 99}

	assert.Equal(t, Entry{Played: 1, Wins: 1}, store.Snapshot(1)["Викторина"])
}

func TestStore_ChatsAreIndependent(t *testing.T) {
	store := NewStore()

	store.Record(1, "Викторина", true)
	store.Record(2, "Викторина", false)

	assert.Equal(t, Entry{Played: 1, Wins: 1}, store.Snapshot(1)["Викторина"])
	assert.Equal(t, Entry{Played: 1, Wins: 0}, store.Snapshot(2)["Викторина"])
}

// TestStatsInvariantProperty: after any sequence of recorded outcomes, for
// every (chat, game) pair wins <= played and counters only grow.
func TestStatsInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewStore()
		games := []string{"Викторина", "Угадай слово", "Найди ложь", "Продолжи историю", "Шарада"}

		n := rapid.IntRange(0, 200).Draw(t, "n")
		for i := 0; i < n; i++ {
			chatID := rapid.Int64Range(1, 5).Draw(t, fmt.Sprintf("chat%d", i))
			gameName := rapid.SampledFrom(games).Draw(t, fmt.Sprintf("game%d", i))
			won := rapid.Bool().Draw(t, fmt.Sprintf("won%d", i))

			before := store.Snapshot(chatID)[gameName]
			store.Record(chatID, gameName, won)
			after := store.Snapshot(chatID)[gameName]

			if after.Wins > after.Played {
				t.Fatalf("wins %d exceeds played %d for %q", after.Wins, after.Played, gameName)
			}
			if after.Played != before.Played+1 {
				t.Fatalf("played not incremented: before=%d after=%d", before.Played, after.Played)
			}
			if won && after.Wins != before.Wins+1 {
				t.Fatalf("win not counted: before=%d after=%d", before.Wins, after.Wins)
			}
			if !won && after.Wins != before.Wins {
				t.Fatalf("loss changed wins: before=%d after=%d", before.Wins, after.Wins)
			}
		}
	})
}
