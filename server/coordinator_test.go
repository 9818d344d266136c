package server

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/config"
	"github.com/cardroom/holdem/game"
)

// testConfig keeps the turn clock far away so timers armed during a
// test never fire on their own.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.TurnTimeout = time.Hour
	return cfg
}

func newTestSession(id string) *session {
	return &session{connID: id, out: make(chan string, 64)}
}

// drain empties a session's outbound channel and returns everything
// queued so far as one string.
func drain(s *session) string {
	var sb strings.Builder
	for {
		select {
		case msg := <-s.out:
			sb.WriteString(msg)
		default:
			return sb.String()
		}
	}
}

// startHeadsUpGame registers two users, seats them at a table and
// returns their sessions ordered as (current player, other player).
func startHeadsUpGame(t *testing.T, c *Coordinator) (*session, *session) {
	t.Helper()

	alice := newTestSession("conn-a")
	bob := newTestSession("conn-b")

	require.True(t, c.Dispatch(alice, "REGISTER alice"))
	require.True(t, c.Dispatch(bob, "REGISTER bob"))
	require.True(t, c.Dispatch(alice, "CREATE_TABLE t1"))
	require.True(t, c.Dispatch(alice, "JOIN_TABLE t1"))
	require.True(t, c.Dispatch(bob, "JOIN_TABLE t1"))

	g := c.registry.tables["t1"].Game
	require.NotNil(t, g, "the second join fills the table and starts a game")

	current := g.GetCurrentPlayer()
	require.NotNil(t, current)
	if current.Name == "alice" {
		return alice, bob
	}
	return bob, alice
}

func TestRegister(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")

	require.True(t, c.Dispatch(s, "REGISTER alice"))

	assert.Equal(t, "alice", s.userID)
	assert.Contains(t, drain(s), "Registered successfully. Your balance: 100")
	assert.Equal(t, 100.0, c.registry.users["alice"].Balance)
}

func TestRegisterDuplicateName(t *testing.T) {
	c := NewCoordinator(testConfig())
	first := newTestSession("conn-1")
	second := newTestSession("conn-2")

	c.Dispatch(first, "REGISTER alice")
	c.Dispatch(second, "REGISTER alice")

	assert.Empty(t, second.userID)
	assert.Contains(t, drain(second), "Username already taken")
}

func TestDispatchUsageAndUnknown(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")

	c.Dispatch(s, "REGISTER")
	assert.Contains(t, drain(s), "Usage: REGISTER <name>")

	c.Dispatch(s, "JOIN_TABLE")
	assert.Contains(t, drain(s), "Usage: JOIN_TABLE <table>")

	c.Dispatch(s, "FROBNICATE")
	assert.Contains(t, drain(s), "Unknown command: FROBNICATE")

	assert.True(t, c.Dispatch(s, "   "), "blank lines are ignored")
}

func TestQuitEndsSession(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")

	assert.False(t, c.Dispatch(s, "QUIT"))
	assert.Contains(t, drain(s), "Bye!")
}

func TestCreateAndListTables(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")

	c.Dispatch(s, "CREATE_TABLE main")
	assert.Contains(t, drain(s), "Table created")

	c.Dispatch(s, "CREATE_TABLE main")
	assert.Contains(t, drain(s), "Table already exists")

	c.Dispatch(s, "LIST_TABLES")
	assert.Contains(t, drain(s), "Tables: main")
}

func TestJoinRequiresRegistration(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")

	c.Dispatch(s, "JOIN_TABLE t1")
	assert.Contains(t, drain(s), "You must register first")
}

func TestJoinUnknownTable(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")
	c.Dispatch(s, "REGISTER alice")

	c.Dispatch(s, "JOIN_TABLE nowhere")
	assert.Contains(t, drain(s), "Table not found")
}

func TestGameStartsWhenTableFills(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, other := startHeadsUpGame(t, c)

	g := c.registry.tables["t1"].Game
	assert.Equal(t, 15.0, g.Pot)
	assert.Equal(t, game.PreFlop, g.CurrentRound)
	assert.Len(t, g.Players, 2)

	currentOut := drain(current)
	assert.Contains(t, currentOut, "Game started at table t1")
	assert.Contains(t, currentOut, "Your turn!")
	otherOut := drain(other)
	assert.Contains(t, otherOut, "Game started at table t1")
	assert.NotContains(t, otherOut, "Your turn!")
}

func TestActionWithoutGame(t *testing.T) {
	c := NewCoordinator(testConfig())
	s := newTestSession("conn-1")
	c.Dispatch(s, "REGISTER alice")

	c.Dispatch(s, "CALL")
	assert.Contains(t, drain(s), "You are not in a game")
}

func TestBetInputValidation(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, _ := startHeadsUpGame(t, c)
	drain(current)

	c.Dispatch(current, "BET")
	assert.Contains(t, drain(current), "Usage: BET <amount>")

	c.Dispatch(current, "BET 0")
	assert.Contains(t, drain(current), "Bet error:")

	c.Dispatch(current, "BET banana")
	assert.Contains(t, drain(current), "Bet error:")
}

func TestCallThenCheckCompletesPreflop(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, other := startHeadsUpGame(t, c)
	g := c.registry.tables["t1"].Game
	drain(current)
	drain(other)

	// The small blind completes the bet.
	c.Dispatch(current, "CALL")
	assert.Contains(t, drain(current), "You called")
	assert.Equal(t, 20.0, g.Pot)
	assert.Equal(t, game.PreFlop, g.CurrentRound)

	// The big blind still owes an action; checking ends the street.
	assert.Contains(t, drain(other), "Your turn!")
	c.Dispatch(other, "CHECK")
	out := drain(other)
	assert.Contains(t, out, "You checked")
	assert.Contains(t, out, "Betting round ended")
	assert.Equal(t, game.Flop, g.CurrentRound)
	assert.Len(t, g.CommunityCards, 3)
}

func TestIllegalCheckReported(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, _ := startHeadsUpGame(t, c)
	g := c.registry.tables["t1"].Game
	drain(current)

	// The small blind is short of the current bet and cannot check.
	c.Dispatch(current, "CHECK")
	assert.Contains(t, drain(current), "Check error:")
	assert.Equal(t, 15.0, g.Pot)
}

func TestFoldAdvancesHand(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, _ := startHeadsUpGame(t, c)
	g := c.registry.tables["t1"].Game
	drain(current)

	c.Dispatch(current, "FOLD")

	out := drain(current)
	assert.Contains(t, out, "You folded")
	assert.Contains(t, out, "You have folded")

	seat := g.SeatOf(current.userID)
	assert.Equal(t, game.StateFolded, g.Players[seat].State)
	// One active player completes every betting round, so the street
	// advances immediately.
	assert.Equal(t, game.Flop, g.CurrentRound)
}

func TestShowReportsTableState(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, _ := startHeadsUpGame(t, c)
	drain(current)

	c.Dispatch(current, "SHOW")
	out := drain(current)
	assert.Contains(t, out, "You: "+current.userID)
	assert.Contains(t, out, "Table: t1")
	assert.Contains(t, out, "Pot: 15")
}

func TestShowdownPaysWinner(t *testing.T) {
	c := NewCoordinator(testConfig())
	current, other := startHeadsUpGame(t, c)
	g := c.registry.tables["t1"].Game

	// Walk the hand to the river with calls and checks.
	c.Dispatch(current, "CALL")
	c.Dispatch(other, "CHECK")
	for g.CurrentRound != game.River {
		street := g.CurrentRound
		c.Dispatch(current, "CHECK")
		c.Dispatch(other, "CHECK")
		require.NotEqual(t, street, g.CurrentRound, "checks around the table must advance the street")
	}
	drain(current)
	drain(other)

	c.Dispatch(current, "CHECK")
	c.Dispatch(other, "CHECK")

	assert.Equal(t, game.Showdown, g.CurrentRound)
	assert.Equal(t, 0.0, g.Pot, "the pot is paid out at showdown")

	total := g.Players[0].Balance + g.Players[1].Balance
	assert.Equal(t, 200.0, total, "chips are conserved")
	combined := drain(current) + drain(other)
	assert.Contains(t, combined, "Winner: ")
}
