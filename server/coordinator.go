package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sanity-io/litter"

	"github.com/cardroom/holdem/config"
	"github.com/cardroom/holdem/game"
)

var serverLogger = log.With().Str("logger_name", "server::coordinator").Logger()

// session is one client connection's identity: a connection id from
// the transport, the user name once REGISTER succeeded, and the
// connection's outbound message channel.
type session struct {
	connID string
	userID string
	out    chan string
}

// Coordinator owns the registry and serializes every game mutation
// behind its lock. Handlers run their critical section, release the
// lock, then notify the affected users through their outbound
// channels.
type Coordinator struct {
	cfg      config.Config
	registry *Registry
}

// NewCoordinator creates a coordinator with an empty registry.
func NewCoordinator(cfg config.Config) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

const commandsHint = "Commands: REGISTER <name>, CREATE_TABLE <table>, JOIN_TABLE <table>, LIST_TABLES, SHOW, QUIT"

// Dispatch parses one protocol line and runs the matching handler.
// The return value is false once the session asked to quit.
func (c *Coordinator) Dispatch(s *session, line string) bool {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "REGISTER":
		if len(fields) < 2 {
			s.out <- "Usage: REGISTER <name>\n"
			return true
		}
		c.handleRegister(s, fields[1])

	case "CREATE_TABLE":
		if len(fields) < 2 {
			s.out <- "Usage: CREATE_TABLE <table>\n"
			return true
		}
		c.handleCreateTable(s, fields[1])

	case "JOIN_TABLE":
		if len(fields) < 2 {
			s.out <- "Usage: JOIN_TABLE <table>\n"
			return true
		}
		c.handleJoinTable(s, fields[1])

	case "LIST_TABLES":
		c.handleListTables(s)

	case "SHOW":
		c.handleShow(s)

	case "SHOW_STATE":
		c.handleShowState(s)

	case "BET":
		if len(fields) < 2 {
			s.out <- "Usage: BET <amount>\n"
			return true
		}
		amount, _ := strconv.ParseFloat(fields[1], 64)
		action, err := game.NewRaise(amount)
		if err != nil {
			s.out <- fmt.Sprintf("Bet error: %s\n", err)
			return true
		}
		c.handleAction(s, action, fmt.Sprintf("You bet %g\n", amount), "Bet")

	case "CALL":
		c.handleAction(s, game.NewAction(game.ActionCall), "You called\n", "Call")

	case "CHECK":
		c.handleAction(s, game.NewAction(game.ActionCheck), "You checked\n", "Check")

	case "FOLD":
		c.handleAction(s, game.NewAction(game.ActionFold), "You folded\n", "Fold")

	case "ALLIN":
		c.handleAction(s, game.NewAction(game.ActionAllIn), "You are all-in\n", "All-in")

	case "QUIT":
		s.out <- "Bye!\n"
		return false

	default:
		s.out <- fmt.Sprintf("Unknown command: %s\n", fields[0])
	}

	return true
}

// handleRegister claims a user name. Names are unique for the process
// lifetime; there is no further authentication.
func (c *Coordinator) handleRegister(s *session, name string) {
	r := c.registry

	r.mu.Lock()
	_, taken := r.users[name]
	if !taken {
		r.users[name] = &User{Name: name, Balance: c.cfg.StartingBalance}
		r.writers[name] = s.out
		s.userID = name
	}
	r.mu.Unlock()

	if taken {
		s.out <- "Username already taken\n"
		return
	}

	serverLogger.Info().Str("user", name).Str("conn", s.connID).Msg("user registered")
	s.out <- fmt.Sprintf("Registered successfully. Your balance: %g\n", c.cfg.StartingBalance)
}

func (c *Coordinator) handleCreateTable(s *session, tableID string) {
	r := c.registry

	r.mu.Lock()
	_, exists := r.tables[tableID]
	if !exists {
		r.tables[tableID] = &Table{ID: tableID, Members: make(map[string]bool)}
	}
	r.mu.Unlock()

	if exists {
		s.out <- "Table already exists\n"
		return
	}

	serverLogger.Info().Str("table", tableID).Msg("table created")
	s.out <- "Table created\n"
}

// handleJoinTable seats the user at a table. When the table fills to
// the configured player count, a game is created with every member's
// registered balance and the first hand starts immediately.
func (c *Coordinator) handleJoinTable(s *session, tableID string) {
	if s.userID == "" {
		s.out <- "You must register first\n"
		return
	}

	r := c.registry
	var (
		joined    bool
		started   bool
		members   []string
		nextTurn  turnRef
		memberMsg string
	)

	r.mu.Lock()
	table, ok := r.tables[tableID]
	if ok {
		table.Members[s.userID] = true
		joined = true
		if user, ok := r.users[s.userID]; ok {
			user.Table = tableID
		}

		if len(table.Members) == c.cfg.PlayersToStart && table.Game == nil {
			g := game.New(c.cfg.SmallBlind, c.cfg.BigBlind)
			for name := range table.Members {
				balance := c.cfg.StartingBalance
				if user, ok := r.users[name]; ok {
					balance = user.Balance
				}
				g.AddPlayer(name, balance)
			}
			if err := g.StartNewHand(); err == nil {
				table.Game = g
				started = true
				memberMsg = fmt.Sprintf("Game started at table %s\n", tableID)
				for name := range table.Members {
					members = append(members, name)
				}
				if cp := g.GetCurrentPlayer(); cp != nil {
					nextTurn = turnRef{table: tableID, player: cp.Name, generation: g.Generation()}
				}
			}
		}
	}
	r.mu.Unlock()

	if !joined {
		s.out <- "Table not found\n"
		return
	}
	s.out <- "Joined table\n"

	if started {
		serverLogger.Info().Str("table", tableID).Int("players", len(members)).Msg("game started")
		for _, name := range members {
			c.registry.send(name, memberMsg)
			c.sendGameView(name, viewOptions{})
		}
		c.notifyTurnAndArm(nextTurn)
	}
}

func (c *Coordinator) handleListTables(s *session) {
	r := c.registry

	r.mu.Lock()
	names := make([]string, 0, len(r.tables))
	for id := range r.tables {
		names = append(names, id)
	}
	r.mu.Unlock()

	s.out <- fmt.Sprintf("Tables: %s\n", strings.Join(names, ", "))
}

// handleShow reports the user's balance and, when seated, the table
// roster and full game state.
func (c *Coordinator) handleShow(s *session) {
	if s.userID == "" {
		s.out <- "You must register first\n"
		return
	}

	r := c.registry
	var sb strings.Builder

	r.mu.Lock()
	user, ok := r.users[s.userID]
	if ok {
		fmt.Fprintf(&sb, "You: %s | Balance: %g\n", user.Name, user.Balance)
		if table, ok := r.tables[user.Table]; ok {
			members := make([]string, 0, len(table.Members))
			for name := range table.Members {
				members = append(members, name)
			}
			fmt.Fprintf(&sb, "Table: %s\nPlayers: %s\n", table.ID, strings.Join(members, ", "))
			if g := table.Game; g != nil {
				fmt.Fprintf(&sb, "Pot: %g\nCommunity cards: %s\n", g.Pot, g.CommunityCards)
				for i, player := range g.Players {
					fmt.Fprintf(&sb, "Player %d: %s | Cards: %s | Balance: %g\n",
						i, player.Name, player.HoleCards, player.Balance)
				}
			}
		}
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	s.out <- sb.String()
}

// handleShowState resends the user's private game view.
func (c *Coordinator) handleShowState(s *session) {
	if debug := serverLogger.Debug(); debug.Enabled() {
		r := c.registry
		r.mu.Lock()
		var dump string
		if user, ok := r.users[s.userID]; ok {
			if table, ok := r.tables[user.Table]; ok && table.Game != nil {
				dump = litter.Sdump(table.Game)
			}
		}
		r.mu.Unlock()
		if dump != "" {
			debug.Str("user", s.userID).Msg(dump)
		}
	}

	c.sendGameView(s.userID, viewOptions{})
}

// turnRef captures whose turn it became, for notification and timer
// arming after the lock is released. The generation pins the exact
// turn so a later timer firing can detect staleness.
type turnRef struct {
	table      string
	player     string
	generation uint64
}

// handleAction applies one betting action for the session's user and
// drives the hand forward: street advance or showdown when the round
// completed, next player otherwise.
func (c *Coordinator) handleAction(s *session, action game.Action, okMsg, verb string) {
	if s.userID == "" {
		s.out <- "You must register first\n"
		return
	}

	r := c.registry
	var (
		result   string
		inGame   bool
		outcome  actionOutcome
		nextTurn turnRef
	)

	r.mu.Lock()
	g, tableID := c.lockedGameFor(s.userID)
	if g != nil {
		inGame = true
		seat := g.SeatOf(s.userID)
		if seat < 0 {
			result = fmt.Sprintf("%s error: %s\n", verb, game.ErrInvalidPlayerIndex)
		} else if err := g.PlayerActs(seat, action); err != nil {
			result = fmt.Sprintf("%s error: %s\n", verb, err)
		} else {
			result = okMsg
			outcome = c.progressLocked(g)
			if outcome.current != "" && outcome.winner == "" {
				nextTurn = turnRef{table: tableID, player: outcome.current, generation: outcome.generation}
			}
		}
	}
	r.mu.Unlock()

	if !inGame {
		s.out <- "You are not in a game\n"
		return
	}

	s.out <- result
	c.sendGameView(s.userID, viewOptions{winner: outcome.winner, roundEnded: outcome.roundEnded})
	if outcome.winner != "" {
		c.notifyWinner(tableID, outcome.winner, s.userID)
	}
	c.notifyTurnAndArm(nextTurn)
}

// actionOutcome summarizes what an applied action did to the hand.
type actionOutcome struct {
	roundEnded bool
	winner     string
	current    string
	generation uint64
}

// progressLocked finishes a successfully applied action: advances the
// street (or runs the showdown and pays the pot) when the betting
// round completed, otherwise passes the turn. Callers hold the
// registry lock.
func (c *Coordinator) progressLocked(g *game.Game) actionOutcome {
	var out actionOutcome

	if g.IsBettingRoundComplete() {
		out.roundEnded = true
		if result, decided := g.AdvanceStreet(); decided {
			out.winner = result.Name
			g.AwardPot(result.Seat)
		}
	} else {
		g.NextPlayer()
	}

	if cp := g.GetCurrentPlayer(); cp != nil {
		out.current = cp.Name
	}
	out.generation = g.Generation()
	return out
}

// lockedGameFor resolves the user's live game through the user→table
// index. Callers hold the registry lock.
func (c *Coordinator) lockedGameFor(userID string) (*game.Game, string) {
	user, ok := c.registry.users[userID]
	if !ok || user.Table == "" {
		return nil, ""
	}
	table, ok := c.registry.tables[user.Table]
	if !ok || table.Game == nil {
		return nil, ""
	}
	return table.Game, table.ID
}

// notifyWinner announces the showdown result to every player at the
// table. The actor that triggered the showdown already sees the
// winner in their own view and is skipped.
func (c *Coordinator) notifyWinner(tableID, winner, except string) {
	r := c.registry

	r.mu.Lock()
	var members []string
	if table, ok := r.tables[tableID]; ok {
		for name := range table.Members {
			if name != except {
				members = append(members, name)
			}
		}
	}
	r.mu.Unlock()

	for _, name := range members {
		r.send(name, fmt.Sprintf("Winner: %s\n", winner))
	}
}

// notifyTurnAndArm tells the player whose turn it now is and starts
// their turn clock. A zero turnRef is a no-op.
func (c *Coordinator) notifyTurnAndArm(turn turnRef) {
	if turn.player == "" {
		return
	}

	c.registry.send(turn.player, fmt.Sprintf("Your turn! You have %s...\n", c.cfg.TurnTimeout))
	c.armTurnTimer(turn)
}
