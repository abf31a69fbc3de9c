package poker

// CommandName identifies an outbound table command.
type CommandName string

const (
	CommandHomeInfo      CommandName = "home_info"
	CommandGameStarted   CommandName = "game_started"
	CommandPlayerUpdate  CommandName = "player_update"
	CommandPlayerBet     CommandName = "player_bet"
	CommandPlayerFolded  CommandName = "player_folded"
	CommandMaxBetUpdate  CommandName = "max_bet_update"
	CommandPlayersCards  CommandName = "players_cards"
	CommandPotUpdate     CommandName = "pot_update"
	CommandGameEnded     CommandName = "game_ended"
	CommandGameStatus    CommandName = "game_status"
	CommandGameWinners   CommandName = "game_winners"
	CommandCurrentPlayer CommandName = "current_player"
	CommandDealer        CommandName = "dealer"
	CommandBoardUpdated  CommandName = "board_updated"
	CommandNewRound      CommandName = "new_round"
	CommandTableClosed   CommandName = "table_closed"
	CommandPlayerKicked  CommandName = "player_kicked"
)

// SidePotView is the client-facing shape of one side pot.
type SidePotView struct {
	Amount  int64           `json:"amount"`
	Players []SidePotPlayer `json:"players"`
}

// CommandData is the payload union for table commands. Only the fields the
// command name implies are populated.
type CommandData struct {
	Players         []PlayerOverview `json:"players,omitempty"`
	PlayerID        string           `json:"playerID,omitempty"`
	CurrentPlayerID string           `json:"currentPlayerID,omitempty"`
	DealerPlayerID  string           `json:"dealerPlayerID,omitempty"`
	Pot             int64            `json:"pot,omitempty"`
	SidePots        []SidePotView    `json:"sidePots,omitempty"`
	Bet             int64            `json:"bet,omitempty"`
	MaxBet          int64            `json:"maxBet,omitempty"`
	BetKind         BetKind          `json:"type,omitempty"`
	Board           []CardView       `json:"board,omitempty"`
	Round           RoundType        `json:"round,omitempty"`
	Winners         []Winner         `json:"winners,omitempty"`
	GameStatus      GameStatus       `json:"gameStatus,omitempty"`
	KickedPlayer    string           `json:"kickedPlayer,omitempty"`
	Tables          []TableOverview  `json:"tables,omitempty"`
	PlayerCount     int              `json:"playerCount,omitempty"`
}

// Command is one outbound domain event. Recipient narrows delivery to a
// single player; empty means the whole table room.
type Command struct {
	Name      CommandName `json:"name"`
	Table     string      `json:"table"`
	Recipient string      `json:"recipient,omitempty"`
	Data      CommandData `json:"data,omitempty"`
}

// SetCommandChannel points the table at the bus it publishes on. The channel
// is owned by the registry; the table never closes it.
func (t *Table) SetCommandChannel(ch chan<- Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands = ch
}

// publish puts a command on the bus without blocking. A full bus drops the
// command; the engine must never stall on a slow consumer.
func (t *Table) publish(cmd Command) {
	if t.commands == nil {
		return
	}
	select {
	case t.commands <- cmd:
	default:
		t.log.Warnf("command bus full, dropping %s", cmd.Name)
	}
}
