package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pickempool/pickem-api/internal/domain/game"
)

type gameTableModel struct {
	GameCode   string    `db:"game_code"`
	WeekNumber int       `db:"week_number"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	GameDate   time.Time `db:"game_date"`
	Odds       []byte    `db:"odds"`
	ByeTeams   []byte    `db:"bye_teams"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m gameTableModel) toDomain() (game.Game, error) {
	out := game.Game{
		Code:       m.GameCode,
		WeekNumber: m.WeekNumber,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		Date:       m.GameDate,
	}

	if len(m.Odds) > 0 {
		if err := sonic.Unmarshal(m.Odds, &out.Odds); err != nil {
			return game.Game{}, fmt.Errorf("decode odds for game %s: %w", m.GameCode, err)
		}
	}
	if len(m.ByeTeams) > 0 {
		if err := sonic.Unmarshal(m.ByeTeams, &out.ByeTeams); err != nil {
			return game.Game{}, fmt.Errorf("decode bye teams for game %s: %w", m.GameCode, err)
		}
	}

	return out, nil
}

func encodeOdds(odds map[string]float64) ([]byte, error) {
	if len(odds) == 0 {
		return nil, nil
	}
	encoded, err := sonic.Marshal(odds)
	if err != nil {
		return nil, fmt.Errorf("encode odds: %w", err)
	}
	return encoded, nil
}
