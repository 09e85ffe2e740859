// Package game runs chess games as sessions keyed by game id. Each Game owns
// its board and serialises every change behind its own lock.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/storage"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidGameType = errors.New("invalid game type")
)

// GameType is a time control written as "<minutes>+<increment seconds>",
// or DEFAULT for untimed games.
type GameType string

const (
	TypeClassical90 GameType = "90+30"
	TypeClassical60 GameType = "60+0"
	TypeRapid30     GameType = "30+0"
	TypeRapid15     GameType = "15+10"
	TypeRapid10     GameType = "10+0"
	TypeBlitz5      GameType = "5+3"
	TypeBlitz3      GameType = "3+2"
	TypeBullet1     GameType = "1+0"
	TypeDefault     GameType = "DEFAULT"
)

var gameTypes = []GameType{
	TypeClassical90, TypeClassical60, TypeRapid30, TypeRapid15,
	TypeRapid10, TypeBlitz5, TypeBlitz3, TypeBullet1, TypeDefault,
}

// GameTypes lists the accepted game types.
func GameTypes() []GameType {
	return append([]GameType(nil), gameTypes...)
}

// ParseGameType validates s. The empty string means DEFAULT.
func ParseGameType(s string) (GameType, error) {
	if s == "" {
		return TypeDefault, nil
	}
	for _, t := range gameTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGameType, s)
}

// Clock returns the base time and increment. DEFAULT has neither.
func (t GameType) Clock() (base, increment time.Duration) {
	minutes, seconds, ok := strings.Cut(string(t), "+")
	if !ok {
		return 0, 0
	}
	m, err1 := strconv.Atoi(minutes)
	s, err2 := strconv.Atoi(seconds)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return time.Duration(m) * time.Minute, time.Duration(s) * time.Second
}

// Status is the state of a game.
type Status int

const (
	Ongoing Status = iota
	WhiteWon
	BlackWon
	Draw
)

func (s Status) String() string {
	switch s {
	case WhiteWon:
		return storage.StatusWhiteWon
	case BlackWon:
		return storage.StatusBlackWon
	case Draw:
		return storage.StatusDraw
	default:
		return "ONGOING"
	}
}

// Over reports whether the game has ended.
func (s Status) Over() bool {
	return s != Ongoing
}
