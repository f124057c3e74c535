// Package i18n registers the game's message catalog with x/text/message and
// resolves which language a match is presented in.
package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys used by the match engine and the presenters.
const (
	KeyTurnTie        = "turn.tie"
	KeyTurnPlayer     = "turn.player"
	KeyTurnComputer   = "turn.computer"
	KeyRoundPlayer    = "round.player"
	KeyRoundComputer  = "round.computer"
	KeyMatchPlayer    = "match.player"   // args: player rounds, computer rounds
	KeyMatchComputer  = "match.computer" // args: computer rounds, player rounds
	KeyRoundNext      = "round.next"
	KeyMatchNew       = "match.new"
	KeyRoundsWon      = "rounds.won" // args: count
	KeyMultiplayer    = "multiplayer.unavailable"
	KeySidePlayer     = "side.player"
	KeySideComputer   = "side.computer"
	KeyChoiceRock     = "choice.rock"
	KeyChoicePaper    = "choice.paper"
	KeyChoiceScissors = "choice.scissors"
	KeyHealthCritical = "health.critical"
	KeyInputEnabled   = "input.enabled"
	KeyInputDisabled  = "input.disabled"
)

var catalog = map[language.Tag]map[string]string{
	language.Spanish: {
		KeyTurnTie:        "¡Empate!",
		KeyTurnPlayer:     "¡Ganaste el turno!",
		KeyTurnComputer:   "Perdiste el turno...",
		KeyRoundPlayer:    "¡Ganaste la ronda!",
		KeyRoundComputer:  "¡Perdiste la ronda!",
		KeyMatchPlayer:    "🏆 ¡Felicidades! ¡Ganaste la partida %d a %d! 🏆",
		KeyMatchComputer:  "¡La computadora ganó la partida %d a %d! Mejor suerte la próxima.",
		KeyRoundNext:      "¡Siguiente ronda! Elige tu jugada.",
		KeyMatchNew:       "🎮 ¡Nueva partida iniciada! Elige tu jugada.",
		KeyRoundsWon:      "Rondas ganadas: %d",
		KeyMultiplayer:    "La funcionalidad multijugador aún no está implementada.",
		KeySidePlayer:     "Jugador",
		KeySideComputer:   "Computadora",
		KeyChoiceRock:     "piedra",
		KeyChoicePaper:    "papel",
		KeyChoiceScissors: "tijera",
		KeyHealthCritical: "¡crítico!",
		KeyInputEnabled:   "Elige: piedra, papel o tijera",
		KeyInputDisabled:  "Espera...",
	},
	language.English: {
		KeyTurnTie:        "It's a tie!",
		KeyTurnPlayer:     "You won the turn!",
		KeyTurnComputer:   "You lost the turn...",
		KeyRoundPlayer:    "You won the round!",
		KeyRoundComputer:  "You lost the round!",
		KeyMatchPlayer:    "🏆 Congratulations! You won the match %d to %d! 🏆",
		KeyMatchComputer:  "The computer won the match %d to %d! Better luck next time.",
		KeyRoundNext:      "Next round! Make your move.",
		KeyMatchNew:       "🎮 New match started! Make your move.",
		KeyRoundsWon:      "Rounds won: %d",
		KeyMultiplayer:    "Multiplayer is not implemented yet.",
		KeySidePlayer:     "Player",
		KeySideComputer:   "Computer",
		KeyChoiceRock:     "rock",
		KeyChoicePaper:    "paper",
		KeyChoiceScissors: "scissors",
		KeyHealthCritical: "critical!",
		KeyInputEnabled:   "Choose: rock, paper or scissors",
		KeyInputDisabled:  "Wait...",
	},
}

var supportedTags = []language.Tag{
	language.Spanish,
	language.English,
}

var tagMatcher = language.NewMatcher(supportedTags)

func init() {
	for tag, messages := range catalog {
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, messages[key]); err != nil {
				panic(err)
			}
		}
	}
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.Spanish
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag maps a locale string such as "en-US" or "es" to the closest supported tag.
// Blank or unparsable values fall back to Default.
func ResolveTag(locale string) language.Tag {
	value := strings.TrimSpace(locale)
	if value == "" {
		return Default()
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(parsed)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// PrinterFor is shorthand for Printer(ResolveTag(locale)).
func PrinterFor(locale string) *message.Printer {
	return Printer(ResolveTag(locale))
}
