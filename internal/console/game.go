package console

import (
	"context"

	"github.com/vytor/flashdeck/internal/models"
)

const cardBorder = "***********************************"

// game walks the user through the deck once. The deck's study state is reset when it ends.
type game struct {
	app   *App
	cards []models.CardView
	index int
}

func newGame(app *App) *game {
	return &game{app: app}
}

func (g *game) run(ctx context.Context) {
	g.app.println("\nEntering test mode....")
	random := g.app.askYesNo("\nDisplay cards in random order? \n\ty -> yes \n\tn -> no")
	g.cards = g.app.svc.Cards(ctx, random)
	if len(g.cards) == 0 {
		return
	}
	g.showCard()

	for {
		g.displayMenu()
		command, ok := g.app.next()
		if !ok || command == "q" {
			break
		}
		g.processCommand(ctx, command)
	}

	g.printStats(ctx)
	g.app.svc.Reset(ctx)
}

func (g *game) displayMenu() {
	g.app.println("\nSelect from:")
	if !g.current().Flipped {
		g.app.println("\tf -> flip card")
	}
	if !g.lastCard() {
		g.app.println("\tn -> next card")
	}
	g.app.println("\tq -> quit")
}

func (g *game) processCommand(ctx context.Context, command string) {
	switch {
	case command == "f" && !g.current().Flipped:
		g.flipCard(ctx)
	case command == "n" && !g.lastCard():
		g.nextCard()
	default:
		g.app.println("Selection not valid. Please try again. ")
	}
}

// flipCard shows the back, records whether the user got it right and moves on.
func (g *game) flipCard(ctx context.Context) {
	card, err := g.app.svc.FlipCard(ctx, g.current().ID)
	if err != nil {
		g.app.printf("Unable to flip card: %s\n", userMessage(err))
		return
	}
	g.cards[g.index] = card
	g.showCard()

	correct := g.app.askYesNo("Did you get guess card correctly? \n\ty -> yes \n\tn -> no")
	if card, err = g.app.svc.MarkCard(ctx, card.ID, correct); err == nil {
		g.cards[g.index] = card
	}
	if correct {
		g.app.println("Good job! \n")
	} else {
		g.app.println("Awww too bad... you tried... \n")
	}

	if !g.lastCard() {
		g.nextCard()
	}
}

func (g *game) nextCard() {
	g.index++
	g.showCard()
}

func (g *game) showCard() {
	g.app.println(cardBorder)
	g.app.println(g.current().Face)
	g.app.println(cardBorder)
}

func (g *game) printStats(ctx context.Context) {
	stats := g.app.svc.Stats(ctx)
	seen := g.index + 1

	g.app.println("Congratulations!")
	g.app.printf("You viewed %d of %d cards (%.1f %%)\n", seen, len(g.cards), float64(seen)/float64(len(g.cards))*100)
	g.app.printf("Percent of total cards flipped: %.1f %%\n", stats.PercentViewed)
	g.app.printf("Percent correct: %.1f %%\n", stats.PercentCorrect)
}

func (g *game) current() models.CardView {
	return g.cards[g.index]
}

func (g *game) lastCard() bool {
	return g.index == len(g.cards)-1
}
