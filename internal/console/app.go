// Package console is the line-oriented front-end for building and studying a deck.
package console

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/services"
)

const separator = "================================================"

// App reads one command per line from its input and writes prompts and results to its output.
type App struct {
	svc     services.DeckService
	scanner *bufio.Scanner
	out     io.Writer
	closed  bool
}

func NewApp(svc services.DeckService, in io.Reader, out io.Writer) *App {
	return &App{
		svc:     svc,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run processes commands until the user quits or the input ends, then offers to
// save unsaved changes.
func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("console")
	log.Debug("console session started")

	for {
		a.displayMenu(ctx)
		command, ok := a.next()
		if !ok || strings.ToLower(command) == "q" {
			break
		}
		a.processCommand(ctx, strings.ToLower(command))
	}

	a.checkSaved(ctx)
	a.println("Closing application..... Goodbye :)")
	log.Debug("console session ended")
	return a.scanner.Err()
}

func (a *App) displayMenu(ctx context.Context) {
	size := a.svc.Stats(ctx).Size

	a.println("\nSelect from:")
	a.println("\ta -> add card to deck")
	if size == 0 {
		a.println("\tg -> generate sample deck")
	} else {
		a.println("\td -> delete card from deck")
		a.println("\tv -> view all cards in deck")
		a.println("\tt -> test yourself on deck")
	}
	a.println("\n\ts -> save deck to file")
	a.println("\tl -> load deck from file")
	a.println("\tr -> archive deck")
	a.println("\to -> open archived deck")
	a.println("\n\tq -> quit")
}

func (a *App) processCommand(ctx context.Context, command string) {
	size := a.svc.Stats(ctx).Size

	switch {
	case command == "a":
		a.addCard(ctx)
	case command == "d" && size > 0:
		a.deleteCard(ctx)
	case command == "g" && size == 0:
		a.loadSample(ctx)
	case command == "v" && size > 0:
		a.viewDeck(ctx)
	case command == "t" && size > 0:
		newGame(a).run(ctx)
	case command == "s":
		a.saveDeck(ctx)
	case command == "l":
		a.loadDeck(ctx)
	case command == "r":
		a.archiveDeck(ctx)
	case command == "o":
		a.openArchived(ctx)
	default:
		a.println("Selection not valid. Please try again. ")
	}
}

func (a *App) addCard(ctx context.Context) {
	a.println("Please enter what you want displayed on the front of the card:")
	front, ok := a.next()
	if !ok {
		return
	}
	a.println("Please enter what you want displayed on the back of the card:")
	back, ok := a.next()
	if !ok {
		return
	}

	card, err := a.svc.AddCard(ctx, front, back)
	if err != nil {
		a.printf("Card not added: %s\n", userMessage(err))
		return
	}
	a.printf("Added card with id %s\n", card.ID)
}

func (a *App) deleteCard(ctx context.Context) {
	a.viewDeck(ctx)
	a.println("Cards in deck are displayed above. To return to main menu enter 'back'")
	a.println("Otherwise, please enter the ID number of the card you want to delete:")
	input, ok := a.next()
	if !ok {
		return
	}

	switch {
	case strings.EqualFold(input, "back") || strings.EqualFold(input, "b"):
		a.println("Returning to main menu.")
	case a.svc.RemoveCard(ctx, input) == nil:
		a.printf("Removed card with id %s\n", input)
	default:
		a.printf("Unable to find card with id '%s'. Returning to main menu\n", input)
	}
}

func (a *App) viewDeck(ctx context.Context) {
	for _, card := range a.svc.Cards(ctx, false) {
		a.println(card.String())
		a.println(separator)
	}
}

func (a *App) saveDeck(ctx context.Context) {
	name := a.svc.Stats(ctx).Name
	path, err := a.svc.Save(ctx)
	if err != nil {
		a.printf("Unable to save deck: %s\n", userMessage(err))
		return
	}
	a.printf("Saved %s to %s\n", name, path)
}

func (a *App) loadDeck(ctx context.Context) {
	if err := a.svc.Load(ctx); err != nil {
		a.printf("Unable to load deck: %s\n", userMessage(err))
		return
	}
	a.printf("Loaded %s\n", a.svc.Stats(ctx).Name)
}

func (a *App) loadSample(ctx context.Context) {
	if err := a.svc.LoadSample(ctx); err != nil {
		a.printf("Unable to load sample deck: %s\n", userMessage(err))
		return
	}
	a.printf("Loaded %s\n", a.svc.Stats(ctx).Name)
}

func (a *App) archiveDeck(ctx context.Context) {
	summary, err := a.svc.Archive(ctx)
	if err != nil {
		a.printf("Unable to archive deck: %s\n", userMessage(err))
		return
	}
	a.printf("Archived %s (%d cards)\n", summary.Name, summary.Size)
}

func (a *App) openArchived(ctx context.Context) {
	decks, err := a.svc.ListArchived(ctx)
	if err != nil {
		a.printf("Unable to list archived decks: %s\n", userMessage(err))
		return
	}
	if len(decks) == 0 {
		a.println("No archived decks.")
		return
	}
	for _, d := range decks {
		a.printf("\t%s (%d cards, saved %s)\n", d.Name, d.Size, d.SavedAt.Local().Format(time.RFC1123))
	}
	a.println("Enter the name of the deck to open. To return to main menu enter 'back'")
	name, ok := a.next()
	if !ok || strings.EqualFold(name, "back") || strings.EqualFold(name, "b") {
		a.println("Returning to main menu.")
		return
	}
	if err := a.svc.Restore(ctx, name); err != nil {
		a.printf("Unable to open archived deck: %s\n", userMessage(err))
		return
	}
	a.printf("Loaded %s\n", name)
}

func (a *App) checkSaved(ctx context.Context) {
	if !a.svc.Dirty() {
		return
	}
	a.println("Unsaved changes. Would you like to save before quitting?")
	if a.askYesNo("\t y -> yes \n\t n -> no") {
		a.saveDeck(ctx)
	}
}

// askYesNo repeats prompt until the answer is yes or no. A closed input counts as no.
func (a *App) askYesNo(prompt string) bool {
	for {
		a.println(prompt)
		answer, ok := a.next()
		if !ok {
			return false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		a.println("Invalid input. Please try again")
	}
}

// next returns the next input line, trimmed. It reports false once the input is exhausted.
func (a *App) next() (string, bool) {
	if a.closed || !a.scanner.Scan() {
		a.closed = true
		return "", false
	}
	return strings.TrimSpace(a.scanner.Text()), true
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func userMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
