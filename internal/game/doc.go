// Package game implements the blackjack table as a cooperative state machine.
//
// A Game owns its shoe, dealer and seats. Step runs one input to completion
// and then advances through every automatic state until the game next needs
// input from the human seat:
//
//	g, err := game.New(config.Default(), game.WithRand(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	_ = g.Step(move.Deal)       // deal the first round
//	_ = g.Step(g.Advise())      // play the recommended move
//
// # States
//
// Start and the three Waiting states accept input. PlayHandsRight and
// PlayHandsLeft play the automated seats on either side of the human seat
// and are never observed between steps.
//
// # Deterministic Testing
//
// Pass a seeded rng with WithRand and, for exact deals, a prepared shoe
// with WithShoe:
//
//	s := shoe.NewFromCards(rules, rng, deck.MustParseCards("A 6 J K"))
//	g, _ := game.New(cfg, game.WithShoe(s))
//
// # Events
//
// Observers subscribe to the Bus for state changes, settled hands,
// shuffles, records and resets. Delivery is synchronous and ordered. The
// simulator turns events off with WithEventsDisabled.
package game
