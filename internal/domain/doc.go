// Package domain contains the core entities of the application:
// decks, cards, per-card review scheduling state, and the append-only
// review event log.
//
// Domain objects validate themselves and carry no persistence or transport
// concerns. The scheduling algorithm that operates on ReviewState lives in
// the srs subpackage.
package domain
