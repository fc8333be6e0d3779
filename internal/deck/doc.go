// Package deck parses deck definition files. A deck file is a JSON
// document with a header (name, description, direction policy) and a list
// of cards; the deck's identifier is the file's base name. Parsed decks are
// plain data handed to the seeding service, which owns turning them into
// stored cards.
package deck
