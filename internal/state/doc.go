// Package state holds the shared, mutex-guarded variable store that loaded
// .env entries are resolved against and committed to.
package state
