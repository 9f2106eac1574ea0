package loadlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MakeRunID returns a random "run-<uuid>" identifier for one process run.
func MakeRunID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("run-%d", time.Now().UTC().UnixNano())
	}
	return "run-" + id.String()
}
