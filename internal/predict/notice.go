package predict

import (
	"errors"
	"fmt"

	"sportiq/internal/sports"
)

// Level is the severity of a user-facing notice.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notice is a message shown alongside (or instead of) prediction blocks.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

const (
	NoMatchesText    = "No live matches found."
	UnrecognizedText = "Unrecognized payload shape"
)

// Notices derives the messages for one fetch. An empty result always gets
// the generic warning whatever the cause; errors and shape problems add
// their own notice on top so the causes stay distinguishable.
func Notices(res sports.FetchResult, err error) []Notice {
	var out []Notice

	var rf *sports.RequestFailedError
	switch {
	case errors.As(err, &rf):
		out = append(out, Notice{Level: LevelError, Text: fmt.Sprintf("API error %d", rf.Status)})
	case err != nil:
		out = append(out, Notice{Level: LevelError, Text: err.Error()})
	case res.Shape == sports.ShapeUnrecognized:
		out = append(out, Notice{Level: LevelWarning, Text: UnrecognizedText})
	}

	if len(res.Matches) == 0 {
		out = append(out, Notice{Level: LevelWarning, Text: NoMatchesText})
	}

	if err == nil && res.Skipped > 0 {
		noun := "items"
		if res.Skipped == 1 {
			noun = "item"
		}
		out = append(out, Notice{Level: LevelInfo, Text: fmt.Sprintf("%d malformed %s skipped", res.Skipped, noun)})
	}

	return out
}
