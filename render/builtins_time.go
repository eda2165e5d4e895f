package render

import (
	"fmt"
	"math"
	"time"

	"github.com/itchyny/timefmt-go"
)

// Register time formatting builtins without modifying builtins.go.
func init() {
	builtinRegistry["strftime"] = builtinStrftime
	builtinRegistry["strptime"] = builtinStrptime
}

// builtinStrftime formats a time value with a strftime(3) format.
// Accepts time.Time or a unix timestamp in seconds.
func builtinStrftime(args ...any) (any, error) {
	if err := wantArgs("strftime", args, 2); err != nil {
		return nil, err
	}
	t, err := timeArg(args[0])
	if err != nil {
		return nil, err
	}
	format, err := textValue("strftime", args[1])
	if err != nil {
		return nil, err
	}
	return NewText(timefmt.Format(t, format.String())), nil
}

// builtinStrptime parses text with a strftime(3) format into a
// time.Time.
func builtinStrptime(args ...any) (any, error) {
	if err := wantArgs("strptime", args, 2); err != nil {
		return nil, err
	}
	source, err := textValue("strptime", args[0])
	if err != nil {
		return nil, err
	}
	format, err := textValue("strptime", args[1])
	if err != nil {
		return nil, err
	}
	return timefmt.Parse(source.String(), format.String())
}

func timeArg(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int:
		return time.Unix(int64(t), 0).UTC(), nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case float64:
		sec, frac := math.Modf(t)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("strftime: expected a time or unix timestamp, got %s", typeName(v))
}
