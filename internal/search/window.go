package search

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// Milliseconds per start-offset unit.
const (
	millisPerMinute int64 = 60_000
	millisPerHour   int64 = 3_600_000
	millisPerDay    int64 = 86_400_000
)

// offsetMillis converts the single supplied start offset to milliseconds.
// Exactly one of the three units may be set; anything else is a
// configuration error.
func (o Options) offsetMillis() (int64, error) {
	type unit struct {
		value  *int
		factor int64
		name   string
	}
	units := []unit{
		{o.StartMins, millisPerMinute, "minutes"},
		{o.StartHours, millisPerHour, "hours"},
		{o.StartDays, millisPerDay, "days"},
	}

	var supplied []unit
	for _, u := range units {
		if u.value != nil {
			supplied = append(supplied, u)
		}
	}
	switch len(supplied) {
	case 0:
		return 0, errors.New("no start offset given; supply exactly one of minutes, hours or days")
	case 1:
	default:
		return 0, errors.New("multiple start offset units are not supported; supply exactly one of minutes, hours or days")
	}

	u := supplied[0]
	if *u.value < 0 {
		return 0, fmt.Errorf("start offset in %s must not be negative, got %d", u.name, *u.value)
	}
	return int64(*u.value) * u.factor, nil
}

// Window computes the search time window: start = end - offset, both in
// epoch milliseconds.
func (o Options) Window() (model.TimeWindow, error) {
	offset, err := o.offsetMillis()
	if err != nil {
		return model.TimeWindow{}, err
	}
	return model.TimeWindow{
		StartMillis: o.EndTimeMillis - offset,
		EndMillis:   o.EndTimeMillis,
	}, nil
}
