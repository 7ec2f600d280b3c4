package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/trvkit/go-trvsched"
)

// An Action can be typically called by main to do a job.
type Action interface {
	// Do executes the action.
	Do(pOptions *Options, params []string) error
}

var actions = map[string]Action{
	"show":   &showAction{},
	"set":    &setAction{},
	"clear":  &clearAction{},
	"status": &statusAction{},
}

// engineAction loads the parameters and opens the schedule image for
// the actions needing an Engine.
type engineAction struct {
	e       *trvsched.Engine
	params  trvsched.Params
	options *Options
}

func (a *engineAction) initEngine(pOptions *Options) error {
	var params trvsched.Params
	if pOptions.config != "" {
		var err error
		params, err = trvsched.LoadParams(pOptions.config)
		if err != nil {
			return err
		}
	} else {
		params.Normalize()
	}

	logger := zerolog.Nop()
	if pOptions.debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	store, err := trvsched.OpenFileStore(afero.NewOsFs(), pOptions.image,
		int(params.BaseAddr)+params.MaxSchedules, logger)
	if err != nil {
		return err
	}

	e, err := trvsched.New(params, store, nil, nil)
	if err != nil {
		return err
	}

	if pOptions.verbose {
		fmt.Printf("%d slots, granularity %dm, pre-warm %dm, image %s\n",
			params.MaxSchedules, params.GranularityMins,
			e.PrewarmMins(), pOptions.image)
	}

	a.e = e
	a.params = params
	a.options = pOptions

	return nil
}

func (a *engineAction) parseSlot(param string) (int, error) {
	slot, err := strconv.Atoi(param)
	if err != nil || slot < 0 || slot >= a.params.MaxSchedules {
		return 0, fmt.Errorf("bad slot `%s' (0 to %d)",
			param, a.params.MaxSchedules-1)
	}
	return slot, nil
}

type showAction struct {
	engineAction
}

func (a *showAction) Do(pOptions *Options, params []string) error {
	err := a.initEngine(pOptions)
	if err != nil {
		return err
	}

	for slot := 0; slot < a.params.MaxSchedules; slot++ {
		on, ok := a.e.OnTime(slot)
		if !ok {
			fmt.Printf("%d: unset\n", slot)
			continue
		}
		off, _ := a.e.OffTime(slot)
		fmt.Printf("%d: %s - %s\n", slot, on, off)
	}

	return nil
}

type setAction struct {
	engineAction
}

func (a *setAction) Do(pOptions *Options, params []string) error {
	if len(params) != 2 {
		return errors.New("set needs SLOT and TIME")
	}

	err := a.initEngine(pOptions)
	if err != nil {
		return err
	}

	slot, err := a.parseSlot(params[0])
	if err != nil {
		return err
	}

	start, err := trvsched.ParseMinuteOfDay(params[1])
	if err != nil {
		return err
	}

	err = a.e.Set(slot, start)
	if err != nil {
		return err
	}

	if pOptions.verbose {
		on, _ := a.e.OnTime(slot)
		off, _ := a.e.OffTime(slot)
		fmt.Printf("%d: %s - %s\n", slot, on, off)
	}

	return nil
}

type clearAction struct {
	engineAction
}

func (a *clearAction) Do(pOptions *Options, params []string) error {
	if len(params) != 1 {
		return errors.New("clear needs SLOT")
	}

	err := a.initEngine(pOptions)
	if err != nil {
		return err
	}

	slot, err := a.parseSlot(params[0])
	if err != nil {
		return err
	}

	a.e.Clear(slot)

	return nil
}

type statusAction struct {
	engineAction
}

func (a *statusAction) Do(pOptions *Options, params []string) error {
	err := a.initEngine(pOptions)
	if err != nil {
		return err
	}

	fmt.Printf("any-set:   %t\nwarm-now:  %t\nwarm-soon: %t\n",
		a.e.AnySet(), a.e.AnyWarmNow(), a.e.AnyWarmSoon())

	return nil
}
