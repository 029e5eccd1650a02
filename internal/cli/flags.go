package cli

import (
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/spf13/pflag"
)

// modeValue is a pflag.Value accepting timer mode names and their aliases.
type modeValue struct {
	mode *domain.Mode
}

var _ pflag.Value = (*modeValue)(nil)

func newModeValue(def domain.Mode, p *domain.Mode) *modeValue {
	*p = def
	return &modeValue{mode: p}
}

func (v *modeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v *modeValue) Set(s string) error {
	m, err := domain.ParseMode(s)
	if err != nil {
		return err
	}
	*v.mode = m
	return nil
}

func (v *modeValue) Type() string { return "mode" }

// laneValue is a pflag.Value accepting lane ids and their aliases. An unset
// laneValue holds the empty id.
type laneValue struct {
	lane *domain.LaneID
}

var _ pflag.Value = (*laneValue)(nil)

func newLaneValue(p *domain.LaneID) *laneValue {
	return &laneValue{lane: p}
}

func (v *laneValue) String() string {
	if v.lane == nil {
		return ""
	}
	return string(*v.lane)
}

func (v *laneValue) Set(s string) error {
	id, err := domain.ParseLaneID(s)
	if err != nil {
		return err
	}
	*v.lane = id
	return nil
}

func (v *laneValue) Type() string { return "lane" }
