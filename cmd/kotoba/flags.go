package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/kotoba/internal/export"
	"github.com/at-ishikawa/kotoba/internal/quiz"
)

type ModeFlag string

// Set implements pflag.Value.
func (f *ModeFlag) Set(v string) error {
	mode, err := quiz.ParseMode(v)
	if err != nil {
		return err
	}
	*f = ModeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (f *ModeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ModeFlag) Type() string {
	return "ModeFlag"
}

type DirectionFlag string

// Set implements pflag.Value.
func (f *DirectionFlag) Set(v string) error {
	direction, err := quiz.ParseDirection(v)
	if err != nil {
		return err
	}
	*f = DirectionFlag(direction)
	return nil
}

// String implements pflag.Value.
func (f *DirectionFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *DirectionFlag) Type() string {
	return "DirectionFlag"
}

type AdvanceFlag string

// Set implements pflag.Value.
func (f *AdvanceFlag) Set(v string) error {
	if v == "" {
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, quiz.AdvanceNone, quiz.AdvanceWraparound)
	}
	advance, err := quiz.ParseAdvanceOnMark(v)
	if err != nil {
		return err
	}
	*f = AdvanceFlag(advance)
	return nil
}

// String implements pflag.Value.
func (f *AdvanceFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *AdvanceFlag) Type() string {
	return "AdvanceFlag"
}

type FormatFlag string

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	switch export.Format(v) {
	case export.FormatCSV, export.FormatYAML:
		*f = FormatFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, export.FormatCSV, export.FormatYAML)
	}
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "FormatFlag"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
	_ pflag.Value = (*DirectionFlag)(nil)
	_ pflag.Value = (*AdvanceFlag)(nil)
	_ pflag.Value = (*FormatFlag)(nil)
)
