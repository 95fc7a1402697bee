package building

import (
	"fmt"
	"strconv"
)

// HVACSystem is an ASHRAE 90.1 Appendix G baseline system type.
// Only the archetype is recorded, no equipment is sized.
type HVACSystem uint8

const (
	NoHVAC HVACSystem = iota
	// System 1, packaged terminal air conditioner.
	PackagedTerminalAirConditioner
	// System 2, packaged terminal heat pump.
	PackagedTerminalHeatPump
	// System 3, packaged rooftop air conditioner.
	PackagedRooftopAirConditioner
	// System 4, packaged rooftop heat pump.
	PackagedRooftopHeatPump
	numHVAC
)

var hvacNames = [numHVAC]string{
	NoHVAC:                         "none",
	PackagedTerminalAirConditioner: "ptac",
	PackagedTerminalHeatPump:       "pthp",
	PackagedRooftopAirConditioner:  "psz_ac",
	PackagedRooftopHeatPump:        "psz_hp",
}

func (s HVACSystem) valid() bool { return s < numHVAC }

func (s HVACSystem) String() string {
	if !s.valid() {
		return "HVACSystem(" + strconv.Itoa(int(s)) + ")"
	}
	return hvacNames[s]
}

// ParseHVAC parses a system by name ("pthp") or by baseline system number ("2").
func ParseHVAC(s string) (HVACSystem, error) {
	for i, name := range hvacNames {
		if s == name {
			return HVACSystem(i), nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err == nil && HVACSystem(n).valid() {
		return HVACSystem(n), nil
	}
	return 0, fmt.Errorf("unknown HVAC system %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s HVACSystem) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("marshal unknown HVAC system %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *HVACSystem) UnmarshalText(text []byte) (err error) {
	*s, err = ParseHVAC(string(text))
	return err
}
