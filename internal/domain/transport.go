package domain

import (
	"strings"
	"time"
)

// TransportMode classifies how a segment is operated.
// Provider transport labels are free text; anything unrecognized falls into
// ModeOther, which still participates in the transfer wait rule.
type TransportMode string

const (
	ModeTrain TransportMode = "train"
	ModePlane TransportMode = "plane"
	ModeBus   TransportMode = "bus"
	ModeOther TransportMode = "other"
)

// ParseTransportMode normalizes a provider transport label (case-insensitive).
func ParseTransportMode(label string) TransportMode {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "train":
		return ModeTrain
	case "plane":
		return ModePlane
	case "bus":
		return ModeBus
	default:
		return ModeOther
	}
}

// defaultWait applies to every mode pair not covered by the table.
const defaultWait = 3 * time.Hour

type modePair struct {
	from TransportMode
	to   TransportMode
}

var requiredWaits = map[modePair]time.Duration{
	{ModeTrain, ModeTrain}: 2 * time.Hour,
	{ModeTrain, ModePlane}: 3 * time.Hour,
	{ModeTrain, ModeBus}:   2 * time.Hour,
	{ModePlane, ModeTrain}: 4 * time.Hour,
	{ModePlane, ModePlane}: 4 * time.Hour,
	{ModePlane, ModeBus}:   2 * time.Hour,
	{ModeBus, ModeTrain}:   2 * time.Hour,
	{ModeBus, ModePlane}:   4 * time.Hour,
	{ModeBus, ModeBus}:     0,
}

// RequiredWait returns the minimum layover between arriving by one transport
// mode and departing by another. Total over all mode pairs; never fails.
func RequiredWait(from, to TransportMode) time.Duration {
	if wait, ok := requiredWaits[modePair{from, to}]; ok {
		return wait
	}
	return defaultWait
}
