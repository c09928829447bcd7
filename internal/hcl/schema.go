package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all top-level blocks of a dinner file. It has no
// remain field, so unknown blocks and attributes are decode errors.
type fileRoot struct {
	Table   *tableBlock   `hcl:"table,block"`
	Runtime *runtimeBlock `hcl:"runtime,block"`
}

// tableBlock keeps raw expressions so omitted attributes can be told apart
// from attributes explicitly set to zero.
type tableBlock struct {
	Philosophers hcl.Expression `hcl:"philosophers,optional"`
	TimeToDie    hcl.Expression `hcl:"time_to_die,optional"`
	TimeToEat    hcl.Expression `hcl:"time_to_eat,optional"`
	TimeToSleep  hcl.Expression `hcl:"time_to_sleep,optional"`
	Meals        hcl.Expression `hcl:"meals,optional"`
}

type runtimeBlock struct {
	PollInterval    hcl.Expression `hcl:"poll_interval,optional"`
	MonitorInterval hcl.Expression `hcl:"monitor_interval,optional"`
	OddRingDelay    hcl.Expression `hcl:"odd_ring_delay,optional"`
}
